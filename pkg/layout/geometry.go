package layout

import "math"

// Point is a position in canvas coordinates (origin top-left, y grows down).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is the width and height of an element's bounding box.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// boxesOverlap reports whether two center-anchored boxes, each inflated by
// pad on every side, intersect.
func boxesOverlap(c1 Point, s1 Size, c2 Point, s2 Size, pad float64) bool {
	return math.Abs(c1.X-c2.X) < (s1.Width+s2.Width)/2+pad &&
		math.Abs(c1.Y-c2.Y) < (s1.Height+s2.Height)/2+pad
}

// distance returns the Euclidean distance between two points.
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
