package layout

import (
	"slices"

	"github.com/sysviz/sysviz/pkg/model"
)

// =============================================================================
// Placed Element
// =============================================================================

// PlacedElement is an element annotated with a canvas position and size.
// Positions are center-anchored; renderers derive corner coordinates from
// the bounding box as needed.
type PlacedElement struct {
	ElementID string            `json:"element_id" bson:"element_id"`
	Kind      model.ElementKind `json:"kind" bson:"kind"`
	CenterX   float64           `json:"center_x" bson:"center_x"`
	CenterY   float64           `json:"center_y" bson:"center_y"`
	Width     float64           `json:"width" bson:"width"`
	Height    float64           `json:"height" bson:"height"`
}

// Bounds returns the element's bounding box.
func (p *PlacedElement) Bounds() Rect {
	return Rect{
		X:      p.CenterX - p.Width/2,
		Y:      p.CenterY - p.Height/2,
		Width:  p.Width,
		Height: p.Height,
	}
}

// Center returns the element's center point.
func (p *PlacedElement) Center() Point {
	return Point{X: p.CenterX, Y: p.CenterY}
}

// =============================================================================
// Result
// =============================================================================

// Result is the computed layout for one diagram unit: the system boundary
// frame plus one placed element per unit element. A Result is created fresh
// per unit and handed once to a rendering backend; the engine keeps no
// reference to it afterwards.
type Result struct {
	UnitID         string                    `json:"unit_id" bson:"unit_id"`
	SystemBoundary Rect                      `json:"system_boundary" bson:"system_boundary"`
	Placed         map[string]*PlacedElement `json:"placed_elements" bson:"placed_elements"`
}

// PlacedIDs returns the placed element IDs in sorted order.
func (r *Result) PlacedIDs() []string {
	ids := make([]string, 0, len(r.Placed))
	for id := range r.Placed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// boundaryRect returns the system boundary frame for a canvas. The frame sits
// inside the margins with extra headroom at the top for the boundary title.
func boundaryRect(c Canvas) Rect {
	return Rect{
		X:      c.MarginX,
		Y:      c.MarginY + boundaryTitleHeight,
		Width:  c.Width - 2*c.MarginX,
		Height: c.Height - 2*c.MarginY - boundaryTitleHeight,
	}
}
