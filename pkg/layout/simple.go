package layout

import "math"

// simpleLayout places two or three nodes symmetrically around the canvas
// center: two nodes horizontally mirrored, three nodes at 120° intervals on
// a circle starting from the top.
func (e *Engine) simpleLayout(ids []string) map[string]Point {
	c := e.canvas
	centerX, centerY := c.Width/2, c.Height/2
	pos := make(map[string]Point, len(ids))

	switch len(ids) {
	case 2:
		spacing := c.Width * 0.3
		pos[ids[0]] = Point{X: centerX - spacing, Y: centerY}
		pos[ids[1]] = Point{X: centerX + spacing, Y: centerY}
	case 3:
		radius := min(c.Width, c.Height) * 0.25
		for i, id := range ids {
			angle := 2*math.Pi*float64(i)/3 - math.Pi/2
			pos[id] = Point{
				X: centerX + radius*math.Cos(angle),
				Y: centerY + radius*math.Sin(angle),
			}
		}
	}

	return pos
}
