package layout

// focusedLayout places the part/actor/use-case triple of a focused unit into
// fixed zones:
//
//   - use-case ellipse anchored center-right, slightly above center
//   - actor circle centered on the ellipse's right edge, reading as a port
//     on the use-case boundary
//   - part rectangle in the bottom-left region
//
// Positions are computed directly in canvas coordinates and already respect
// the margins; this layout is never overlap-resolved or canvas-fitted.
func (e *Engine) focusedLayout(u Unit, sizes map[string]Size) map[string]Point {
	c := e.canvas
	area := contentArea(c, focusedInsetX, focusedInsetY)
	pos := make(map[string]Point, len(u.ElementIDs))

	ctx := u.Context

	var ucCenter Point
	if ctx.UseCaseID != "" {
		ucCenter = Point{
			X: c.Width/2 + area.Width*0.15,
			Y: c.Height/2 - area.Height*0.1,
		}
		pos[ctx.UseCaseID] = ucCenter
	}

	if ctx.ActorID != "" {
		if ctx.UseCaseID != "" {
			// Tangent anchor: the circle center sits on the ellipse's right
			// edge at its vertical midline.
			ucW := sizes[ctx.UseCaseID].Width
			pos[ctx.ActorID] = Point{X: ucCenter.X + ucW/2, Y: ucCenter.Y}
		} else {
			pos[ctx.ActorID] = Point{X: c.Width/2 + area.Width*0.25, Y: c.Height / 2}
		}
	}

	if ctx.PartID != "" {
		partH := sizes[ctx.PartID].Height
		pos[ctx.PartID] = Point{
			X: area.X + 30 + sizes[ctx.PartID].Width/2,
			Y: c.Height - area.Y - partH/2 - 30,
		}
	}

	// Unit elements outside the resolved triple (a non-part source, say) get
	// the part zone so the relationship arrow still has both endpoints.
	for _, id := range u.ElementIDs {
		if _, ok := pos[id]; ok {
			continue
		}
		pos[id] = Point{
			X: area.X + 30 + sizes[id].Width/2,
			Y: c.Height - area.Y - sizes[id].Height/2 - 30,
		}
	}

	return pos
}
