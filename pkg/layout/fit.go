package layout

// fitToCanvas uniformly scales and translates positions so their bounding box
// sits centered inside the margined canvas.
//
// The scale factor is capped at 1.0 (never upscale) and multiplied by
// Tuning.ShrinkFactor as a safety margin; aspect ratio is preserved. The
// per-element clamp in Layout is the final safety net for anything the scale
// still leaves outside the bounds.
func (e *Engine) fitToCanvas(pos map[string]Point) map[string]Point {
	if len(pos) == 0 {
		return pos
	}

	minX, maxX := posBounds(pos, func(p Point) float64 { return p.X })
	minY, maxY := posBounds(pos, func(p Point) float64 { return p.Y })

	c := e.canvas
	left := c.MarginX + fitInsetX
	right := c.MarginX + fitInsetX
	top := c.MarginY + fitInsetTop
	bottom := c.MarginY + fitInsetBot

	availW := c.Width - left - right
	availH := c.Height - top - bottom

	// Width/height floor guards the coincident-nodes case against division
	// by zero.
	curW := maxX - minX
	if curW <= 0 {
		curW = 100
	}
	curH := maxY - minY
	if curH <= 0 {
		curH = 100
	}

	scaleX := availW / curW * e.tuning.ShrinkFactor
	scaleY := availH / curH * e.tuning.ShrinkFactor
	scale := min(scaleX, scaleY, 1.0)

	offsetX := left + (availW-curW*scale)/2
	offsetY := top + (availH-curH*scale)/2

	fitted := make(map[string]Point, len(pos))
	for id, p := range pos {
		x := (p.X-minX)*scale + offsetX
		y := (p.Y-minY)*scale + offsetY
		fitted[id] = Point{
			X: clamp(x, left, c.Width-right),
			Y: clamp(y, top, c.Height-bottom),
		}
	}
	return fitted
}

func posBounds(pos map[string]Point, axis func(Point) float64) (lo, hi float64) {
	first := true
	for _, p := range pos {
		v := axis(p)
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
