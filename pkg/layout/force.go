package layout

import (
	"math"
	"math/rand/v2"
)

// forceLayout computes a spring-embedding layout followed by extra pairwise
// repulsion passes that push any two nodes closer than MinSpacing apart along
// their connecting vector.
//
// The generator is seeded from Tuning.Seed and nodes iterate in sorted ID
// order, so repeated calls on the same unit are bit-identical. Output
// coordinates are in an arbitrary frame; the caller fits them to the canvas.
func (e *Engine) forceLayout(u Unit) map[string]Point {
	ids := u.ElementIDs
	pos := make(map[string]Point, len(ids))

	// Initial placement on a jittered circle. Purely radial starts make
	// symmetric graphs collapse onto a line, hence the jitter.
	rng := rand.New(rand.NewPCG(e.tuning.Seed, e.tuning.Seed^0x9e3779b9))
	radius := e.tuning.MinSpacing * float64(len(ids)) / (2 * math.Pi)
	for i, id := range ids {
		angle := 2 * math.Pi * float64(i) / float64(len(ids))
		pos[id] = Point{
			X: radius*math.Cos(angle) + rng.Float64()*10,
			Y: radius*math.Sin(angle) + rng.Float64()*10,
		}
	}

	k := e.tuning.MinSpacing // ideal edge length

	// Fruchterman-Reingold style passes with linear cooling.
	temp := radius
	if temp < k {
		temp = k
	}
	cooling := temp / float64(e.tuning.ForceIterations+1)

	for iter := 0; iter < e.tuning.ForceIterations; iter++ {
		disp := make(map[string]Point, len(ids))

		// Repulsion between every pair.
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				dx := pos[a].X - pos[b].X
				dy := pos[a].Y - pos[b].Y
				dist := distance(pos[b], pos[a])
				if dist < 1e-9 {
					dx, dy, dist = rng.Float64()-0.5, rng.Float64()-0.5, 1
				}
				force := k * k / dist
				fx, fy := dx/dist*force, dy/dist*force
				disp[a] = Point{X: disp[a].X + fx, Y: disp[a].Y + fy}
				disp[b] = Point{X: disp[b].X - fx, Y: disp[b].Y - fy}
			}
		}

		// Attraction along edges.
		for _, rel := range u.Relationships {
			a, b := rel.From, rel.To
			if _, ok := pos[a]; !ok {
				continue
			}
			if _, ok := pos[b]; !ok {
				continue
			}
			dx := pos[a].X - pos[b].X
			dy := pos[a].Y - pos[b].Y
			dist := distance(pos[b], pos[a])
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			fx, fy := dx/dist*force, dy/dist*force
			disp[a] = Point{X: disp[a].X - fx, Y: disp[a].Y - fy}
			disp[b] = Point{X: disp[b].X + fx, Y: disp[b].Y + fy}
		}

		// Apply displacements capped by the current temperature.
		for _, id := range ids {
			d := disp[id]
			dist := math.Hypot(d.X, d.Y)
			if dist < 1e-9 {
				continue
			}
			limited := min(dist, temp)
			pos[id] = Point{
				X: pos[id].X + d.X/dist*limited,
				Y: pos[id].Y + d.Y/dist*limited,
			}
		}
		temp -= cooling
	}

	// Extra repulsion passes: enforce a minimum center distance pairwise.
	for pass := 0; pass < e.tuning.RepulsionPasses; pass++ {
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				dx := pos[b].X - pos[a].X
				dy := pos[b].Y - pos[a].Y
				dist := distance(pos[a], pos[b])
				if dist < 1e-9 || dist >= e.tuning.MinSpacing {
					continue
				}
				force := (e.tuning.MinSpacing - dist) / dist * 0.5
				pos[a] = Point{X: pos[a].X - dx*force, Y: pos[a].Y - dy*force}
				pos[b] = Point{X: pos[b].X + dx*force, Y: pos[b].Y + dy*force}
			}
		}
	}

	return pos
}
