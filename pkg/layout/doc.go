// Package layout computes collision-free, canvas-fitted diagram layouts for
// model graphs.
//
// The package decomposes a model graph into independently renderable diagram
// units (one full unit plus one focused unit per relationship), selects a
// placement strategy per unit based on its shape, iteratively resolves
// bounding-box overlaps, and scales the result into a bounded canvas.
//
// # Pipeline
//
//	units := layout.Split(graph)
//	engine := layout.NewEngine(layout.DefaultCanvas())
//	for _, u := range units {
//	    result := engine.Layout(u)
//	    // hand result to a rendering backend
//	}
//
// # Strategies
//
// The engine tries strategies in a fixed priority order:
//
//  1. Zero or one node: center placement.
//  2. Focused units with a resolved part/actor/use-case context: a fixed-zone
//     layout (use-case ellipse center-right, actor circle tangent to its right
//     edge, part rectangle bottom-left).
//  3. Full units: hierarchical zoned layout; on failure, force-directed.
//  4. Two or three generic nodes: symmetric simple layout.
//  5. Everything else: deterministic force-directed layout.
//
// Full-unit output is additionally overlap-resolved and fitted to the canvas.
// Focused and simple layouts compute canvas coordinates directly.
//
// # Determinism
//
// All iteration is over sorted element IDs and the force-directed strategy
// seeds its generator from Tuning.Seed, so repeated calls on identical input
// produce identical output. The engine holds no mutable state and is safe for
// concurrent use on independent units.
package layout
