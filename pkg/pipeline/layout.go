package pipeline

import (
	"context"
	"time"

	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/model"
	"github.com/sysviz/sysviz/pkg/observability"
)

// SplitUnits derives the diagram units for a graph, honoring FullOnly.
func SplitUnits(g *model.Graph, opts Options) []layout.Unit {
	units := layout.Split(g)
	if !opts.FullOnly {
		return units
	}
	var full []layout.Unit
	for _, u := range units {
		if u.Kind == layout.UnitFull {
			full = append(full, u)
		}
	}
	return full
}

// ComputeLayouts runs the engine over every unit. The returned slice is
// index-aligned with units.
//
// Layout never fails per unit: strategy fallback happens inside the engine,
// so the only error path here is invalid canvas geometry.
func ComputeLayouts(ctx context.Context, units []layout.Unit, opts Options) ([]*layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	engine := layout.NewEngine(opts.Canvas(),
		layout.WithTuning(opts.EngineTuning()),
		layout.WithLogger(opts.Logger))

	results := make([]*layout.Result, 0, len(units))
	for _, u := range units {
		observability.Pipeline().OnLayoutStart(ctx, u.ID, len(u.ElementIDs))
		start := time.Now()
		res := engine.Layout(u)
		observability.Pipeline().OnLayoutComplete(ctx, u.ID, time.Since(start), nil)
		results = append(results, res)
	}
	return results, nil
}
