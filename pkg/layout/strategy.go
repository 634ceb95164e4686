package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

// Zone geometry constants, in canvas units. Tuned against the default
// 720×540 canvas but expressed as insets so other canvas sizes degrade
// gracefully.
const (
	// boundaryTitleHeight reserves room above the system boundary frame for
	// its title text.
	boundaryTitleHeight = 40.0

	// Hierarchical layout insets the margins further to keep shapes clear of
	// the boundary frame and its title.
	hierInsetX = 40.0
	hierInsetY = 90.0

	// Focused layout insets.
	focusedInsetX = 30.0
	focusedInsetY = 80.0

	// focusedActorSize is the diameter of the actor "port" circle in focused
	// layouts.
	focusedActorSize = 55.0

	// Canvas fitting insets (top keeps clear of the title).
	fitInsetX   = 30.0
	fitInsetTop = 70.0
	fitInsetBot = 30.0
)

// =============================================================================
// Engine
// =============================================================================

// Engine computes layouts for diagram units. It is a pure computation over
// its read-only configuration: safe for concurrent use and free of state
// between calls.
type Engine struct {
	canvas Canvas
	tuning Tuning
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning overrides the default tuning constants.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithLogger sets the logger used for strategy-fallback notices.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine for the given canvas.
func NewEngine(canvas Canvas, opts ...Option) *Engine {
	e := &Engine{
		canvas: canvas,
		tuning: DefaultTuning(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Canvas returns the engine's canvas.
func (e *Engine) Canvas() Canvas { return e.canvas }

// Tuning returns the engine's tuning constants.
func (e *Engine) Tuning() Tuning { return e.tuning }

// =============================================================================
// Strategy Selection
// =============================================================================

// Layout computes placements for every element of a diagram unit.
//
// Strategies are tried in priority order; a failing strategy falls through to
// the next rather than propagating an error, so Layout always returns a
// complete Result.
func (e *Engine) Layout(u Unit) *Result {
	res := &Result{
		UnitID:         u.ID,
		SystemBoundary: boundaryRect(e.canvas),
		Placed:         make(map[string]*PlacedElement, len(u.ElementIDs)),
	}

	ids := u.ElementIDs
	sizes := e.unitSizes(u)

	var pos map[string]Point
	switch {
	case len(ids) == 0:
		return res

	case len(ids) == 1:
		pos = map[string]Point{ids[0]: {X: e.canvas.Width / 2, Y: e.canvas.Height / 2}}

	case u.Kind == UnitFocused && u.Context.Valid:
		// Positions are computed directly in canvas coordinates; no overlap
		// resolution or fitting afterwards.
		pos = e.focusedLayout(u, sizes)

	case u.Kind == UnitFull:
		var err error
		pos, err = e.hierarchicalLayout(u, sizes)
		if err != nil {
			e.logger.Warn("hierarchical layout failed, using force-directed", "unit", u.ID, "err", err)
			pos = e.forceLayout(u)
		}
		pos = e.resolveOverlaps(pos, sizes)
		pos = e.fitToCanvas(pos)

	case len(ids) == 2 || len(ids) == 3:
		pos = e.simpleLayout(ids)

	default:
		pos = e.forceLayout(u)
		pos = e.resolveOverlaps(pos, sizes)
		pos = e.fitToCanvas(pos)
	}

	for id, p := range pos {
		elem, ok := u.Graph.Element(id)
		if !ok {
			continue
		}
		size := sizes[id]
		placed := &PlacedElement{
			ElementID: id,
			Kind:      elem.Kind,
			CenterX:   p.X,
			CenterY:   p.Y,
			Width:     size.Width,
			Height:    size.Height,
		}
		e.clampToCanvas(placed)
		res.Placed[id] = placed
	}

	return res
}

// unitSizes computes the bounding box of every unit element up front so the
// strategies and the overlap resolver agree on dimensions.
func (e *Engine) unitSizes(u Unit) map[string]Size {
	sizes := make(map[string]Size, len(u.ElementIDs))
	for _, elem := range u.Elements() {
		if u.Kind == UnitFocused {
			sizes[elem.ID] = FocusedElementSize(elem.Kind, e.canvas)
		} else {
			sizes[elem.ID] = ElementSize(elem.Kind, elem.DisplayName())
		}
	}
	return sizes
}

// clampToCanvas pulls an element fully inside the margined canvas as a final
// safety net. The top clearance is larger to keep shapes below the title.
func (e *Engine) clampToCanvas(p *PlacedElement) {
	c := e.canvas
	minX := c.MarginX + p.Width/2 + 20
	maxX := c.Width - c.MarginX - p.Width/2 - 20
	minY := c.MarginY + p.Height/2 + 80
	maxY := c.Height - c.MarginY - p.Height/2 - 20

	// A canvas too small for the shape leaves no valid band; keep the center
	// pinned to the midpoint rather than oscillating between bounds.
	if minX > maxX {
		p.CenterX = c.Width / 2
	} else {
		p.CenterX = clamp(p.CenterX, minX, maxX)
	}
	if minY > maxY {
		p.CenterY = c.Height / 2
	} else {
		p.CenterY = clamp(p.CenterY, minY, maxY)
	}
}
