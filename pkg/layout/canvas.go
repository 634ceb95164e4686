package layout

// Canvas describes the bounded rendering surface a layout must fit into.
// Width, height, and margins are in whatever unit the rendering backend uses
// (points, pixels, EMUs scaled down); the engine is unit-agnostic.
type Canvas struct {
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	MarginX float64 `json:"margin_x" bson:"margin_x"`
	MarginY float64 `json:"margin_y" bson:"margin_y"`
}

// DefaultCanvas returns the 720×540 pt canvas (4:3 slide geometry) with
// 50 pt margins that the tool targets by default.
func DefaultCanvas() Canvas {
	return Canvas{Width: 720, Height: 540, MarginX: 50, MarginY: 50}
}

// Tuning holds the empirically chosen constants that shape layout behavior.
// The defaults were tuned by eye against real models; there is no derivation
// behind them, which is exactly why they are exposed as parameters.
type Tuning struct {
	// MinSpacing is the minimum center distance the force-directed strategy
	// pushes node pairs toward.
	MinSpacing float64 `json:"min_spacing" toml:"min_spacing"`

	// Padding inflates every bounding box during overlap checks.
	Padding float64 `json:"padding" toml:"padding"`

	// OverlapIterations caps the overlap resolver's passes. Residual overlap
	// after the cap is accepted, not an error.
	OverlapIterations int `json:"overlap_iterations" toml:"overlap_iterations"`

	// ShrinkFactor is the safety factor applied when fitting a layout's
	// bounding box into the margined canvas.
	ShrinkFactor float64 `json:"shrink_factor" toml:"shrink_factor"`

	// ForceIterations is the spring-embedding pass count.
	ForceIterations int `json:"force_iterations" toml:"force_iterations"`

	// RepulsionPasses is the number of extra pairwise repulsion passes after
	// spring embedding.
	RepulsionPasses int `json:"repulsion_passes" toml:"repulsion_passes"`

	// Seed fixes the force-directed strategy's random generator.
	Seed uint64 `json:"seed" toml:"seed"`
}

// DefaultTuning returns the standard tuning constants.
func DefaultTuning() Tuning {
	return Tuning{
		MinSpacing:        80,
		Padding:           20,
		OverlapIterations: 50,
		ShrinkFactor:      0.85,
		ForceIterations:   100,
		RepulsionPasses:   20,
		Seed:              42,
	}
}

// contentArea returns the usable region after insetting the canvas margins by
// (insetX, insetY). The extra y inset leaves room for the unit title the
// renderers draw above the system boundary.
func contentArea(c Canvas, insetX, insetY float64) Rect {
	mx := c.MarginX + insetX
	my := c.MarginY + insetY
	return Rect{X: mx, Y: my, Width: c.Width - 2*mx, Height: c.Height - 2*my}
}
