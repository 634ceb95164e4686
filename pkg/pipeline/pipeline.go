// Package pipeline provides the core layout pipeline for Sysviz.
//
// This package implements the complete parse → split → layout pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Extract a typed model graph from SysML text
//  2. Split: Derive the diagram units (one full overview plus one focused
//     unit per relationship)
//  3. Layout: Compute collision-free canvas positions for every unit
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SourcePath: "drone.sysml",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	overview := result.Layouts[0]
//
// Run individual stages:
//
//	// Parse only
//	g, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing graph
//	units, layouts, err := runner.ComputeLayouts(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sysviz/sysviz/pkg/cache"
	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/model"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width (4:3 slide geometry).
	DefaultWidth = 720.0

	// DefaultHeight is the default canvas height.
	DefaultHeight = 540.0

	// DefaultMarginX is the default horizontal canvas margin.
	DefaultMarginX = 50.0

	// DefaultMarginY is the default vertical canvas margin.
	DefaultMarginY = 50.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Source carries SysML text inline; SourcePath reads it
	// from a file. Source wins when both are set.
	Source     string `json:"source,omitempty"`
	SourcePath string `json:"source_path,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Layout options
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	MarginX  float64 `json:"margin_x,omitempty"`
	MarginY  float64 `json:"margin_y,omitempty"`
	FullOnly bool    `json:"full_only,omitempty"`
	Seed     uint64  `json:"seed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Tuning *layout.Tuning `json:"-"` // nil selects layout.DefaultTuning

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed model graph.
	Graph *model.Graph

	// ModelHash is the content hash of the serialized graph.
	ModelHash string

	// Units are the diagram units derived from the graph, full unit first.
	Units []layout.Unit

	// Layouts are the computed layouts, index-aligned with Units.
	Layouts []*layout.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount      int
	RelationshipCount int
	UnitCount         int
	ParseTime         time.Duration
	SplitTime         time.Duration
	LayoutTime        time.Duration
}

// CacheInfo tracks cache hits for each cacheable pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed model came from cache
	LayoutHit bool // Whether the layout set came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" && o.SourcePath == "" {
		return fmt.Errorf("source or source_path is required")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MarginX == 0 {
		o.MarginX = DefaultMarginX
	}
	if o.MarginY == 0 {
		o.MarginY = DefaultMarginY
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width <= 2*o.MarginX || o.Height <= 2*o.MarginY {
		return fmt.Errorf("margins leave no usable canvas area (%gx%g, margins %g/%g)",
			o.Width, o.Height, o.MarginX, o.MarginY)
	}
	return nil
}

// Canvas returns the layout canvas described by the options.
func (o *Options) Canvas() layout.Canvas {
	return layout.Canvas{
		Width:   o.Width,
		Height:  o.Height,
		MarginX: o.MarginX,
		MarginY: o.MarginY,
	}
}

// EngineTuning returns the tuning constants for the layout engine, with the
// options' seed applied.
func (o *Options) EngineTuning() layout.Tuning {
	t := layout.DefaultTuning()
	if o.Tuning != nil {
		t = *o.Tuning
	}
	if o.Seed != 0 {
		t.Seed = o.Seed
	}
	return t
}

// SourceName returns a short label for the model source, for logs and hooks.
func (o *Options) SourceName() string {
	if o.SourcePath != "" {
		return o.SourcePath
	}
	return "inline"
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		MarginX:  o.MarginX,
		MarginY:  o.MarginY,
		FullOnly: o.FullOnly,
		Seed:     o.Seed,
	}
}
