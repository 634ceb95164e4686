package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sysviz/sysviz/pkg/cache"
	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/model"
	"github.com/sysviz/sysviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → split → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	g, parseHit, err := r.ParseWithCacheInfo(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ElementCount = g.ElementCount()
	result.Stats.RelationshipCount = g.RelationshipCount()
	result.CacheInfo.ParseHit = parseHit

	// Content hash for cache keys and API responses
	if data, err := model.MarshalGraph(g); err == nil {
		result.ModelHash = cache.Hash(data)
	}

	r.Logger.Info("parsed model",
		"boundary", g.SystemBoundary,
		"elements", g.ElementCount(),
		"relationships", g.RelationshipCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Split
	splitStart := time.Now()
	result.Units = SplitUnits(g, opts)
	result.Stats.SplitTime = time.Since(splitStart)
	result.Stats.UnitCount = len(result.Units)
	observability.Pipeline().OnSplitComplete(ctx, len(result.Units), result.Stats.SplitTime)

	r.Logger.Info("split into units",
		"units", len(result.Units),
		"duration", result.Stats.SplitTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	layouts, layoutHit, err := r.LayoutWithCacheInfo(ctx, result.ModelHash, result.Units, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layouts = layouts
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layouts",
		"units", len(layouts),
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// ParseWithCacheInfo parses the model with caching and returns cache hit info.
//
// The options are passed by pointer so the loaded source text stays
// available to the caller for later stages.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts *Options) (*model.Graph, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	if err := loadSource(opts); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.ModelKey(cache.Hash([]byte(opts.Source)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "model")
			g, err := model.ReadGraph(bytes.NewReader(data))
			if err == nil {
				return g, true, nil // Cache hit
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "model")
		}
	}

	observability.Pipeline().OnParseStart(ctx, opts.SourceName())
	start := time.Now()
	g, err := Parse(*opts)
	observability.Pipeline().OnParseComplete(ctx, opts.SourceName(), countOrZero(g), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := model.MarshalGraph(g); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLModel)
			observability.Cache().OnCacheSet(ctx, "model", len(data))
		}
	}

	return g, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*model.Graph, error) {
	r.applyLogger(&opts)
	g, _, err := r.ParseWithCacheInfo(ctx, &opts)
	return g, err
}

// LayoutWithCacheInfo computes layouts for the units with caching and
// returns cache hit info. The cache key covers the model hash and every
// layout option, so any variation recomputes.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, modelHash string, units []layout.Unit, opts Options) ([]*layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(modelHash, opts.LayoutKeyOpts())

	if modelHash != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			cached, err := unmarshalLayouts(data)
			if err == nil && len(cached) == len(units) {
				return cached, true, nil // Cache hit
			}
			// Corrupt or mismatched entry falls through to recompute.
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	results, err := ComputeLayouts(ctx, units, opts)
	if err != nil {
		return nil, false, err
	}

	if modelHash != "" {
		if data, err := marshalLayouts(results); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return results, false, nil // Cache miss
}

// ComputeLayouts is a convenience wrapper that splits a graph and lays out
// every unit, without caching.
func (r *Runner) ComputeLayouts(ctx context.Context, g *model.Graph, opts Options) ([]layout.Unit, []*layout.Result, error) {
	r.applyLogger(&opts)
	units := SplitUnits(g, opts)
	results, err := ComputeLayouts(ctx, units, opts)
	if err != nil {
		return nil, nil, err
	}
	return units, results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func marshalLayouts(results []*layout.Result) ([]byte, error) {
	return json.Marshal(results)
}

func unmarshalLayouts(data []byte) ([]*layout.Result, error) {
	var results []*layout.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func countOrZero(g *model.Graph) int {
	if g == nil {
		return 0
	}
	return g.ElementCount()
}
