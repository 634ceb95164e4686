// Package cache provides content-addressed caching for parsed models and
// computed layouts.
//
// Layout computation is deterministic, so a cache entry keyed on the model
// hash plus the layout options is valid forever; TTLs exist only to bound
// disk and memory usage. Three backends are provided: a file cache for CLI
// usage, a Redis cache for shared server deployments, and a null cache for
// tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// TTLs for the cacheable stages. Entries are content-addressed, so these
// exist only to bound storage growth, not to limit staleness.
const (
	TTLModel  = 30 * 24 * time.Hour
	TTLLayout = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every input that changes a layout result.
// Two identical models laid out with different options must not share a
// cache entry.
type LayoutKeyOpts struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	MarginX  float64 `json:"margin_x"`
	MarginY  float64 `json:"margin_y"`
	FullOnly bool    `json:"full_only"`
	Seed     uint64  `json:"seed"`
}

// Keyer generates cache keys for the pipeline's two cacheable stages.
type Keyer interface {
	// ModelKey generates a key for a parsed model, from the hash of its
	// source text.
	ModelKey(sourceHash string) string

	// LayoutKey generates a key for a computed layout set.
	LayoutKey(modelHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ModelKey generates a key for a parsed model.
func (k *DefaultKeyer) ModelKey(sourceHash string) string {
	return "model:" + sourceHash
}

// LayoutKey generates a key for a computed layout set.
// The options are hashed into the key so every variation gets its own entry.
func (k *DefaultKeyer) LayoutKey(modelHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", modelHash, opts)
}
