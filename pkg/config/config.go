// Package config loads the optional sysviz.toml configuration file.
//
// All settings have working defaults; the file only needs to exist when a
// deployment wants to override them. Connection strings for Redis and Mongo
// are never compiled in: they come from the file or from environment
// variables (SYSVIZ_REDIS_URL, SYSVIZ_MONGO_URI), with the environment
// taking precedence.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/layout"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = "sysviz.toml"

// Config is the root configuration structure.
type Config struct {
	Canvas CanvasConfig  `toml:"canvas"`
	Tuning layout.Tuning `toml:"tuning"`
	Server ServerConfig  `toml:"server"`
	Cache  CacheConfig   `toml:"cache"`
}

// CanvasConfig overrides the default canvas geometry.
type CanvasConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	MarginX float64 `toml:"margin_x"`
	MarginY float64 `toml:"margin_y"`
}

// ServerConfig configures the diagram API server.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig configures the layout cache.
type CacheConfig struct {
	// Dir is the file cache directory. Empty selects the user cache dir.
	Dir string `toml:"dir"`

	// RedisURL switches the cache to Redis when set.
	RedisURL string `toml:"redis_url"`

	// TTLHours bounds entry lifetime; zero keeps entries forever.
	TTLHours int `toml:"ttl_hours"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	c := layout.DefaultCanvas()
	return Config{
		Canvas: CanvasConfig{
			Width:   c.Width,
			Height:  c.Height,
			MarginX: c.MarginX,
			MarginY: c.MarginY,
		},
		Tuning: layout.DefaultTuning(),
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: "sysviz",
		},
	}
}

// Load reads a config file and applies environment overrides.
//
// A missing file at the default path is not an error; an explicitly given
// path must exist. Settings absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	if v := os.Getenv("SYSVIZ_REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("SYSVIZ_MONGO_URI"); v != "" {
		cfg.Server.MongoURI = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas dimensions must be positive (%gx%g)", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.MarginX < 0 || c.Canvas.MarginY < 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas margins cannot be negative")
	}
	if 2*c.Canvas.MarginX >= c.Canvas.Width || 2*c.Canvas.MarginY >= c.Canvas.Height {
		return errors.New(errors.ErrCodeInvalidCanvas, "margins leave no usable canvas area")
	}
	if c.Tuning.OverlapIterations < 0 || c.Tuning.ForceIterations < 0 || c.Tuning.RepulsionPasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "iteration counts cannot be negative")
	}
	if c.Tuning.ShrinkFactor <= 0 || c.Tuning.ShrinkFactor > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "shrink factor must be in (0, 1], got %g", c.Tuning.ShrinkFactor)
	}
	return nil
}

// LayoutCanvas converts the canvas section to the layout package's type.
func (c *Config) LayoutCanvas() layout.Canvas {
	return layout.Canvas{
		Width:   c.Canvas.Width,
		Height:  c.Canvas.Height,
		MarginX: c.Canvas.MarginX,
		MarginY: c.Canvas.MarginY,
	}
}
