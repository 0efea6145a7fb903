// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration, read once at startup and passed
// explicitly into each component. KMeansSeed 0 means a fresh random seed per
// request; the default of 42 keeps repeated uploads of the same file on the
// same clusters.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"super_secret_marketing_key"`

	DefaultK       int   `env:"DEFAULT_K" envDefault:"5"`
	KMeansRestarts int   `env:"KMEANS_RESTARTS" envDefault:"10"`
	KMeansSeed     int64 `env:"KMEANS_SEED" envDefault:"42"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	MaxRows        int   `env:"MAX_ROWS" envDefault:"100000"`

	// SegmentRulesPath points at an optional YAML file overriding the
	// documented segment thresholds. Empty means built-in defaults.
	SegmentRulesPath string `env:"SEGMENT_RULES_PATH"`
}

// Load parses configuration from environment variables. Callers load a .env
// file first if they want one honored.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
