// Package config defines paddock configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and PADDOCK_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OpenF1BaseURL is the session/telemetry API root.
	OpenF1BaseURL string `koanf:"openf1_base_url"`

	// ErgastBaseURL is the standings/results API root (Jolpi mirror of Ergast).
	ErgastBaseURL string `koanf:"ergast_base_url"`

	// HTTPTimeoutSeconds bounds every upstream request.
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds"`

	// PageLimit is the limit sent to paginated standings/results endpoints.
	PageLimit int `koanf:"page_limit"`

	// Season is the default year; 0 means the current UTC year.
	Season int `koanf:"season"`

	// OutDir receives schedule.json, drivers.json and stats/.
	OutDir string `koanf:"out_dir"`

	// CachePath enables the SQLite response cache when non-empty.
	CachePath string `koanf:"cache_path"`

	// MetricsFile enables the Prometheus textfile dump when non-empty.
	MetricsFile string `koanf:"metrics_file"`

	// UserAgent is sent on every upstream request.
	UserAgent string `koanf:"user_agent"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		OpenF1BaseURL:      "https://api.openf1.org/v1",
		ErgastBaseURL:      "https://api.jolpi.ca/ergast/f1",
		HTTPTimeoutSeconds: 25,
		PageLimit:          2000,
		Season:             0,
		OutDir:             "public/data",
		UserAgent:          "paddock/1.0",
	}
}

// HTTPTimeout returns the upstream request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// SeasonOr returns the configured season, or now's UTC year when unset.
func (c *Config) SeasonOr(now time.Time) int {
	if c.Season > 0 {
		return c.Season
	}
	return now.UTC().Year()
}
