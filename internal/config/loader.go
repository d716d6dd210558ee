package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. PADDOCK_OUT_DIR.
const EnvPrefix = "PADDOCK_"

// EnvConfigPath names the env var holding an optional YAML config path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML): path argument, else PADDOCK_CONFIG
//  3. env (prefix PADDOCK_)
//
// CLI flags are applied by the caller on top of the returned Config.
func Load(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PADDOCK_OUT_DIR -> out_dir; underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.OpenF1BaseURL) == "":
		return fmt.Errorf("%w: openf1_base_url must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ErgastBaseURL) == "":
		return fmt.Errorf("%w: ergast_base_url must not be empty", ErrInvalidConfig)
	case c.HTTPTimeoutSeconds <= 0:
		return fmt.Errorf("%w: http_timeout_seconds must be positive", ErrInvalidConfig)
	case c.PageLimit <= 0:
		return fmt.Errorf("%w: page_limit must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.OutDir) == "":
		return fmt.Errorf("%w: out_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
