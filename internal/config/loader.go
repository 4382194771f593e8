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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SALESPULSE_CONFIG is set
//  3. env (prefix SALESPULSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SALESPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SALESPULSE_ADDR, SALESPULSE_TRACKING_WINDOW_DAYS, ...
	// Keys map to the koanf tags with underscores preserved.
	envProvider := env.Provider("SALESPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "salespulse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TrackingWindowDays < 1:
		return fmt.Errorf("%w: tracking_window_days must be at least 1", ErrInvalidConfig)
	case c.DailyWalkInMinimum < 1:
		return fmt.Errorf("%w: daily_walkin_minimum must be at least 1", ErrInvalidConfig)
	case c.DefaultWalkInTarget < 0 || c.DefaultClosureTarget < 0:
		return fmt.Errorf("%w: default targets must not be negative", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.MaxRequestBytes < 1:
		return fmt.Errorf("%w: max_request_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
