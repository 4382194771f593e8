// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) layering file and env on top.
// - External errors are wrapped via this package's sentinel errors.
package config

import (
	"time"
)

// Default engine configuration.
const (
	defaultTrackingWindowDays = 7
	defaultDailyWalkInMinimum = 1
	defaultWalkInTarget       = 30
	defaultClosureTarget      = 3
	defaultScaleThresholdDays = 20
	defaultCacheSize          = 256
	defaultCacheTTL           = 5 * time.Minute
	defaultMaxRequestBytes    = 8 << 20
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// TrackingWindowDays is the rolling window for effort metrics.
	TrackingWindowDays int `koanf:"tracking_window_days"`

	// DailyWalkInMinimum is the per-day walk-in count required for a day
	// to classify as met.
	DailyWalkInMinimum int `koanf:"daily_walkin_minimum"`

	// DefaultWalkInTarget and DefaultClosureTarget are the monthly
	// bonus-convention targets applied to unconfigured users.
	DefaultWalkInTarget  int `koanf:"default_walkin_target"`
	DefaultClosureTarget int `koanf:"default_closure_target"`

	// ScaleThresholdDays is the window length below which monthly walk-in
	// targets are pro-rated.
	ScaleThresholdDays int `koanf:"scale_threshold_days"`

	// CacheSize bounds the report memoization cache; 0 disables it.
	CacheSize int `koanf:"cache_size"`

	// CacheTTL expires memoized reports.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// MaxRequestBytes caps the POST /v1/report body size.
	MaxRequestBytes int64 `koanf:"max_request_bytes"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9090",
		TrackingWindowDays:   defaultTrackingWindowDays,
		DailyWalkInMinimum:   defaultDailyWalkInMinimum,
		DefaultWalkInTarget:  defaultWalkInTarget,
		DefaultClosureTarget: defaultClosureTarget,
		ScaleThresholdDays:   defaultScaleThresholdDays,
		CacheSize:            defaultCacheSize,
		CacheTTL:             defaultCacheTTL,
		MaxRequestBytes:      defaultMaxRequestBytes,
	}
}
