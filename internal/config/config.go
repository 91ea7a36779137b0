// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and ROSTER_ env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/roster/internal/domain/generator"
	"github.com/okian/roster/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RecordCount is the number of users generated per refresh.
	RecordCount int `koanf:"record_count"`

	// Seed makes generation reproducible. Zero seeds from the clock.
	Seed int64 `koanf:"seed"`

	// AvatarHost is the host of the avatar image service.
	AvatarHost string `koanf:"avatar_host"`

	// DefaultMetric is the ranking metric of a fresh session.
	DefaultMetric string `koanf:"default_metric"`

	// DefaultSort enables sorting for a fresh session.
	DefaultSort bool `koanf:"default_sort"`

	// EnabledMetrics lists the metric columns visible in a fresh session.
	EnabledMetrics []string `koanf:"enabled_metrics"`

	// MaxRosterLimit caps GET /roster?limit.
	MaxRosterLimit int `koanf:"max_roster_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		RecordCount:    generator.DefaultCount,
		AvatarHost:     generator.DefaultAvatarHost,
		DefaultMetric:  string(model.MetricTimeSpent),
		DefaultSort:    false,
		EnabledMetrics: []string{string(model.MetricTimeSpent), string(model.MetricRevenue)},
		MaxRosterLimit: 1000,
	}
}

// MetricKeys returns EnabledMetrics as metric keys.
func (c *Config) MetricKeys() []model.MetricKey {
	keys := make([]model.MetricKey, 0, len(c.EnabledMetrics))
	for _, s := range c.EnabledMetrics {
		keys = append(keys, model.MetricKey(s))
	}
	return keys
}

// normalize trims list entries and drops blanks; env values arrive comma separated.
func (c *Config) normalize() {
	out := make([]string, 0, len(c.EnabledMetrics))
	for _, s := range c.EnabledMetrics {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	c.EnabledMetrics = out
	c.DefaultMetric = strings.TrimSpace(c.DefaultMetric)
	c.AvatarHost = strings.TrimSpace(c.AvatarHost)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.RecordCount <= 0 {
		return fmt.Errorf("%w: record_count must be positive, got %d", ErrInvalidConfig, c.RecordCount)
	}
	if c.MaxRosterLimit <= 0 {
		return fmt.Errorf("%w: max_roster_limit must be positive, got %d", ErrInvalidConfig, c.MaxRosterLimit)
	}
	if c.AvatarHost == "" {
		return fmt.Errorf("%w: avatar_host must not be empty", ErrInvalidConfig)
	}
	if !model.MetricKey(c.DefaultMetric).Valid() {
		return fmt.Errorf("%w: unknown default_metric %q", ErrInvalidConfig, c.DefaultMetric)
	}
	for _, k := range c.EnabledMetrics {
		if !model.MetricKey(k).Valid() {
			return fmt.Errorf("%w: unknown enabled_metrics entry %q", ErrInvalidConfig, k)
		}
	}
	return nil
}
