// Package config loads CLI configuration from defaults, an optional YAML file,
// TYPECONFIG_ environment variables and explicitly set flags, in that order of
// precedence (lowest first).
package config

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

// Defaults applied before any other source.
const (
	DefaultLogLevel = "info"
	DefaultFormat   = string(form.FormatJSON)
)

// Config holds the resolved CLI configuration.
type Config struct {
	LogLevel string         `koanf:"log_level"`
	Format   string         `koanf:"format"`
	Duration DurationConfig `koanf:"duration"`
}

// DurationConfig overrides the built-in duration unit bounds.
type DurationConfig struct {
	DefaultMax string `koanf:"default_max"`
	DefaultMin string `koanf:"default_min"`
}

// Range returns the configured bounds as a duration range.
func (d DurationConfig) Range() duration.Range {
	return duration.Range{
		Max: duration.Unit(strings.TrimSpace(d.DefaultMax)),
		Min: duration.Unit(strings.TrimSpace(d.DefaultMin)),
	}
}

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch form.Format(strings.ToLower(c.Format)) {
	case form.FormatJSON, form.FormatYAML:
	default:
		return fmt.Errorf("format %q must be json or yaml", c.Format)
	}

	bounds := c.Duration.Range()
	if _, err := duration.ParseUnit(string(bounds.Max)); err != nil {
		return fmt.Errorf("duration.default_max: %w", err)
	}
	if _, err := duration.ParseUnit(string(bounds.Min)); err != nil {
		return fmt.Errorf("duration.default_min: %w", err)
	}
	if !bounds.Valid() {
		return fmt.Errorf("duration.default_min %q is larger than duration.default_max %q", bounds.Min, bounds.Max)
	}
	return nil
}
