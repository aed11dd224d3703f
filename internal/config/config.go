package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PipelineConfig represents pipeline configuration
type PipelineConfig struct {
	InputDir  string `mapstructure:"input_dir"`  // Directory scanned for meter CSV files
	OutputDir string `mapstructure:"output_dir"` // Directory all artifacts are written to
	Workers   int    `mapstructure:"workers"`    // Concurrent file loaders (clamped to file count)
	TopPeaks  int    `mapstructure:"top_peaks"`  // Hourly peaks shown in the dashboard scatter
	Timezone  string `mapstructure:"timezone"`   // IANA zone applied to zone-less timestamps (e.g. "Asia/Tokyo", "UTC")
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates pipeline configuration
func (c *PipelineConfig) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if c.TopPeaks < 1 {
		return fmt.Errorf("top_peaks must be at least 1")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return nil
}

// Location resolves the configured timezone. An empty value means UTC.
// Supports formats:
//   - IANA timezone names: "Asia/Tokyo", "America/New_York", "UTC"
//   - Offset format: "+09:00", "-05:00", "+00:00"
func (c *PipelineConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err == nil {
		return loc, nil
	}

	return parseOffsetTimezone(c.Timezone)
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
