package config

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/sdejongh/hashmerge/pkg/digest"
	"github.com/sdejongh/hashmerge/pkg/models"
	"github.com/sdejongh/hashmerge/pkg/ratelimit"
)

// Config represents the application configuration
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Prompt  PromptConfig  `yaml:"prompt"`
}

// IndexConfig holds settings for directory indexing
type IndexConfig struct {
	Algorithm      digest.Algorithm `yaml:"algorithm"`
	BufferSize     int              `yaml:"buffer_size"`
	Parallel       bool             `yaml:"parallel"`        // Scan both directories concurrently
	BandwidthLimit string           `yaml:"bandwidth_limit"` // e.g. "10M", empty = unlimited
	Exclude        []string         `yaml:"exclude"`         // Base-name globs skipped before hashing
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar while indexing
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	File       string `yaml:"file"`   // Log file path (empty = no log file)
	MaxSize    int64  `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// PromptConfig holds the interactive confirmation default
type PromptConfig struct {
	Confirmation bool `yaml:"confirmation"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			Algorithm:  digest.SHA256,
			BufferSize: digest.DefaultBufferSize,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "info",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := digest.ParseAlgorithm(string(c.Index.Algorithm)); err != nil {
		return &models.ValidationError{
			Field:   "index.algorithm",
			Message: "must be 'sha256', 'md5', or 'blake3'",
		}
	}

	if c.Index.BufferSize < 4096 {
		return &models.ValidationError{
			Field:   "index.buffer_size",
			Message: "must be at least 4096 bytes",
		}
	}

	if _, err := ParseBandwidthLimit(c.Index.BandwidthLimit); err != nil {
		return err
	}

	for _, pattern := range c.Index.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return &models.ValidationError{
				Field:   "index.exclude",
				Message: "invalid pattern '" + pattern + "'",
			}
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "rotation limits cannot be negative",
		}
	}

	return nil
}

// ParseBandwidthLimit converts the configured bandwidth limit to bytes per
// second (0 = unlimited)
func ParseBandwidthLimit(value string) (int64, error) {
	bps, err := ratelimit.ParseBandwidth(value)
	if err != nil {
		return 0, &models.ValidationError{
			Field:   "index.bandwidth_limit",
			Message: err.Error(),
		}
	}
	return bps, nil
}
