// Package config loads server settings from PHOTOSVG_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PHOTOSVG"

// Config holds runtime settings. Conversion fields are the defaults used when
// a tool call or CLI invocation omits them.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MaxDimension bounds the longest image side before conversion. 0 disables
	// downscaling.
	MaxDimension int `envconfig:"MAX_DIMENSION" default:"400"`

	Threshold      int     `envconfig:"THRESHOLD" default:"128"`
	Simplification float64 `envconfig:"SIMPLIFICATION" default:"2"`
	BlurRadius     float64 `envconfig:"BLUR_RADIUS" default:"0"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		MaxDimension:   400,
		Threshold:      128,
		Simplification: 2,
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Validate rejects negative sizes and tolerances.
func (c *Config) Validate() error {
	if c.MaxDimension < 0 {
		return fmt.Errorf("max dimension must be >= 0, got %d", c.MaxDimension)
	}
	if c.Simplification < 0 {
		return fmt.Errorf("simplification must be >= 0, got %v", c.Simplification)
	}
	if c.BlurRadius < 0 {
		return fmt.Errorf("blur radius must be >= 0, got %v", c.BlurRadius)
	}
	return nil
}
