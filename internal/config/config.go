// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - Validation errors wrap ErrInvalidConfig, loader errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"strconv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// RosterPath points to the paddler CSV (columns nombre,peso).
	RosterPath string `koanf:"roster_path"`

	// DefaultLanguage is used when the request names no supported language.
	DefaultLanguage string `koanf:"default_language"`

	// ReportFilename is the attachment name of exported reports.
	ReportFilename string `koanf:"report_filename"`

	// DefaultBoatSize is preselected when a request carries no boat_size.
	DefaultBoatSize int `koanf:"default_boat_size"`

	// Layouts maps boat size to bench count. Keys are strings so that
	// YAML and env providers can both fill the map.
	Layouts map[string]int `koanf:"layouts"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":5000",
		RosterPath:      "paddlers.csv",
		DefaultLanguage: "es",
		ReportFilename:  "balance_dragonboat.pdf",
		DefaultBoatSize: 10,
		Layouts: map[string]int{
			"10": 5,
			"20": 10,
		},
	}
}

// BenchesBySize converts Layouts into size -> benches.
func (c *Config) BenchesBySize() (map[int]int, error) {
	out := make(map[int]int, len(c.Layouts))
	for k, benches := range c.Layouts {
		size, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: layout key %q is not an integer", ErrInvalidConfig, k)
		}
		if size <= 0 || benches <= 0 {
			return nil, fmt.Errorf("%w: layout %d must have a positive size and bench count", ErrInvalidConfig, size)
		}
		out[size] = benches
	}
	return out, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ReportFilename == "" {
		return fmt.Errorf("%w: report_filename must not be empty", ErrInvalidConfig)
	}
	sizes, err := c.BenchesBySize()
	if err != nil {
		return err
	}
	if len(sizes) == 0 {
		return fmt.Errorf("%w: at least one layout is required", ErrInvalidConfig)
	}
	if _, ok := sizes[c.DefaultBoatSize]; !ok {
		return fmt.Errorf("%w: default_boat_size %d has no layout", ErrInvalidConfig, c.DefaultBoatSize)
	}
	return nil
}
