// Package config holds the settings of the schedsim CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimConfig holds CLI defaults. Flags override values loaded from a file.
type SimConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Policy    string `yaml:"policy"`     // default policy for "run"
	Quantum   int    `yaml:"quantum"`    // default Round Robin quantum
	Direction string `yaml:"direction"`  // priority direction: lower, higher
	Color     bool   `yaml:"color"`      // colored terminal output
	Server    string `yaml:"server"`     // delegate simulations to this server URL
}

// DefaultSimConfig returns the built-in CLI defaults.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		LogLevel:  "warn",
		LogFormat: "text",
		Policy:    "fcfs",
		Quantum:   2,
		Direction: "lower",
	}
}

// LoadSimConfig overlays the YAML file at path on DefaultSimConfig. A missing
// file is not an error; the defaults are returned.
func LoadSimConfig(path string) (SimConfig, error) {
	cfg := DefaultSimConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ServerConfig holds configuration for the simulation server.
type ServerConfig struct {
	Addr           string // Listen address (default ":8080")
	LogLevel       string // Log level: debug, info, warn, error
	LogFormat      string // Log format: text, json
	MaxProcesses   int    // Largest process list accepted per request
	DefaultQuantum int    // Quantum used when a Round Robin request omits one
	MaxSlices      int    // Largest timeline a single simulation may produce
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "text",
		MaxProcesses:   10000,
		DefaultQuantum: 2,
		MaxSlices:      100000,
	}
}
