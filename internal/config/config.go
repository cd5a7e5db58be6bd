// Package config handles resolving configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Log levels accepted in the config file.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Config is the resolved configuration for the process.
type Config struct {
	// LogLevel is the minimum level emitted by the logger.
	LogLevel string `yaml:"log_level"`
	// Address is the listen address for the HTTP API.
	Address string `yaml:"address"`
	// DBFilepath is the SQLite database location. ":memory:" is supported
	// for ephemeral stores.
	DBFilepath string `yaml:"db_filepath"`
	// DevMode enables request logging and source locations in log output.
	DevMode bool `yaml:"dev_mode"`
	// LogServerErrors logs the full error for responses the server error
	// handler normalizes to a 500.
	LogServerErrors bool `yaml:"log_server_errors"`
}

// Default returns a version of the config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   LevelInfo,
		Address:    "localhost:5000",
		DBFilepath: filepath.Join(xdg.DataHome, "melete", "db.sqlite"),
	}
}

// Load loads a YAML configuration file from a path, merges it with defaults,
// and validates it for completeness.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for completeness.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Address == "" {
		return fmt.Errorf("address must be set")
	}
	if c.DBFilepath == "" {
		return fmt.Errorf("db_filepath must be set")
	}
	return nil
}
