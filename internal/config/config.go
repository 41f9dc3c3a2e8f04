// Package config loads the optional crickmetrics YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Data     string       `yaml:"data"`      // default CSV path
	DB       string       `yaml:"db"`        // SQLite path
	LogLevel string       `yaml:"log_level"` // zerolog level name
	Dates    DateBounds   `yaml:"dates"`
	Columns  Columns      `yaml:"columns"`
	Server   ServerConfig `yaml:"server"`
}

// DateBounds clamps the selectable match-date range.
type DateBounds struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// Columns maps source CSV headers to canonical column names.
type Columns struct {
	Rename map[string]string `yaml:"rename"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Dir is the default configuration and data directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".crickmetrics")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DB:       filepath.Join(Dir(), "deliveries.db"),
		LogLevel: "info",
		Dates:    DateBounds{Min: "2019-07-26", Max: "2025-10-30"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, _, err := cfg.DateRange(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DateRange parses the configured date bounds.
func (c *Config) DateRange() (from, to time.Time, err error) {
	from, err = time.Parse(dateLayout, c.Dates.Min)
	if err != nil {
		return from, to, fmt.Errorf("dates.min: %w", err)
	}
	to, err = time.Parse(dateLayout, c.Dates.Max)
	if err != nil {
		return from, to, fmt.Errorf("dates.max: %w", err)
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("dates.max %s is before dates.min %s", c.Dates.Max, c.Dates.Min)
	}
	return from, to, nil
}
