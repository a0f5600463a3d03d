// Package config holds the YAML run configuration for the CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls output rendering for a mailtrail run. Labels maps a
// file path given on the command line to the source label stamped on its
// records, overriding the default file base name.
type Config struct {
	Format   string            `yaml:"format"`
	Location string            `yaml:"location"`
	Labels   map[string]string `yaml:"labels"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Format: "text", Location: "UTC"}
}

// Load reads a YAML configuration file. Fields absent from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return nil
}
