// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for the
// Nix code generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the glistix configuration.
type Config struct {
	// Output is the output root the generated modules are written under
	Output string `mapstructure:"output" yaml:"output"`

	// Width is the render width for generated source
	Width int `mapstructure:"width" yaml:"width"`

	// Prelude controls whether the runtime prelude is installed at the
	// output root
	Prelude bool `mapstructure:"prelude" yaml:"prelude"`

	// Source contains typed-IR document scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// SourceConfig contains typed-IR document scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce"`

	// CacheSize bounds the generated-output cache used to skip
	// unchanged modules between regenerations
	CacheSize int `mapstructure:"cacheSize" yaml:"cacheSize"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"glistix.yaml",
	"glistix.json",
	".glistix.yaml",
	".glistix.json",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:  "build/nix",
		Width:   80,
		Prelude: true,
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: []string{"**/*.gleam_ir.json"},
			Exclude: []string{"**/build/**", "**/.git/**"},
		},
		Watch: WatchConfig{
			Debounce:  500,
			CacheSize: 256,
		},
	}
}

// Load loads the configuration from the given path, or searches the
// working directory when the path is empty. Environment variables with
// the GLISTIX_ prefix override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GLISTIX")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromPath loads the configuration from a directory, searching the
// known config file names.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("width", defaults.Width)
	v.SetDefault("prelude", defaults.Prelude)
	v.SetDefault("source.paths", defaults.Source.Paths)
	v.SetDefault("source.include", defaults.Source.Include)
	v.SetDefault("source.exclude", defaults.Source.Exclude)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("watch.cacheSize", defaults.Watch.CacheSize)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Output == "" {
		return &ValidationError{Field: "output", Message: "must not be empty"}
	}
	if c.Width < 0 {
		return &ValidationError{Field: "width", Message: "must not be negative"}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{Field: "watch.debounce", Message: "must not be negative"}
	}
	if c.Watch.CacheSize < 1 {
		return &ValidationError{Field: "watch.cacheSize", Message: "must be at least 1"}
	}
	return nil
}
