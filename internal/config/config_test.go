// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "build/nix", cfg.Output)
	assert.Equal(t, 80, cfg.Width)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, []string{"**/*.gleam_ir.json"}, cfg.Source.Include)
	assert.Equal(t, 500, cfg.Watch.Debounce)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Output, cfg.Output)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glistix.yaml")
	content := []byte("output: out/nix\nwidth: 100\nwatch:\n  debounce: 250\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out/nix", cfg.Output)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 250, cfg.Watch.Debounce)
	// Unset values keep their defaults.
	assert.True(t, cfg.Prelude)
	assert.Equal(t, 256, cfg.Watch.CacheSize)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".glistix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 120\n"), 0o644))

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
		{"negative width", func(c *Config) { c.Width = -1 }, "width"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"zero cache", func(c *Config) { c.Watch.CacheSize = 0 }, "watch.cacheSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}
