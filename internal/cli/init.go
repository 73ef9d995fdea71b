// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glistix/glistix/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new glistix configuration file",
	Long: `Initialize a new glistix configuration file in the current directory.

This command creates a glistix.yaml file with sensible defaults that
you can customize for your project.

Example:
  glistix init            # Create glistix.yaml
  glistix init --force    # Overwrite an existing config`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "glistix.yaml"
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	cfg := config.Default()
	if output != "" {
		cfg.Output = output
	}
	if width > 0 {
		cfg.Width = width
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configFile, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFile, err)
	}

	log.Info("created config", "path", configFile)
	return nil
}
