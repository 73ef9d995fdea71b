// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface of the Nix code
// generator.
package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	output  string
	width   int
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "glistix",
	Short: "Nix code generator for type-checked Gleam modules",
	Long: `glistix translates type-checked module documents into Nix source files,
one file per module, together with the runtime prelude the generated
code depends on.

Example:
  glistix generate                  # Generate Nix modules from the current directory
  glistix check                     # Generate in memory and report diagnostics
  glistix watch                     # Watch for changes and regenerate
  glistix print build/my_mod.json   # Print a decoded module summary`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			log.SetLevel(log.ErrorLevel)
		case verbose:
			log.SetLevel(log.DebugLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: glistix.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output root (default: build/nix)")
	rootCmd.PersistentFlags().IntVarP(&width, "width", "w", 0, "render width (default: 80)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}
