// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glistix/glistix/internal/config"
	"github.com/glistix/glistix/internal/nix/codegen"
	"github.com/glistix/glistix/internal/prelude"
	"github.com/glistix/glistix/internal/scanner"
	"github.com/glistix/glistix/pkg/ir"
)

var (
	generateDryRun  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate Nix modules from typed-IR documents",
	Long: `Generate Nix source files from type-checked module documents.

The generate command scans the given paths (or the configured source
paths) for typed-IR documents, lowers each module and writes one .nix
file per module under the output root, mirroring the module path. The
runtime prelude is installed at the output root.

Example:
  glistix generate                    # Generate from configured source paths
  glistix generate ./build/ir         # Generate from a specific directory
  glistix generate --dry-run          # Preview without writing
  glistix generate -o ./out           # Generate under a specific root`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing files")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if output != "" {
		cfg.Output = output
	}
	if width > 0 {
		cfg.Width = width
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}
	return cfg, nil
}

// generated is one successfully lowered module.
type generated struct {
	Module *ir.Module
	Source string
	Path   string
}

// generateAll scans paths, decodes every document and lowers every
// module. Per-module failures are collected rather than aborting the
// run.
func generateAll(cfg *config.Config, paths []string) ([]generated, []error) {
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	var results []generated
	var failures []error
	for _, path := range paths {
		s := scanner.New(scanner.Config{
			BasePath:        path,
			IncludePatterns: cfg.Source.Include,
			ExcludePatterns: cfg.Source.Exclude,
		})
		documents, err := s.Scan()
		if err != nil {
			failures = append(failures, fmt.Errorf("failed to scan %s: %w", path, err))
			continue
		}

		for _, document := range documents {
			module, err := ir.DecodeModule(document.Content)
			if err != nil {
				failures = append(failures, fmt.Errorf("%s: %w", document.Path, err))
				continue
			}
			source, err := codegen.New(module, codegen.WithWidth(cfg.Width)).Generate()
			if err != nil {
				failures = append(failures, fmt.Errorf("%s: %w", document.Path, err))
				continue
			}
			results = append(results, generated{
				Module: module,
				Source: source,
				Path:   outputPath(cfg.Output, module.Name),
			})
		}
	}
	return results, failures
}

// outputPath maps a module path to its output file, with module path
// separators becoming directories.
func outputPath(root, moduleName string) string {
	return filepath.Join(root, filepath.FromSlash(moduleName)+".nix")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, failures := generateAll(cfg, args)
	for _, failure := range failures {
		log.Error("generation failed", "err", failure)
	}

	if generateDryRun {
		for _, result := range results {
			fmt.Fprintf(os.Stdout, "# %s\n%s", result.Path, result.Source)
		}
		return summarize(len(results), len(failures))
	}

	for _, result := range results {
		if err := writeModule(result); err != nil {
			return err
		}
		log.Debug("wrote module", "module", result.Module.Name, "path", result.Path)
	}

	if cfg.Prelude && len(results) > 0 {
		if err := prelude.Install(cfg.Output); err != nil {
			return err
		}
		log.Debug("installed prelude", "path", filepath.Join(cfg.Output, prelude.FileName))
	}

	log.Info("generated", "modules", len(results), "output", cfg.Output)
	return summarize(len(results), len(failures))
}

func writeModule(result generated) error {
	dir := filepath.Dir(result.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.WriteFile(result.Path, []byte(result.Source), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", result.Path, err)
	}
	return nil
}

func summarize(succeeded, failed int) error {
	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed", failed, succeeded+failed)
	}
	if succeeded == 0 {
		return fmt.Errorf("no typed-IR documents found; expected files matching %s",
			strings.Join(config.Default().Source.Include, ", "))
	}
	return nil
}
