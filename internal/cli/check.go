// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glistix/glistix/internal/nix/codegen"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Generate in memory and report diagnostics",
	Long: `Decode and lower every typed-IR document without writing output.

Diagnostics distinguish references to functions with no Nix
implementation (an upstream type-checking gap) from malformed documents
and internal lowering failures.

Example:
  glistix check               # Check configured source paths
  glistix check ./build/ir    # Check a specific directory`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, failures := generateAll(cfg, args)
	for _, failure := range failures {
		var unsupported *codegen.UnsupportedError
		var internal *codegen.InternalError
		switch {
		case errors.As(failure, &unsupported):
			log.Error("missing target implementation", "module", unsupported.Module, "function", unsupported.Function)
		case errors.As(failure, &internal):
			log.Error("internal lowering failure", "err", internal)
		default:
			log.Error("invalid document", "err", failure)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d modules failed", len(failures), len(results)+len(failures))
	}
	log.Info("all modules check out", "modules", len(results))
	return nil
}
