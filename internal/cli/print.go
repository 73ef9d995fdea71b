// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/glistix/glistix/pkg/ir"
)

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Print a decoded module summary",
	Long: `Decode one typed-IR document and print a YAML summary of its imports
and definitions. Useful for inspecting what the type checker handed the
code generator.

Example:
  glistix print build/ir/my/mod.gleam_ir.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

// moduleSummary is the YAML shape printed by the print command.
type moduleSummary struct {
	Module      string              `yaml:"module"`
	Imports     []string            `yaml:"imports,omitempty"`
	Definitions []definitionSummary `yaml:"definitions"`
}

type definitionSummary struct {
	Kind   string   `yaml:"kind"`
	Name   string   `yaml:"name"`
	Public bool     `yaml:"public"`
	Detail []string `yaml:"detail,omitempty"`
}

var titleCaser = cases.Title(language.English)

func runPrint(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	module, err := ir.DecodeModule(content)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}

	summary := moduleSummary{Module: module.Name}
	for _, imp := range module.Imports {
		summary.Imports = append(summary.Imports, imp.Module)
	}
	for _, definition := range module.Definitions {
		summary.Definitions = append(summary.Definitions, summarize1(definition))
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(summary)
}

func summarize1(definition ir.Definition) definitionSummary {
	switch def := definition.(type) {
	case *ir.CustomType:
		detail := make([]string, 0, len(def.Variants))
		for _, variant := range def.Variants {
			detail = append(detail, fmt.Sprintf("%s/%d", variant.Tag, len(variant.Fields)))
		}
		return definitionSummary{Kind: titleCaser.String("custom type"), Name: def.Name, Public: def.Public, Detail: detail}

	case *ir.TypeAlias:
		return definitionSummary{Kind: titleCaser.String("type alias"), Name: def.Name, Public: def.Public}

	case *ir.Constant:
		return definitionSummary{Kind: titleCaser.String("constant"), Name: def.Name, Public: def.Public}

	case *ir.Function:
		detail := def.Parameters
		for target := range def.Externals {
			detail = append(detail, "@external("+target+")")
		}
		return definitionSummary{Kind: titleCaser.String("function"), Name: def.Name, Public: def.Public, Detail: detail}

	default:
		return definitionSummary{Kind: fmt.Sprintf("%T", definition)}
	}
}
