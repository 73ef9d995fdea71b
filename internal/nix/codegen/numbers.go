// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"fmt"
	"strings"
)

// intLiteral renders an integer literal spelling. Decimal literals pass
// through; base-prefixed literals (0x, 0o, 0b) have no Nix spelling and
// are routed through the parseNumber prelude helper.
func (g *Generator) intLiteral(value string) (lowered, error) {
	value = strings.ReplaceAll(value, "_", "")
	if value == "" {
		return lowered{}, internalf("empty integer literal")
	}

	digits := strings.TrimPrefix(value, "-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'o' || digits[1] == 'b') {
		call := fmt.Sprintf("%s %q", g.helper("parseNumber"), value)
		return lowered{doc: text(call), kind: applyExpr}, nil
	}

	if strings.HasPrefix(value, "-") {
		return lowered{doc: text(value), kind: opExpr}, nil
	}
	return lowered{doc: text(value), kind: atomExpr}, nil
}

// floatLiteral renders a float literal spelling. Gleam float syntax
// (decimal point required, optional exponent) is valid Nix as-is.
func floatLiteral(value string) (lowered, error) {
	value = strings.ReplaceAll(value, "_", "")
	if value == "" {
		return lowered{}, internalf("empty float literal")
	}
	if !strings.ContainsAny(value, ".eE") {
		value += ".0"
	}
	if strings.HasPrefix(value, "-") {
		return lowered{doc: text(value), kind: opExpr}, nil
	}
	return lowered{doc: text(value), kind: atomExpr}, nil
}
