// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package prelude carries the runtime support library installed next to
// generated output, and the contract generated code holds with it.
package prelude

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed gleam.nix
var source []byte

// FileName is the prelude's file name at the output root. Generated
// modules import it by a path relative to their own location.
const FileName = "gleam.nix"

// helperOrder is the prelude's public surface in declaration order.
// Inherit lists in generated modules follow this order.
var helperOrder = []string{
	"Ok",
	"Error",
	"isOk",
	"UtfCodepoint",
	"BitArray",
	"remainderInt",
	"divideInt",
	"divideFloat",
	"toList",
	"prepend",
	"listIsEmpty",
	"listToArray",
	"listHasAtLeastLength",
	"listHasLength",
	"strHasPrefix",
	"parseNumber",
	"parseEscape",
	"seqAll",
	"stringBits",
	"codepointBits",
	"sizedInt",
	"toBitArray",
	"bitArrayByteSize",
	"byteAt",
	"binaryFromBitSlice",
	"intFromBitSlice",
	"makeError",
}

var helperSet = func() map[string]bool {
	set := make(map[string]bool, len(helperOrder))
	for _, name := range helperOrder {
		set[name] = true
	}
	return set
}()

// Source returns the prelude's Nix source text.
func Source() []byte {
	return source
}

// Helpers returns the exported helper names in declaration order.
func Helpers() []string {
	helpers := make([]string, len(helperOrder))
	copy(helpers, helperOrder)
	return helpers
}

// IsHelper reports whether name is part of the prelude's public surface.
func IsHelper(name string) bool {
	return helperSet[name]
}

// SortUsed filters the canonical helper order down to the used set,
// giving inherit lists a stable order independent of traversal order.
func SortUsed(used map[string]bool) []string {
	var names []string
	for _, name := range helperOrder {
		if used[name] {
			names = append(names, name)
		}
	}
	return names
}

// Install writes the prelude into dir, creating it if needed.
func Install(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return fmt.Errorf("failed to write prelude: %w", err)
	}
	return nil
}
