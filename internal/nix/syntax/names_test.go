// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"x", "x"},
		{"map", "map"},
		{"then", "then'"},
		{"inherit", "inherit'"},
		{"or", "or'"},
		{"with", "with'"},
		{"in", "in'"},
		{"rec", "rec'"},
		{"builtins", "builtins'"},
		{"assert", "assert'"},
		{"import", "import'"},
		{"let", "let'"},
		{"if", "if'"},
		{"else", "else'"},
		{"__gleamTag", "__gleamTag'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeIdentifier(tt.name))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "name", Key("name"))
	assert.Equal(t, `"inherit"`, Key("inherit"))
	assert.Equal(t, `"assert"`, Key("assert"))
	assert.Equal(t, "_0", Key("_0"))
	assert.Equal(t, `"weird name"`, Key("weird name"))
}

func TestSelect(t *testing.T) {
	assert.Equal(t, "r.field", Select("r", "field"))
	assert.Equal(t, `r."inherit"`, Select("r", "inherit"))
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("x"))
	assert.True(t, IsValidIdentifier("_pat'1"))
	assert.True(t, IsValidIdentifier("kebab-ish"))
	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("0x"))
	assert.False(t, IsValidIdentifier("-x"))
	assert.False(t, IsValidIdentifier("a b"))
}

func TestScope_Freshening(t *testing.T) {
	scope := NewScope()
	assert.Equal(t, "x", scope.Bind("x"))
	assert.Equal(t, "x'1", scope.Bind("x"))
	assert.Equal(t, "x'2", scope.Bind("x"))
	assert.Equal(t, "x'2", scope.Resolve("x"))
}

func TestScope_FreshensAgainstEnclosing(t *testing.T) {
	outer := NewScope()
	outer.Bind("x")

	inner := outer.Child()
	assert.Equal(t, "x'1", inner.Bind("x"))
	assert.Equal(t, "x'1", inner.Resolve("x"))
	assert.Equal(t, "x", outer.Resolve("x"))
}

func TestScope_SiblingsReuseNames(t *testing.T) {
	outer := NewScope()

	left := outer.Child()
	assert.Equal(t, "x", left.Bind("x"))

	right := outer.Child()
	assert.Equal(t, "x", right.Bind("x"))
}

func TestScope_ReservedNamesEscapeThenFreshen(t *testing.T) {
	scope := NewScope()
	assert.Equal(t, "then'", scope.Bind("then"))
	assert.Equal(t, "then'1", scope.Bind("then"))
}

func TestScope_Temporaries(t *testing.T) {
	scope := NewScope()
	assert.Equal(t, "_pat'", scope.Fresh(TempScrutinee))
	assert.Equal(t, "_pat'1", scope.Fresh(TempScrutinee))
	assert.Equal(t, "_pat'2", scope.Fresh(TempScrutinee))
	assert.Equal(t, "_assert'", scope.Fresh(TempAssert))
	assert.Equal(t, "_'", scope.Fresh(TempDiscard))
	assert.Equal(t, "_'1", scope.Fresh(TempDiscard))
}

func TestScope_Reserve(t *testing.T) {
	scope := NewScope()
	scope.Reserve("toList")
	assert.Equal(t, "toList'1", scope.Bind("toList"))
}
