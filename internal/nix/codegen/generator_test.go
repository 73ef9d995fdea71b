// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glistix/glistix/pkg/ir"
)

// generate lowers a module and fails the test on error.
func generate(t *testing.T, module *ir.Module) string {
	t.Helper()
	source, err := New(module).Generate()
	require.NoError(t, err)
	return source
}

// fn builds a function definition with an expression body.
func fn(name string, public bool, parameters []string, body ...ir.Statement) *ir.Function {
	return &ir.Function{Name: name, Public: public, Parameters: parameters, Body: body, Line: 1}
}

func exprStmt(expr ir.Expr) ir.Statement {
	return &ir.ExprStatement{Expr: expr}
}

func intLit(value string) ir.Expr {
	return &ir.IntLit{Value: value}
}

func local(name string) ir.Expr {
	return &ir.Var{Name: name}
}

func TestGenerate_SimpleFunction(t *testing.T) {
	module := &ir.Module{
		Name: "my/mod",
		Definitions: []ir.Definition{
			fn("f", true, nil, exprStmt(&ir.BinOp{Op: ir.OpAddInt, Left: intLit("1"), Right: intLit("2")})),
		},
	}

	expected := strings.Join([]string{
		"let",
		"  f = { }: 1 + 2;",
		"in",
		"{",
		"  inherit f;",
		"}",
		"",
	}, "\n")
	assert.Equal(t, expected, generate(t, module))
}

func TestGenerate_PrivateItemsAreNotExported(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			fn("public_fn", true, nil, exprStmt(intLit("1"))),
			fn("private_fn", false, nil, exprStmt(intLit("2"))),
			&ir.Constant{Name: "secret", Public: false, Value: intLit("3")},
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "private_fn = { }: 2;")
	assert.Contains(t, source, "secret = 3;")
	assert.Contains(t, source, "inherit public_fn;")
	assert.NotContains(t, source, "inherit public_fn private_fn")
	assert.NotContains(t, source, "inherit secret")
}

func TestGenerate_Constructors(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.CustomType{
				Name:   "Pet",
				Public: true,
				Variants: []ir.Variant{
					{Tag: "Cat", Fields: []ir.VariantField{{Label: "name"}, {Label: "cute"}}},
					{Tag: "None"},
				},
			},
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, `Cat = name: cute: { __gleamTag = "Cat"; inherit name cute; };`)
	assert.Contains(t, source, `None = { __gleamTag = "None"; };`)
	assert.Contains(t, source, "inherit Cat None;")
}

func TestGenerate_PositionalConstructor(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.CustomType{
				Name:     "Pair",
				Public:   true,
				Variants: []ir.Variant{{Tag: "Pair", Fields: []ir.VariantField{{}, {}}}},
			},
		},
	}

	assert.Contains(t, generate(t, module), `Pair = _0: _1: { __gleamTag = "Pair"; inherit _0 _1; };`)
}

func TestGenerate_ReservedLabelConstructor(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.CustomType{
				Name:   "Simple3",
				Public: true,
				Variants: []ir.Variant{
					{Tag: "Simple3", Fields: []ir.VariantField{{Label: "inherit"}, {Label: "x"}}},
				},
			},
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "Simple3 =\n    inherit': x:")
	assert.Contains(t, source, `"inherit" = inherit';`)
	assert.Contains(t, source, "inherit x;")
}

func TestGenerate_OpaqueTypeConstructorsStayPrivate(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.CustomType{
				Name:     "Token",
				Public:   true,
				Opaque:   true,
				Variants: []ir.Variant{{Tag: "Token", Fields: []ir.VariantField{{Label: "value"}}}},
			},
			fn("wrap", true, []string{"value"}, exprStmt(&ir.Call{Fun: local("Token"), Args: []ir.Expr{local("value")}})),
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, `Token = value: { __gleamTag = "Token"; inherit value; };`)
	assert.Contains(t, source, "inherit wrap;")
	assert.NotContains(t, source, "inherit Token")
}

func TestGenerate_ReservedFunctionName(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			fn("assert", true, []string{"x"}, exprStmt(local("x"))),
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "assert' = x: x;")
	assert.Contains(t, source, `"assert" = assert';`)
	assert.NotContains(t, source, "inherit assert;")
}

func TestGenerate_Imports(t *testing.T) {
	module := &ir.Module{
		Name: "my/mod",
		Imports: []ir.Import{
			{
				Module: "gleam/list",
				Unqualified: []ir.UnqualifiedImport{
					{Name: "map"},
					{Name: "filter", As: "keep"},
				},
			},
		},
		Definitions: []ir.Definition{
			fn("f", true, []string{"xs"}, exprStmt(&ir.Call{
				Fun:  &ir.ModuleSelect{Module: "gleam/list", Alias: "list", Name: "reverse"},
				Args: []ir.Expr{&ir.Call{Fun: local("map"), Args: []ir.Expr{local("xs"), local("keep")}}},
			})),
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "list = builtins.import ../gleam/list.nix;")
	assert.Contains(t, source, "inherit (builtins.import ../gleam/list.nix) map;")
	assert.Contains(t, source, "keep = (builtins.import ../gleam/list.nix).filter;")
	assert.Contains(t, source, "list.reverse (map xs keep)")
}

func TestGenerate_DiscardedImportKeepsUnqualified(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Imports: []ir.Import{
			{Module: "gleam/io", Discarded: true, Unqualified: []ir.UnqualifiedImport{{Name: "println"}}},
		},
		Definitions: []ir.Definition{
			fn("f", true, nil, exprStmt(&ir.Call{Fun: local("println"), Args: []ir.Expr{&ir.StringLit{Value: "hi"}}})),
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "inherit (builtins.import ./gleam/io.nix) println;")
	assert.NotContains(t, source, "io = builtins.import")
}

func TestGenerate_ExternalFunction(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.Function{
				Name:      "read_file",
				Public:    true,
				Externals: map[string]ir.External{"nix": {Path: "./ffi.nix", Name: "readFile"}},
			},
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "read_file = (builtins.import ./ffi.nix).readFile;")
	assert.Contains(t, source, "inherit read_file;")
}

func TestGenerate_ExternalReservedName(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.Function{
				Name:      "import",
				Public:    true,
				Externals: map[string]ir.External{"nix": {Path: "ffi.nix", Name: "import"}},
			},
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, `import' = (builtins.import ./ffi.nix)."import";`)
	assert.Contains(t, source, `"import" = import';`)
}

func TestGenerate_UnsupportedTargetReferenceFails(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.Function{
				Name:      "erlang_only",
				Public:    true,
				Externals: map[string]ir.External{"erlang": {Path: "m_ffi", Name: "go"}},
			},
			fn("f", true, nil, exprStmt(&ir.Call{Fun: local("erlang_only")})),
		},
	}

	_, err := New(module).Generate()
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "erlang_only", unsupported.Function)
}

func TestGenerate_UnsupportedTargetUnreferencedIsSkipped(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.Function{
				Name:      "erlang_only",
				Public:    true,
				Externals: map[string]ir.External{"erlang": {Path: "m_ffi", Name: "go"}},
			},
			fn("f", true, nil, exprStmt(intLit("1"))),
		},
	}

	source := generate(t, module)
	assert.NotContains(t, source, "erlang_only")
	assert.Contains(t, source, "inherit f;")
}

func TestGenerate_PreludeInheritListsOnlyUsedHelpers(t *testing.T) {
	module := &ir.Module{
		Name: "my/mod",
		Definitions: []ir.Definition{
			fn("f", true, nil, exprStmt(&ir.List{Elements: []ir.Expr{intLit("1")}})),
		},
	}

	source := generate(t, module)
	assert.Contains(t, source, "inherit (import ../gleam.nix) toList;")
	assert.NotContains(t, source, "prepend")
	assert.NotContains(t, source, "makeError")
}

func TestGenerate_RootModulePreludePath(t *testing.T) {
	module := &ir.Module{
		Name: "mod",
		Definitions: []ir.Definition{
			fn("f", true, nil, exprStmt(&ir.List{})),
		},
	}

	assert.Contains(t, generate(t, module), "inherit (import ./gleam.nix) toList;")
}

func TestGenerate_ConstantUsesConstructor(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.Constant{
				Name:   "origin",
				Public: true,
				Value:  &ir.Call{Fun: local("Point"), Args: []ir.Expr{intLit("0"), intLit("0")}},
			},
			&ir.CustomType{
				Name:     "Point",
				Public:   true,
				Variants: []ir.Variant{{Tag: "Point", Fields: []ir.VariantField{{Label: "x"}, {Label: "y"}}}},
			},
		},
	}

	// Nix let-blocks bind mutually recursively, so source order works
	// even when a constant precedes the constructor it references.
	source := generate(t, module)
	assert.Contains(t, source, "origin = Point 0 0;")
	assert.Contains(t, source, `Point = x: y: { __gleamTag = "Point"; inherit x y; };`)
}

func TestGenerate_TypeAliasEmitsNothing(t *testing.T) {
	module := &ir.Module{
		Name: "m",
		Definitions: []ir.Definition{
			&ir.TypeAlias{Name: "Names", Public: true},
			fn("f", true, nil, exprStmt(intLit("1"))),
		},
	}

	source := generate(t, module)
	assert.NotContains(t, source, "Names")
}

func TestGenerate_EmptyModule(t *testing.T) {
	assert.Equal(t, "{ }\n", generate(t, &ir.Module{Name: "m"}))
}
