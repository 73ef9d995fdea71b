// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModule_Function(t *testing.T) {
	document := []byte(`{
		"name": "my/mod",
		"definitions": [
			{
				"kind": "function",
				"name": "add",
				"public": true,
				"parameters": ["a", "b"],
				"line": 1,
				"body": [
					{
						"kind": "expr",
						"expr": {
							"kind": "bin_op",
							"op": "add_int",
							"left": {"kind": "var", "name": "a"},
							"right": {"kind": "var", "name": "b"}
						}
					}
				]
			}
		]
	}`)

	module, err := DecodeModule(document)
	require.NoError(t, err)
	assert.Equal(t, "my/mod", module.Name)
	require.Len(t, module.Definitions, 1)

	fn, ok := module.Definitions[0].(*Function)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.True(t, fn.Public)
	assert.Equal(t, []string{"a", "b"}, fn.Parameters)
	require.Len(t, fn.Body, 1)

	statement, ok := fn.Body[0].(*ExprStatement)
	require.True(t, ok)
	binOp, ok := statement.Expr.(*BinOp)
	require.True(t, ok)
	assert.Equal(t, OpAddInt, binOp.Op)
}

func TestDecodeModule_CustomTypeAndConstant(t *testing.T) {
	document := []byte(`{
		"name": "shapes",
		"definitions": [
			{
				"kind": "custom_type",
				"name": "Shape",
				"public": true,
				"variants": [
					{"tag": "Circle", "fields": [{"label": "radius"}]},
					{"tag": "Point"}
				]
			},
			{
				"kind": "constant",
				"name": "origin",
				"public": true,
				"value": {"kind": "call", "fun": {"kind": "var", "name": "Point"}}
			}
		]
	}`)

	module, err := DecodeModule(document)
	require.NoError(t, err)
	require.Len(t, module.Definitions, 2)

	custom, ok := module.Definitions[0].(*CustomType)
	require.True(t, ok)
	require.Len(t, custom.Variants, 2)
	assert.Equal(t, "Circle", custom.Variants[0].Tag)
	assert.Equal(t, "radius", custom.Variants[0].Fields[0].Label)
	assert.Empty(t, custom.Variants[1].Fields)

	constant, ok := module.Definitions[1].(*Constant)
	require.True(t, ok)
	call, ok := constant.Value.(*Call)
	require.True(t, ok)
	assert.Empty(t, call.Args)
}

func TestDecodeModule_CaseWithPatterns(t *testing.T) {
	document := []byte(`{
		"name": "m",
		"definitions": [
			{
				"kind": "function",
				"name": "f",
				"parameters": ["x"],
				"body": [
					{
						"kind": "expr",
						"expr": {
							"kind": "case",
							"line": 3,
							"subjects": [{"kind": "var", "name": "x"}],
							"clauses": [
								{
									"patterns": [[{"kind": "list", "elements": [], "tail": null}]],
									"body": {"kind": "int", "value": "0"}
								},
								{
									"patterns": [[
										{
											"kind": "list",
											"elements": [{"kind": "discard"}],
											"tail": {"kind": "var", "name": "rest"}
										}
									]],
									"guard": {"kind": "bool", "value": true},
									"body": {"kind": "var", "name": "rest"}
								}
							]
						}
					}
				]
			}
		]
	}`)

	module, err := DecodeModule(document)
	require.NoError(t, err)

	fn := module.Definitions[0].(*Function)
	caseExpr := fn.Body[0].(*ExprStatement).Expr.(*Case)
	assert.Equal(t, 3, caseExpr.Line)
	require.Len(t, caseExpr.Clauses, 2)

	first := caseExpr.Clauses[0].Patterns[0][0].(*PatternList)
	assert.Empty(t, first.Elements)
	assert.Nil(t, first.Tail)

	second := caseExpr.Clauses[1].Patterns[0][0].(*PatternList)
	require.Len(t, second.Elements, 1)
	require.NotNil(t, second.Tail)
	assert.Equal(t, "rest", second.Tail.(*PatternVar).Name)
	require.NotNil(t, caseExpr.Clauses[1].Guard)
}

func TestDecodeModule_LetAssertAndExternals(t *testing.T) {
	document := []byte(`{
		"name": "m",
		"imports": [
			{"module": "gleam/list", "alias": "list", "unqualified": [{"name": "map"}]}
		],
		"definitions": [
			{
				"kind": "function",
				"name": "read",
				"public": true,
				"externals": {"nix": {"path": "./ffi.nix", "name": "read"}}
			},
			{
				"kind": "function",
				"name": "main",
				"body": [
					{
						"kind": "assert",
						"line": 2,
						"pattern": {"kind": "bool", "value": true},
						"value": {"kind": "bool", "value": false}
					}
				]
			}
		]
	}`)

	module, err := DecodeModule(document)
	require.NoError(t, err)
	require.Len(t, module.Imports, 1)
	assert.Equal(t, "map", module.Imports[0].Unqualified[0].LocalName())

	external := module.Definitions[0].(*Function)
	assert.Empty(t, external.Body)
	assert.Equal(t, "./ffi.nix", external.Externals["nix"].Path)

	main := module.Definitions[1].(*Function)
	statement := main.Body[0].(*Assignment)
	assert.Equal(t, AssignmentAssert, statement.Kind)
	assert.Equal(t, 2, statement.Line)
	pattern, ok := statement.Pattern.(*PatternBool)
	require.True(t, ok)
	assert.True(t, pattern.Value)
}

func TestDecodeModule_Errors(t *testing.T) {
	_, err := DecodeModule([]byte(`{"definitions": []}`))
	assert.Error(t, err)

	_, err = DecodeModule([]byte(`{"name": "m", "definitions": [{"kind": "mystery"}]}`))
	assert.ErrorContains(t, err, "unknown definition kind")

	_, err = DecodeModule([]byte(`{"name": "m", "definitions": [
		{"kind": "constant", "name": "c", "value": {"kind": "wat"}}
	]}`))
	assert.ErrorContains(t, err, "unknown expression kind")
}
