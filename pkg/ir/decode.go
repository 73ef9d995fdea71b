// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"encoding/json"
	"fmt"
)

// DecodeModule decodes a serialized typed-IR document into a Module. The
// document is the kind-discriminated JSON tree produced by the type
// checker.
func DecodeModule(data []byte) (*Module, error) {
	var raw struct {
		Name        string            `json:"name"`
		Imports     []Import          `json:"imports"`
		Definitions []json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode module: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("module document has no name")
	}

	module := &Module{
		Name:    raw.Name,
		Imports: raw.Imports,
	}
	for i, def := range raw.Definitions {
		decoded, err := decodeDefinition(def)
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		module.Definitions = append(module.Definitions, decoded)
	}
	return module, nil
}

// present reports whether an optional child node is there; JSON null
// counts as absent.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// kindOf extracts the "kind" discriminator of a node.
func kindOf(data []byte) (string, error) {
	var envelope struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", err
	}
	if envelope.Kind == "" {
		return "", fmt.Errorf("node has no kind")
	}
	return envelope.Kind, nil
}

func decodeDefinition(data []byte) (Definition, error) {
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "custom_type":
		var def CustomType
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, err
		}
		return &def, nil

	case "type_alias":
		var def TypeAlias
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, err
		}
		return &def, nil

	case "constant":
		var raw struct {
			Name   string          `json:"name"`
			Public bool            `json:"public"`
			Value  json.RawMessage `json:"value"`
			Line   int             `json:"line"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", raw.Name, err)
		}
		return &Constant{Name: raw.Name, Public: raw.Public, Value: value, Line: raw.Line}, nil

	case "function":
		var raw struct {
			Name       string              `json:"name"`
			Public     bool                `json:"public"`
			Parameters []string            `json:"parameters"`
			Body       []json.RawMessage   `json:"body"`
			Externals  map[string]External `json:"externals"`
			Line       int                 `json:"line"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		body, err := decodeStatements(raw.Body)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", raw.Name, err)
		}
		return &Function{
			Name:       raw.Name,
			Public:     raw.Public,
			Parameters: raw.Parameters,
			Body:       body,
			Externals:  raw.Externals,
			Line:       raw.Line,
		}, nil

	default:
		return nil, fmt.Errorf("unknown definition kind %q", kind)
	}
}

func decodeStatements(raws []json.RawMessage) ([]Statement, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	statements := make([]Statement, 0, len(raws))
	for i, raw := range raws {
		statement, err := decodeStatement(raw)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

func decodeStatement(data []byte) (Statement, error) {
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "let", "assert":
		var raw struct {
			Pattern json.RawMessage `json:"pattern"`
			Value   json.RawMessage `json:"value"`
			Message json.RawMessage `json:"message"`
			Line    int             `json:"line"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		pattern, err := decodePattern(raw.Pattern)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		var message Expr
		if present(raw.Message) {
			if message, err = decodeExpr(raw.Message); err != nil {
				return nil, err
			}
		}
		return &Assignment{
			Kind:    AssignmentKind(kind),
			Pattern: pattern,
			Value:   value,
			Message: message,
			Line:    raw.Line,
		}, nil

	case "expr":
		var raw struct {
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStatement{Expr: expr}, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
}

func decodeExprs(raws []json.RawMessage) ([]Expr, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	exprs := make([]Expr, 0, len(raws))
	for i, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeExpr(data []byte) (Expr, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "int":
		var raw IntLit
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "bool":
		var raw BoolLit
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "nil":
		return &NilLit{}, nil

	case "float":
		var raw FloatLit
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "string":
		var raw StringLit
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "var":
		var raw Var
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "module_select":
		var raw ModuleSelect
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "call":
		var raw struct {
			Fun  json.RawMessage   `json:"fun"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		fun, err := decodeExpr(raw.Fun)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(raw.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Fun: fun, Args: args}, nil

	case "bin_op":
		var raw struct {
			Op    BinOpKind       `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: raw.Op, Left: left, Right: right}, nil

	case "negate_int", "negate_bool":
		var raw struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		if kind == "negate_int" {
			return &NegateInt{Value: value}, nil
		}
		return &NegateBool{Value: value}, nil

	case "fn":
		var raw struct {
			Parameters []string          `json:"parameters"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		body, err := decodeStatements(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Fn{Parameters: raw.Parameters, Body: body}, nil

	case "block":
		var raw struct {
			Statements []json.RawMessage `json:"statements"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		statements, err := decodeStatements(raw.Statements)
		if err != nil {
			return nil, err
		}
		return &Block{Statements: statements}, nil

	case "pipe":
		var raw struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Pipe{Left: left, Right: right}, nil

	case "tuple":
		var raw struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		elements, err := decodeExprs(raw.Elements)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elements: elements}, nil

	case "tuple_index":
		var raw struct {
			Tuple json.RawMessage `json:"tuple"`
			Index int             `json:"index"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		tuple, err := decodeExpr(raw.Tuple)
		if err != nil {
			return nil, err
		}
		return &TupleIndex{Tuple: tuple, Index: raw.Index}, nil

	case "list":
		var raw struct {
			Elements []json.RawMessage `json:"elements"`
			Tail     json.RawMessage   `json:"tail"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		elements, err := decodeExprs(raw.Elements)
		if err != nil {
			return nil, err
		}
		var tail Expr
		if present(raw.Tail) {
			if tail, err = decodeExpr(raw.Tail); err != nil {
				return nil, err
			}
		}
		return &List{Elements: elements, Tail: tail}, nil

	case "record_update":
		var raw struct {
			Base   json.RawMessage `json:"base"`
			Fields []struct {
				Label string          `json:"label"`
				Value json.RawMessage `json:"value"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		base, err := decodeExpr(raw.Base)
		if err != nil {
			return nil, err
		}
		update := &RecordUpdate{Base: base}
		for _, field := range raw.Fields {
			value, err := decodeExpr(field.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Label, err)
			}
			update.Fields = append(update.Fields, RecordUpdateField{Label: field.Label, Value: value})
		}
		return update, nil

	case "field_access":
		var raw struct {
			Record json.RawMessage `json:"record"`
			Label  string          `json:"label"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		record, err := decodeExpr(raw.Record)
		if err != nil {
			return nil, err
		}
		return &FieldAccess{Record: record, Label: raw.Label}, nil

	case "case":
		return decodeCase(data)

	case "panic", "todo":
		var raw struct {
			Message json.RawMessage `json:"message"`
			Line    int             `json:"line"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		var message Expr
		if present(raw.Message) {
			var err error
			if message, err = decodeExpr(raw.Message); err != nil {
				return nil, err
			}
		}
		if kind == "panic" {
			return &Panic{Message: message, Line: raw.Line}, nil
		}
		return &Todo{Message: message, Line: raw.Line}, nil

	case "bit_array":
		var raw struct {
			Segments []struct {
				Value    json.RawMessage `json:"value"`
				Type     SegmentType     `json:"type"`
				SizeBits int             `json:"size_bits"`
				Unit     int             `json:"unit"`
			} `json:"segments"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		lit := &BitArrayLit{}
		for i, segment := range raw.Segments {
			value, err := decodeExpr(segment.Value)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			lit.Segments = append(lit.Segments, BitArraySegment{
				Value:    value,
				Type:     segment.Type,
				SizeBits: segment.SizeBits,
				Unit:     segment.Unit,
			})
		}
		return lit, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}

func decodeCase(data []byte) (Expr, error) {
	var raw struct {
		Subjects []json.RawMessage `json:"subjects"`
		Clauses  []struct {
			Patterns [][]json.RawMessage `json:"patterns"`
			Guard    json.RawMessage     `json:"guard"`
			Body     json.RawMessage     `json:"body"`
		} `json:"clauses"`
		Line int `json:"line"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	subjects, err := decodeExprs(raw.Subjects)
	if err != nil {
		return nil, err
	}

	result := &Case{Subjects: subjects, Line: raw.Line}
	for i, clause := range raw.Clauses {
		decoded := Clause{}
		for _, row := range clause.Patterns {
			patterns := make([]Pattern, 0, len(row))
			for _, rawPattern := range row {
				pattern, err := decodePattern(rawPattern)
				if err != nil {
					return nil, fmt.Errorf("clause %d: %w", i, err)
				}
				patterns = append(patterns, pattern)
			}
			decoded.Patterns = append(decoded.Patterns, patterns)
		}
		if present(clause.Guard) {
			if decoded.Guard, err = decodeExpr(clause.Guard); err != nil {
				return nil, fmt.Errorf("clause %d guard: %w", i, err)
			}
		}
		if decoded.Body, err = decodeExpr(clause.Body); err != nil {
			return nil, fmt.Errorf("clause %d body: %w", i, err)
		}
		result.Clauses = append(result.Clauses, decoded)
	}
	return result, nil
}

func decodePattern(data []byte) (Pattern, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing pattern")
	}
	kind, err := kindOf(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "discard":
		var raw PatternDiscard
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "var":
		var raw PatternVar
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "int":
		var raw PatternInt
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "bool":
		var raw PatternBool
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "nil":
		return &PatternNil{}, nil

	case "float":
		var raw PatternFloat
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "string":
		var raw PatternString
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "string_prefix":
		var raw PatternStringPrefix
		err := json.Unmarshal(data, &raw)
		return &raw, err

	case "tuple":
		var raw struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		tuple := &PatternTuple{}
		for i, element := range raw.Elements {
			pattern, err := decodePattern(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			tuple.Elements = append(tuple.Elements, pattern)
		}
		return tuple, nil

	case "list":
		var raw struct {
			Elements []json.RawMessage `json:"elements"`
			Tail     json.RawMessage   `json:"tail"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		list := &PatternList{}
		for i, element := range raw.Elements {
			pattern, err := decodePattern(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			list.Elements = append(list.Elements, pattern)
		}
		if present(raw.Tail) {
			if list.Tail, err = decodePattern(raw.Tail); err != nil {
				return nil, err
			}
		}
		return list, nil

	case "constructor":
		var raw struct {
			Tag       string `json:"tag"`
			Arguments []struct {
				Label   string          `json:"label"`
				Index   int             `json:"index"`
				Pattern json.RawMessage `json:"pattern"`
			} `json:"arguments"`
			Spread bool `json:"spread"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		ctor := &PatternConstructor{Tag: raw.Tag, Spread: raw.Spread}
		for i, argument := range raw.Arguments {
			pattern, err := decodePattern(argument.Pattern)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			ctor.Arguments = append(ctor.Arguments, PatternConstructorArg{
				Label:   argument.Label,
				Index:   argument.Index,
				Pattern: pattern,
			})
		}
		return ctor, nil

	case "assign":
		var raw struct {
			Name    string          `json:"name"`
			Pattern json.RawMessage `json:"pattern"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		pattern, err := decodePattern(raw.Pattern)
		if err != nil {
			return nil, err
		}
		return &PatternAssign{Name: raw.Name, Pattern: pattern}, nil

	case "bit_array":
		var raw struct {
			Segments []struct {
				Pattern  json.RawMessage `json:"pattern"`
				Type     SegmentType     `json:"type"`
				SizeBits int             `json:"size_bits"`
				Unit     int             `json:"unit"`
			} `json:"segments"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		bits := &PatternBitArray{}
		for i, segment := range raw.Segments {
			pattern, err := decodePattern(segment.Pattern)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			bits.Segments = append(bits.Segments, PatternBitArraySegment{
				Pattern:  pattern,
				Type:     segment.Type,
				SizeBits: segment.SizeBits,
				Unit:     segment.Unit,
			})
		}
		return bits, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", kind)
	}
}
