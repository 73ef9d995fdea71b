// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"strconv"

	"github.com/glistix/glistix/internal/nix/doc"
	"github.com/glistix/glistix/internal/nix/syntax"
	"github.com/glistix/glistix/pkg/ir"
)

// lowerExpr translates one typed expression into a Nix expression.
func (g *Generator) lowerExpr(expr ir.Expr, scope *syntax.Scope) (lowered, error) {
	switch e := expr.(type) {
	case *ir.IntLit:
		return g.intLiteral(e.Value)

	case *ir.BoolLit:
		if e.Value {
			return lowered{doc: text("true"), kind: atomExpr}, nil
		}
		return lowered{doc: text("false"), kind: atomExpr}, nil

	case *ir.NilLit:
		return lowered{doc: text("null"), kind: atomExpr}, nil

	case *ir.FloatLit:
		return floatLiteral(e.Value)

	case *ir.StringLit:
		literal, usesParseEscape := syntax.StringLiteral(e.Value)
		if usesParseEscape {
			g.helper("parseEscape")
		}
		return lowered{doc: text(literal), kind: atomExpr}, nil

	case *ir.Var:
		if g.unsupported[e.Name] {
			return lowered{}, &UnsupportedError{Module: g.module.Name, Function: e.Name}
		}
		return lowered{doc: text(scope.Resolve(e.Name)), kind: atomExpr}, nil

	case *ir.ModuleSelect:
		alias, ok := g.aliases[e.Alias]
		if !ok {
			return lowered{}, internalf("reference to unimported module alias %q", e.Alias)
		}
		return lowered{doc: text(syntax.Select(alias, e.Name)), kind: atomExpr}, nil

	case *ir.Call:
		return g.lowerCall(e.Fun, e.Args, scope)

	case *ir.Pipe:
		return g.lowerCall(e.Right, []ir.Expr{e.Left}, scope)

	case *ir.BinOp:
		return g.lowerBinOp(e, scope)

	case *ir.NegateInt:
		value, err := g.lowerExpr(e.Value, scope)
		if err != nil {
			return lowered{}, err
		}
		return lowered{doc: doc.Concat(text("-"), value.atom()), kind: opExpr}, nil

	case *ir.NegateBool:
		value, err := g.lowerExpr(e.Value, scope)
		if err != nil {
			return lowered{}, err
		}
		return lowered{doc: doc.Concat(text("!"), value.atom()), kind: opExpr}, nil

	case *ir.Fn:
		return g.lowerFn(e.Parameters, e.Body, scope)

	case *ir.Block:
		return g.lowerBody(e.Statements, scope.Child())

	case *ir.Tuple:
		elements, err := g.lowerAtoms(e.Elements, scope)
		if err != nil {
			return lowered{}, err
		}
		return lowered{doc: listLit(elements), kind: atomExpr}, nil

	case *ir.TupleIndex:
		tuple, err := g.lowerExpr(e.Tuple, scope)
		if err != nil {
			return lowered{}, err
		}
		index := text(strconv.Itoa(e.Index))
		return lowered{doc: app(text("builtins.elemAt"), tuple.atom(), index), kind: applyExpr}, nil

	case *ir.List:
		return g.lowerList(e, scope)

	case *ir.RecordUpdate:
		return g.lowerRecordUpdate(e, scope)

	case *ir.FieldAccess:
		record, err := g.lowerExpr(e.Record, scope)
		if err != nil {
			return lowered{}, err
		}
		access := doc.Concat(record.atom(), text("."+syntax.Key(e.Label)))
		return lowered{doc: access, kind: atomExpr}, nil

	case *ir.Case:
		return g.lowerCase(e, scope)

	case *ir.Panic:
		return g.lowerThrow("panic", "`panic` expression evaluated.", e.Message, e.Line, nil, scope)

	case *ir.Todo:
		return g.lowerThrow("todo", "This has not yet been implemented.", e.Message, e.Line, nil, scope)

	case *ir.BitArrayLit:
		return g.lowerBitArray(e, scope)

	default:
		return lowered{}, internalf("unhandled expression %T", expr)
	}
}

// lowerAtoms lowers a sequence of expressions into atomic documents, as
// required in list elements and argument positions.
func (g *Generator) lowerAtoms(exprs []ir.Expr, scope *syntax.Scope) ([]doc.Doc, error) {
	docs := make([]doc.Doc, 0, len(exprs))
	for _, expr := range exprs {
		l, err := g.lowerExpr(expr, scope)
		if err != nil {
			return nil, err
		}
		docs = append(docs, l.atom())
	}
	return docs, nil
}

// lowerCall emits a curried application. A zero-argument source function
// takes a single empty attribute set argument.
func (g *Generator) lowerCall(fun ir.Expr, args []ir.Expr, scope *syntax.Scope) (lowered, error) {
	funLowered, err := g.lowerExpr(fun, scope)
	if err != nil {
		return lowered{}, err
	}
	funDoc := funLowered.doc
	if funLowered.kind == opExpr {
		funDoc = parens(funDoc)
	}

	if len(args) == 0 {
		return lowered{doc: app(funDoc, text("{ }")), kind: applyExpr}, nil
	}
	argDocs, err := g.lowerAtoms(args, scope)
	if err != nil {
		return lowered{}, err
	}
	return lowered{doc: app(funDoc, argDocs...), kind: applyExpr}, nil
}

// binOpSymbols maps operators that lower to a native Nix infix operator.
// Integer and float division and remainder go through prelude helpers
// instead, to return 0 on a zero divisor.
var binOpSymbols = map[ir.BinOpKind]string{
	ir.OpAddInt:    "+",
	ir.OpSubInt:    "-",
	ir.OpMulInt:    "*",
	ir.OpAddFloat:  "+",
	ir.OpSubFloat:  "-",
	ir.OpMulFloat:  "*",
	ir.OpEq:        "==",
	ir.OpNotEq:     "!=",
	ir.OpLtInt:     "<",
	ir.OpLtEqInt:   "<=",
	ir.OpGtInt:     ">",
	ir.OpGtEqInt:   ">=",
	ir.OpLtFloat:   "<",
	ir.OpLtEqFloat: "<=",
	ir.OpGtFloat:   ">",
	ir.OpGtEqFloat: ">=",
	ir.OpAnd:       "&&",
	ir.OpOr:        "||",
	ir.OpConcat:    "+",
}

var binOpHelpers = map[ir.BinOpKind]string{
	ir.OpDivInt:   "divideInt",
	ir.OpRemInt:   "remainderInt",
	ir.OpDivFloat: "divideFloat",
}

func (g *Generator) lowerBinOp(e *ir.BinOp, scope *syntax.Scope) (lowered, error) {
	left, err := g.lowerExpr(e.Left, scope)
	if err != nil {
		return lowered{}, err
	}
	right, err := g.lowerExpr(e.Right, scope)
	if err != nil {
		return lowered{}, err
	}

	if helper, ok := binOpHelpers[e.Op]; ok {
		call := app(text(g.helper(helper)), left.atom(), right.atom())
		return lowered{doc: call, kind: applyExpr}, nil
	}

	symbol, ok := binOpSymbols[e.Op]
	if !ok {
		return lowered{}, internalf("unhandled binary operator %q", e.Op)
	}
	combined := doc.Group(doc.Concat(
		left.operand(),
		text(" "+symbol),
		doc.Nest(doc.Concat(doc.Line(), right.operand())),
	))
	return lowered{doc: combined, kind: opExpr}, nil
}

// lowerFn emits a curried lambda, one parameter per colon. A function
// without parameters takes an empty attribute set.
func (g *Generator) lowerFn(parameters []string, body []ir.Statement, scope *syntax.Scope) (lowered, error) {
	child := scope.Child()
	var header []doc.Doc
	if len(parameters) == 0 {
		header = append(header, text("{ }: "))
	}
	for _, parameter := range parameters {
		header = append(header, text(child.Bind(parameter)+": "))
	}

	bodyLowered, err := g.lowerBody(body, child)
	if err != nil {
		return lowered{}, err
	}
	header = append(header, bodyLowered.doc)
	return lowered{doc: doc.Concat(header...), kind: opExpr}, nil
}

func (g *Generator) lowerList(e *ir.List, scope *syntax.Scope) (lowered, error) {
	if e.Tail == nil {
		elements, err := g.lowerAtoms(e.Elements, scope)
		if err != nil {
			return lowered{}, err
		}
		call := app(text(g.helper("toList")), listLit(elements))
		return lowered{doc: call, kind: applyExpr}, nil
	}

	result, err := g.lowerExpr(e.Tail, scope)
	if err != nil {
		return lowered{}, err
	}
	resultDoc := result.atom()
	for i := len(e.Elements) - 1; i >= 0; i-- {
		element, err := g.lowerExpr(e.Elements[i], scope)
		if err != nil {
			return lowered{}, err
		}
		call := app(text(g.helper("prepend")), element.atom(), resultDoc)
		if i == 0 {
			return lowered{doc: call, kind: applyExpr}, nil
		}
		resultDoc = parens(call)
	}
	return lowered{doc: resultDoc, kind: atomExpr}, nil
}

func (g *Generator) lowerRecordUpdate(e *ir.RecordUpdate, scope *syntax.Scope) (lowered, error) {
	base, err := g.lowerExpr(e.Base, scope)
	if err != nil {
		return lowered{}, err
	}
	entries := make([]attrEntry, 0, len(e.Fields))
	for _, field := range e.Fields {
		value, err := g.lowerExpr(field.Value, scope)
		if err != nil {
			return lowered{}, err
		}
		entries = append(entries, entry(assign(syntax.Key(field.Label), value.doc)))
	}
	update := doc.Concat(base.atom(), text(" // "), attrset(entries))
	return lowered{doc: update, kind: opExpr}, nil
}

// lowerThrow emits `builtins.throw (makeError ...)` for panic, todo,
// failed assertions and inexhaustive cases.
func (g *Generator) lowerThrow(kind, defaultMessage string, message ir.Expr, line int, extra []attrEntry, scope *syntax.Scope) (lowered, error) {
	messageDoc := text(strconv.Quote(defaultMessage))
	if message != nil {
		messageLowered, err := g.lowerExpr(message, scope)
		if err != nil {
			return lowered{}, err
		}
		messageDoc = messageLowered.atom()
	}

	err := app(
		text(g.helper("makeError")),
		text(strconv.Quote(kind)),
		text(strconv.Quote(g.module.Name)),
		text(strconv.Itoa(line)),
		text(strconv.Quote(g.currentFn)),
		messageDoc,
		attrset(extra),
	)
	call := app(text("builtins.throw"), parens(err))
	return lowered{doc: call, kind: applyExpr}, nil
}
