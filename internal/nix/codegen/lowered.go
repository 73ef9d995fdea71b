// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"github.com/glistix/glistix/internal/nix/doc"
)

// exprKind classifies a lowered expression for parenthesisation.
type exprKind int

const (
	// atomExpr never needs parentheses: identifiers, literals, lists,
	// attribute sets, selects, parenthesised expressions
	atomExpr exprKind = iota

	// applyExpr is a function application; it needs parentheses in
	// argument and select-base positions
	applyExpr

	// opExpr is an operator, lambda, conditional or let expression; it
	// needs parentheses everywhere but body positions
	opExpr
)

// lowered is an emitted expression together with its parenthesisation
// class.
type lowered struct {
	doc  doc.Doc
	kind exprKind
}

// atom returns the expression parenthesised unless it is already atomic.
// Required in argument and select-base positions.
func (l lowered) atom() doc.Doc {
	if l.kind == atomExpr {
		return l.doc
	}
	return parens(l.doc)
}

// operand returns the expression parenthesised when it is an operator
// expression. Applications bind tighter than every operator and pass
// through bare.
func (l lowered) operand() doc.Doc {
	if l.kind == opExpr {
		return parens(l.doc)
	}
	return l.doc
}

func text(s string) doc.Doc {
	return doc.Text(s)
}

func parens(d doc.Doc) doc.Doc {
	return doc.Concat(text("("), d, text(")"))
}

// app builds a curried application `f a b ...`. Arguments must already be
// atomic.
func app(fun doc.Doc, args ...doc.Doc) doc.Doc {
	parts := []doc.Doc{fun}
	for _, arg := range args {
		parts = append(parts, doc.Line(), arg)
	}
	return doc.Group(doc.Concat(parts[0], doc.Nest(doc.Concat(parts[1:]...))))
}

// listLit builds a Nix list literal `[ a b c ]`.
func listLit(elements []doc.Doc) doc.Doc {
	if len(elements) == 0 {
		return text("[ ]")
	}
	return doc.Group(doc.Concat(
		text("["),
		doc.Nest(doc.Concat(doc.Line(), doc.Join(doc.Line(), elements))),
		doc.Line(),
		text("]"),
	))
}

// attrEntry is one `key = value;` (or `inherit ...;`) entry of an
// attribute set literal.
type attrEntry struct {
	doc doc.Doc
}

func entry(d doc.Doc) attrEntry {
	return attrEntry{doc: d}
}

// attrset builds an attribute set literal `{ k = v; ... }`.
func attrset(entries []attrEntry) doc.Doc {
	if len(entries) == 0 {
		return text("{ }")
	}
	docs := make([]doc.Doc, len(entries))
	for i, e := range entries {
		docs[i] = e.doc
	}
	return doc.Group(doc.Concat(
		text("{"),
		doc.Nest(doc.Concat(doc.Line(), doc.Join(doc.Line(), docs))),
		doc.Line(),
		text("}"),
	))
}

// assign builds a let-binding `name = value;`, breaking after the equals
// sign when the value does not fit.
func assign(name string, value doc.Doc) doc.Doc {
	return doc.Group(doc.Concat(
		text(name+" ="),
		doc.Nest(doc.Concat(doc.Line(), value)),
		text(";"),
	))
}

// letIn builds `let <bindings> in <body>`. The bindings always break onto
// their own lines.
func letIn(bindings []doc.Doc, body doc.Doc) doc.Doc {
	if len(bindings) == 0 {
		return body
	}
	return doc.Concat(
		text("let"),
		doc.Nest(doc.Concat(doc.HardLine(), doc.Join(doc.HardLine(), bindings))),
		doc.HardLine(),
		text("in "),
		body,
	)
}

// ifBranch is one `if cond then body` arm of a conditional chain.
type ifBranch struct {
	cond doc.Doc
	body doc.Doc
}

// ifChain builds a right-biased `if ... else if ... else fallback` chain.
func ifChain(branches []ifBranch, fallback doc.Doc) doc.Doc {
	result := fallback
	for i := len(branches) - 1; i >= 0; i-- {
		branch := branches[i]
		result = doc.Group(doc.Concat(
			text("if "),
			branch.cond,
			text(" then"),
			doc.Nest(doc.Concat(doc.Line(), branch.body)),
			doc.Line(),
			text("else "),
			result,
		))
	}
	return result
}
