// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"github.com/glistix/glistix/internal/nix/doc"
	"github.com/glistix/glistix/internal/nix/syntax"
	"github.com/glistix/glistix/pkg/ir"
)

// lowerBody sequences a statement list into one expression. The source
// language is strict: discarded expression statements and the checks of
// `let assert` must be evaluated even though nothing reads their value.
// Each becomes a let-binding whose name is collected and forced, in
// statement order, before the body's value through builtins.seq (one
// slot) or the seqAll prelude helper (several).
//
// Forcing is shallow. Effects buried inside an unforced field of a
// discarded value stay unevaluated; this is a documented limit of the
// translation.
func (g *Generator) lowerBody(statements []ir.Statement, scope *syntax.Scope) (lowered, error) {
	if len(statements) == 0 {
		return lowered{}, internalf("empty statement sequence")
	}

	var bindings []doc.Doc
	var forced []string
	var final lowered

	for i, statement := range statements {
		last := i == len(statements)-1

		switch st := statement.(type) {
		case *ir.ExprStatement:
			value, err := g.lowerExpr(st.Expr, scope)
			if err != nil {
				return lowered{}, err
			}
			if last {
				final = value
				break
			}
			slot := scope.Fresh(syntax.TempDiscard)
			bindings = append(bindings, assign(slot, value.doc))
			forced = append(forced, slot)

		case *ir.Assignment:
			bound, err := g.lowerAssignment(st, scope, &bindings, &forced)
			if err != nil {
				return lowered{}, err
			}
			if last {
				final = bound
			}

		default:
			return lowered{}, internalf("unhandled statement %T", statement)
		}
	}

	body := final.doc
	bodyKind := final.kind
	switch len(forced) {
	case 0:
	case 1:
		body = app(text("builtins.seq"), text(forced[0]), final.atom())
		bodyKind = applyExpr
	default:
		slots := make([]doc.Doc, len(forced))
		for i, slot := range forced {
			slots[i] = text(slot)
		}
		body = app(text(g.helper("seqAll")), listLit(slots), final.atom())
		bodyKind = applyExpr
	}

	if len(bindings) == 0 {
		return lowered{doc: body, kind: bodyKind}, nil
	}
	return lowered{doc: letIn(bindings, body), kind: opExpr}, nil
}

// lowerAssignment emits the bindings of one `let` or `let assert`
// statement and returns a reference to the assigned value, which becomes
// the body value when the assignment ends the sequence.
func (g *Generator) lowerAssignment(st *ir.Assignment, scope *syntax.Scope, bindings *[]doc.Doc, forced *[]string) (lowered, error) {
	value, err := g.lowerExpr(st.Value, scope)
	if err != nil {
		return lowered{}, err
	}

	// `let _ = e` discards but still evaluates; it shares the discarded
	// expression slot mechanism.
	if _, discard := st.Pattern.(*ir.PatternDiscard); discard && st.Kind == ir.AssignmentLet {
		slot := scope.Fresh(syntax.TempDiscard)
		*bindings = append(*bindings, assign(slot, value.doc))
		*forced = append(*forced, slot)
		return lowered{doc: text(slot), kind: atomExpr}, nil
	}

	// A plain variable needs no scrutinee copy.
	if v, simple := st.Pattern.(*ir.PatternVar); simple && st.Kind == ir.AssignmentLet {
		name := scope.Bind(v.Name)
		*bindings = append(*bindings, assign(name, value.doc))
		return lowered{doc: text(name), kind: atomExpr}, nil
	}

	scrutinee := scope.Fresh(syntax.TempScrutinee)
	*bindings = append(*bindings, assign(scrutinee, value.doc))

	m := match{}
	if err := g.compilePattern(st.Pattern, subject{expr: scrutinee}, scope, &m); err != nil {
		return lowered{}, err
	}

	if st.Kind == ir.AssignmentAssert {
		if cond := m.cond(); cond != nil {
			extra := []attrEntry{entry(assign("value", text(scrutinee)))}
			thrown, err := g.lowerThrow(
				"let_assert",
				"Pattern match failed, no pattern matched the value.",
				st.Message,
				st.Line,
				extra,
				scope,
			)
			if err != nil {
				return lowered{}, err
			}
			check := ifChain(
				[]ifBranch{{cond: doc.Concat(text("!"), parens(cond)), body: thrown.doc}},
				text("null"),
			)
			slot := scope.Fresh(syntax.TempAssert)
			*bindings = append(*bindings, assign(slot, check))
			*forced = append(*forced, slot)
		}
	}

	for _, binding := range m.bindings {
		*bindings = append(*bindings, assign(binding.name, binding.value))
	}
	return lowered{doc: text(scrutinee), kind: atomExpr}, nil
}
