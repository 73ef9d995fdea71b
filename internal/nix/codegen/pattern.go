// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glistix/glistix/internal/nix/doc"
	"github.com/glistix/glistix/internal/nix/syntax"
	"github.com/glistix/glistix/pkg/ir"
)

// subject is an atomic Nix expression locating (part of) a scrutinee.
type subject struct {
	expr string
}

func (s subject) doc() doc.Doc {
	return text(s.expr)
}

// sel narrows the subject to an attribute.
func (s subject) sel(key string) subject {
	return subject{expr: s.expr + "." + syntax.Key(key)}
}

// elemAt narrows the subject to a tuple element.
func (s subject) elemAt(index int) subject {
	return subject{expr: fmt.Sprintf("(builtins.elemAt %s %d)", s.expr, index)}
}

// tails narrows the subject to its k-th list tail.
func (s subject) tails(k int) subject {
	return subject{expr: s.expr + strings.Repeat(".tail", k)}
}

// patBinding is one name introduced by a pattern.
type patBinding struct {
	name  string
	value doc.Doc
}

// match is the compilation of a pattern against a subject: a conjunction
// of boolean checks plus the bindings the pattern introduces. Checks are
// ordered so that later checks only evaluate once earlier ones have
// passed; `&&` short-circuits, so structural accesses stay safe.
type match struct {
	checks   []lowered
	bindings []patBinding
}

func (m *match) check(d doc.Doc, kind exprKind) {
	m.checks = append(m.checks, lowered{doc: d, kind: kind})
}

func (m *match) bind(name string, value doc.Doc) {
	m.bindings = append(m.bindings, patBinding{name: name, value: value})
}

// cond combines the checks into one boolean expression. A pattern with no
// checks always matches and returns nil.
func (m *match) cond() doc.Doc {
	switch len(m.checks) {
	case 0:
		return nil
	case 1:
		return m.checks[0].doc
	default:
		operands := make([]doc.Doc, len(m.checks))
		for i, check := range m.checks {
			operands[i] = check.operand()
		}
		return doc.Group(doc.Join(doc.Concat(doc.Line(), text("&& ")), operands))
	}
}

// bindingDocs renders the match's bindings as let-bindings.
func (m *match) bindingDocs() []doc.Doc {
	docs := make([]doc.Doc, 0, len(m.bindings))
	for _, binding := range m.bindings {
		docs = append(docs, assign(binding.name, binding.value))
	}
	return docs
}

// compilePattern appends the checks and bindings for pattern p applied to
// the given subject. Names bind into scope as they are encountered.
func (g *Generator) compilePattern(p ir.Pattern, subj subject, scope *syntax.Scope, m *match) error {
	switch pattern := p.(type) {
	case *ir.PatternDiscard:
		return nil

	case *ir.PatternVar:
		m.bind(scope.Bind(pattern.Name), subj.doc())
		return nil

	case *ir.PatternInt:
		literal, err := g.intLiteral(pattern.Value)
		if err != nil {
			return err
		}
		m.check(doc.Concat(subj.doc(), text(" == "), literal.operand()), opExpr)
		return nil

	case *ir.PatternBool:
		literal := "true"
		if !pattern.Value {
			literal = "false"
		}
		m.check(doc.Concat(subj.doc(), text(" == "+literal)), opExpr)
		return nil

	case *ir.PatternNil:
		return nil

	case *ir.PatternFloat:
		literal, err := floatLiteral(pattern.Value)
		if err != nil {
			return err
		}
		m.check(doc.Concat(subj.doc(), text(" == "), literal.operand()), opExpr)
		return nil

	case *ir.PatternString:
		literal, usesParseEscape := syntax.StringLiteral(pattern.Value)
		if usesParseEscape {
			g.helper("parseEscape")
		}
		m.check(doc.Concat(subj.doc(), text(" == "), text(literal)), opExpr)
		return nil

	case *ir.PatternStringPrefix:
		return g.compileStringPrefix(pattern, subj, scope, m)

	case *ir.PatternTuple:
		for i, element := range pattern.Elements {
			if err := g.compilePattern(element, subj.elemAt(i), scope, m); err != nil {
				return err
			}
		}
		return nil

	case *ir.PatternList:
		return g.compileList(pattern, subj, scope, m)

	case *ir.PatternConstructor:
		tag := doc.Concat(text(subj.expr+".__gleamTag"), text(" == "+strconv.Quote(pattern.Tag)))
		m.check(tag, opExpr)
		for _, argument := range pattern.Arguments {
			field := subj.sel(fieldKey(argument))
			if err := g.compilePattern(argument.Pattern, field, scope, m); err != nil {
				return err
			}
		}
		return nil

	case *ir.PatternAssign:
		m.bind(scope.Bind(pattern.Name), subj.doc())
		return g.compilePattern(pattern.Pattern, subj, scope, m)

	case *ir.PatternBitArray:
		return g.compileBitArrayPattern(pattern, subj, scope, m)

	default:
		return internalf("unhandled pattern %T", p)
	}
}

// fieldKey returns the attribute key of a constructor pattern argument:
// the label when the field is labelled, _<index> otherwise.
func fieldKey(argument ir.PatternConstructorArg) string {
	if argument.Label != "" {
		return argument.Label
	}
	return "_" + strconv.Itoa(argument.Index)
}

// compileStringPrefix matches `"prefix" <> rest`. The rest binding slices
// at the prefix's UTF-8 byte length, not its codepoint count; escapes in
// the prefix are expanded here to compute it.
func (g *Generator) compileStringPrefix(pattern *ir.PatternStringPrefix, subj subject, scope *syntax.Scope, m *match) error {
	expanded, err := syntax.ExpandEscapes(pattern.Prefix)
	if err != nil {
		return internalf("string prefix pattern: %v", err)
	}
	byteLength := len(expanded)

	literal, usesParseEscape := syntax.StringLiteral(pattern.Prefix)
	if usesParseEscape {
		g.helper("parseEscape")
	}

	m.check(app(text(g.helper("strHasPrefix")), text(literal), subj.doc()), applyExpr)
	if pattern.RestName != "" {
		rest := app(text("builtins.substring"), text(strconv.Itoa(byteLength)), text("(-1)"), subj.doc())
		m.bind(scope.Bind(pattern.RestName), rest)
	}
	if pattern.PrefixName != "" {
		m.bind(scope.Bind(pattern.PrefixName), text(literal))
	}
	return nil
}

func (g *Generator) compileList(pattern *ir.PatternList, subj subject, scope *syntax.Scope, m *match) error {
	count := len(pattern.Elements)
	if pattern.Tail == nil {
		length := app(text(g.helper("listHasLength")), subj.doc(), text(strconv.Itoa(count)))
		m.check(length, applyExpr)
	} else {
		atLeast := app(text(g.helper("listHasAtLeastLength")), subj.doc(), text(strconv.Itoa(count)))
		m.check(atLeast, applyExpr)
	}

	for i, element := range pattern.Elements {
		if err := g.compilePattern(element, subj.tails(i).sel("head"), scope, m); err != nil {
			return err
		}
	}
	if pattern.Tail != nil {
		return g.compilePattern(pattern.Tail, subj.tails(count), scope, m)
	}
	return nil
}

// lowerCase emits a case expression as a chain of conditionals. Each
// clause alternative compiles to its own branch with its own bindings;
// bindings are never hoisted above the branch test.
func (g *Generator) lowerCase(e *ir.Case, scope *syntax.Scope) (lowered, error) {
	outer := scope.Child()

	// Bind complex subjects once so every branch tests the same value.
	var subjectBindings []doc.Doc
	subjects := make([]subject, 0, len(e.Subjects))
	for _, subjectExpr := range e.Subjects {
		if v, ok := subjectExpr.(*ir.Var); ok && !g.unsupported[v.Name] {
			subjects = append(subjects, subject{expr: outer.Resolve(v.Name)})
			continue
		}
		value, err := g.lowerExpr(subjectExpr, outer)
		if err != nil {
			return lowered{}, err
		}
		name := outer.Fresh(syntax.TempScrutinee)
		subjectBindings = append(subjectBindings, assign(name, value.doc))
		subjects = append(subjects, subject{expr: name})
	}

	var branches []ifBranch
	var fallback doc.Doc
	for _, clause := range e.Clauses {
		if fallback != nil {
			break
		}
		for _, row := range clause.Patterns {
			if len(row) != len(subjects) {
				return lowered{}, internalf("clause with %d patterns for %d subjects", len(row), len(subjects))
			}
			branchScope := outer.Child()
			m := match{}
			for i, pattern := range row {
				if err := g.compilePattern(pattern, subjects[i], branchScope, &m); err != nil {
					return lowered{}, err
				}
			}
			if clause.Guard != nil {
				guard, err := g.lowerExpr(clause.Guard, branchScope)
				if err != nil {
					return lowered{}, err
				}
				m.checks = append(m.checks, guard)
			}

			body, err := g.lowerExpr(clause.Body, branchScope)
			if err != nil {
				return lowered{}, err
			}
			branchBody := letIn(m.bindingDocs(), body.doc)

			cond := m.cond()
			if cond == nil {
				// Irrefutable alternative: later clauses are unreachable.
				fallback = branchBody
				break
			}
			branches = append(branches, ifBranch{cond: cond, body: branchBody})
		}
	}

	if fallback == nil {
		var extra []attrEntry
		if len(subjects) == 1 {
			extra = append(extra, entry(assign("value", subjects[0].doc())))
		}
		thrown, err := g.lowerThrow("case_no_match", "No case clause matched.", nil, e.Line, extra, outer)
		if err != nil {
			return lowered{}, err
		}
		fallback = thrown.doc
	}

	result := fallback
	if len(branches) > 0 {
		result = ifChain(branches, fallback)
	}
	return lowered{doc: letIn(subjectBindings, result), kind: opExpr}, nil
}
