// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"fmt"
	"strconv"

	"github.com/glistix/glistix/internal/nix/doc"
	"github.com/glistix/glistix/internal/nix/syntax"
	"github.com/glistix/glistix/pkg/ir"
)

// lowerBitArray emits a bit array construction. Each segment lowers to a
// byte list (or a single byte) and toBitArray concatenates them. Sizes
// must be byte aligned; sizedInt throws at construction time otherwise.
func (g *Generator) lowerBitArray(e *ir.BitArrayLit, scope *syntax.Scope) (lowered, error) {
	segments := make([]doc.Doc, 0, len(e.Segments))
	for _, segment := range e.Segments {
		value, err := g.lowerExpr(segment.Value, scope)
		if err != nil {
			return lowered{}, err
		}

		switch segment.Type {
		case ir.SegmentInt:
			bits := segment.TotalBits()
			if bits == 8 {
				segments = append(segments, value.atom())
				break
			}
			sized := app(text(g.helper("sizedInt")), value.atom(), text(strconv.Itoa(bits)))
			segments = append(segments, parens(sized))

		case ir.SegmentUtf8:
			segments = append(segments, parens(app(text(g.helper("stringBits")), value.atom())))

		case ir.SegmentUtf8Codepoint:
			segments = append(segments, parens(app(text(g.helper("codepointBits")), value.atom())))

		case ir.SegmentBits, ir.SegmentBytes:
			segments = append(segments, value.atom())

		default:
			return lowered{}, internalf("unhandled bit array segment type %q", segment.Type)
		}
	}

	call := app(text(g.helper("toBitArray")), listLit(segments))
	return lowered{doc: call, kind: applyExpr}, nil
}

// compileBitArrayPattern matches a bit array segment by segment at byte
// granularity. A fully sized pattern tests the exact byte size; a
// trailing unsized bytes segment tests a minimum size and captures the
// remainder.
func (g *Generator) compileBitArrayPattern(p *ir.PatternBitArray, subj subject, scope *syntax.Scope, m *match) error {
	prefixBytes := 0
	hasRest := false
	for i, segment := range p.Segments {
		width := segment.TotalBits()
		if width == 0 {
			if segment.Type == ir.SegmentInt {
				width = 8
			} else {
				if i != len(p.Segments)-1 {
					return internalf("unsized bit array segment before the end of the pattern")
				}
				hasRest = true
				break
			}
		}
		if width%8 != 0 {
			return internalf("bit array pattern segment of %d bits is not byte aligned", width)
		}
		prefixBytes += width / 8
	}

	size := app(text(g.helper("bitArrayByteSize")), subj.doc())
	comparison := " == "
	if hasRest {
		comparison = " >= "
	}
	m.check(doc.Concat(size, text(comparison+strconv.Itoa(prefixBytes))), opExpr)

	offset := 0
	for _, segment := range p.Segments {
		width := segment.TotalBits()
		if width == 0 && segment.Type != ir.SegmentInt {
			rest := subject{expr: fmt.Sprintf(
				"(%s %s %d (%s %s))",
				g.helper("binaryFromBitSlice"), subj.expr, offset,
				g.helper("bitArrayByteSize"), subj.expr,
			)}
			return g.compilePattern(segment.Pattern, rest, scope, m)
		}
		if width == 0 {
			width = 8
		}
		count := width / 8

		var field subject
		switch segment.Type {
		case ir.SegmentInt:
			if count == 1 {
				field = subject{expr: fmt.Sprintf("(%s %s %d)", g.helper("byteAt"), subj.expr, offset)}
			} else {
				field = subject{expr: fmt.Sprintf(
					"(%s %s %d %d)",
					g.helper("intFromBitSlice"), subj.expr, offset, offset+count,
				)}
			}

		case ir.SegmentBits, ir.SegmentBytes:
			field = subject{expr: fmt.Sprintf(
				"(%s %s %d %d)",
				g.helper("binaryFromBitSlice"), subj.expr, offset, offset+count,
			)}

		default:
			return internalf("unhandled bit array pattern segment type %q", segment.Type)
		}

		if err := g.compilePattern(segment.Pattern, field, scope, m); err != nil {
			return err
		}
		offset += count
	}
	return nil
}
