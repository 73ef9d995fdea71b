// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package doc provides the document algebra the code generator renders
// its output through. Documents are built depth-first and printed in one
// pass; a group breaks onto multiple lines only when it does not fit the
// configured width.
package doc

import "strings"

// DefaultWidth is the render width used when the caller does not
// configure one.
const DefaultWidth = 80

// IndentWidth is the number of spaces per nesting level.
const IndentWidth = 2

// Doc is one node of a document tree.
type Doc interface {
	docNode()
}

type textDoc struct {
	text string
}

type concatDoc struct {
	docs []Doc
}

type nestDoc struct {
	indent int
	doc    Doc
}

type groupDoc struct {
	doc Doc
}

type lineDoc struct {
	// flat is the text used when the enclosing group fits on one line;
	// hard lines have no flat form and always break
	flat string
	hard bool
}

func (textDoc) docNode()   {}
func (concatDoc) docNode() {}
func (nestDoc) docNode()   {}
func (groupDoc) docNode()  {}
func (lineDoc) docNode()   {}

// Text returns a literal text fragment. It must not contain newlines.
func Text(text string) Doc {
	return textDoc{text: text}
}

// Concat joins documents in sequence.
func Concat(docs ...Doc) Doc {
	return concatDoc{docs: docs}
}

// Nest indents every line break inside d by one extra level.
func Nest(d Doc) Doc {
	return nestDoc{indent: IndentWidth, doc: d}
}

// Group prints d on one line when it fits, broken otherwise.
func Group(d Doc) Doc {
	return groupDoc{doc: d}
}

// Line breaks to a new line, or prints a single space when the enclosing
// group fits.
func Line() Doc {
	return lineDoc{flat: " "}
}

// SoftLine breaks to a new line, or prints nothing when the enclosing
// group fits.
func SoftLine() Doc {
	return lineDoc{flat: ""}
}

// HardLine always breaks, forcing every enclosing group to break too.
func HardLine() Doc {
	return lineDoc{hard: true}
}

// Join interleaves separator between docs.
func Join(separator Doc, docs []Doc) Doc {
	if len(docs) == 0 {
		return Text("")
	}
	joined := make([]Doc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			joined = append(joined, separator)
		}
		joined = append(joined, d)
	}
	return Concat(joined...)
}

type renderMode int

const (
	modeFlat renderMode = iota
	modeBreak
)

type renderFrame struct {
	doc    Doc
	indent int
	mode   renderMode
}

// Render prints a document at the given width. Width values below 1 fall
// back to DefaultWidth.
func Render(d Doc, width int) string {
	if width < 1 {
		width = DefaultWidth
	}

	var out strings.Builder
	column := 0
	stack := []renderFrame{{doc: d, indent: 0, mode: modeBreak}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := frame.doc.(type) {
		case textDoc:
			out.WriteString(node.text)
			column += len(node.text)

		case concatDoc:
			for i := len(node.docs) - 1; i >= 0; i-- {
				stack = append(stack, renderFrame{doc: node.docs[i], indent: frame.indent, mode: frame.mode})
			}

		case nestDoc:
			stack = append(stack, renderFrame{doc: node.doc, indent: frame.indent + node.indent, mode: frame.mode})

		case groupDoc:
			mode := modeBreak
			if fits(node.doc, width-column) {
				mode = modeFlat
			}
			stack = append(stack, renderFrame{doc: node.doc, indent: frame.indent, mode: mode})

		case lineDoc:
			if frame.mode == modeFlat && !node.hard {
				out.WriteString(node.flat)
				column += len(node.flat)
			} else {
				out.WriteByte('\n')
				out.WriteString(strings.Repeat(" ", frame.indent))
				column = frame.indent
			}
		}
	}

	return out.String()
}

// fits reports whether d printed flat stays within the remaining space.
func fits(d Doc, remaining int) bool {
	stack := []Doc{d}
	for len(stack) > 0 && remaining >= 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := top.(type) {
		case textDoc:
			remaining -= len(node.text)
		case concatDoc:
			for i := len(node.docs) - 1; i >= 0; i-- {
				stack = append(stack, node.docs[i])
			}
		case nestDoc:
			stack = append(stack, node.doc)
		case groupDoc:
			stack = append(stack, node.doc)
		case lineDoc:
			if node.hard {
				return false
			}
			remaining -= len(node.flat)
		}
	}
	return remaining >= 0
}
