// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Text(t *testing.T) {
	assert.Equal(t, "hello", Render(Text("hello"), 80))
}

func TestRender_GroupFits(t *testing.T) {
	d := Group(Concat(Text("["), Line(), Text("a"), Line(), Text("]")))
	assert.Equal(t, "[ a ]", Render(d, 80))
}

func TestRender_GroupBreaks(t *testing.T) {
	d := Group(Concat(
		Text("["),
		Nest(Concat(Line(), Text("aaaa"), Line(), Text("bbbb"))),
		Line(),
		Text("]"),
	))
	assert.Equal(t, "[\n  aaaa\n  bbbb\n]", Render(d, 8))
}

func TestRender_SoftLine(t *testing.T) {
	d := Group(Concat(Text("a"), SoftLine(), Text("b")))
	assert.Equal(t, "ab", Render(d, 80))
	assert.Equal(t, "a\nb", Render(d, 1))
}

func TestRender_HardLineForcesBreak(t *testing.T) {
	d := Group(Concat(Text("let"), Nest(Concat(HardLine(), Text("x = 1;"))), HardLine(), Text("in x")))
	assert.Equal(t, "let\n  x = 1;\nin x", Render(d, 200))
}

func TestRender_NestedIndentAccumulates(t *testing.T) {
	d := Concat(
		Text("a"),
		Nest(Concat(HardLine(), Text("b"), Nest(Concat(HardLine(), Text("c"))))),
	)
	assert.Equal(t, "a\n  b\n    c", Render(d, 80))
}

func TestRender_InnerGroupMayStillFit(t *testing.T) {
	inner := Group(Concat(Text("("), SoftLine(), Text("x"), SoftLine(), Text(")")))
	outer := Group(Concat(Text("aaaaaaaa"), Nest(Concat(Line(), inner))))
	assert.Equal(t, "aaaaaaaa\n  (x)", Render(outer, 10))
}

func TestRender_DefaultWidthFallback(t *testing.T) {
	d := Group(Concat(Text("a"), Line(), Text("b")))
	assert.Equal(t, "a b", Render(d, 0))
}

func TestJoin(t *testing.T) {
	d := Join(Text(", "), []Doc{Text("a"), Text("b"), Text("c")})
	assert.Equal(t, "a, b, c", Render(d, 80))
	assert.Equal(t, "", Render(Join(Text(", "), nil), 80))
}
