// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

// Expr is a typed expression. Exactly one of the concrete expression types
// implements it.
type Expr interface {
	exprNode()
}

// IntLit is an integer literal. Value preserves the source spelling,
// including a base prefix (0x, 0o, 0b) and underscores.
type IntLit struct {
	Value string `json:"value"`
}

// FloatLit is a float literal. Value preserves the source spelling,
// including scientific notation.
type FloatLit struct {
	Value string `json:"value"`
}

// StringLit is a string literal. Value preserves the source spelling with
// escape sequences unexpanded (e.g. a two-character `\n`).
type StringLit struct {
	Value string `json:"value"`
}

// BoolLit is a use of the True or False constructor. Booleans map to the
// target language's native booleans, so the type checker resolves the
// constructors to literals before code generation.
type BoolLit struct {
	Value bool `json:"value"`
}

// NilLit is a use of the Nil constructor, the unit value.
type NilLit struct{}

// Var is a reference to a local binding, a top-level binding of the current
// module, or an unqualified import.
type Var struct {
	Name string `json:"name"`
}

// ModuleSelect is a module-qualified reference `alias.name`.
type ModuleSelect struct {
	// Module is the absolute path of the referenced module
	Module string `json:"module"`

	// Alias is the local alias under which the module was imported
	Alias string `json:"alias"`

	// Name is the referenced binding's name in the target module
	Name string `json:"name"`
}

// Call is a function application. Labelled arguments were resolved to
// positional order by the type checker, so Args is purely positional.
type Call struct {
	Fun  Expr   `json:"fun"`
	Args []Expr `json:"args,omitempty"`
}

// BinOpKind enumerates the binary operators of the source language.
type BinOpKind string

// Binary operator kinds. Int and float arithmetic are distinct operators
// in the source language and lower differently.
const (
	OpAddInt    BinOpKind = "add_int"
	OpSubInt    BinOpKind = "sub_int"
	OpMulInt    BinOpKind = "mul_int"
	OpDivInt    BinOpKind = "div_int"
	OpRemInt    BinOpKind = "rem_int"
	OpAddFloat  BinOpKind = "add_float"
	OpSubFloat  BinOpKind = "sub_float"
	OpMulFloat  BinOpKind = "mul_float"
	OpDivFloat  BinOpKind = "div_float"
	OpEq        BinOpKind = "eq"
	OpNotEq     BinOpKind = "not_eq"
	OpLtInt     BinOpKind = "lt_int"
	OpLtEqInt   BinOpKind = "lt_eq_int"
	OpGtInt     BinOpKind = "gt_int"
	OpGtEqInt   BinOpKind = "gt_eq_int"
	OpLtFloat   BinOpKind = "lt_float"
	OpLtEqFloat BinOpKind = "lt_eq_float"
	OpGtFloat   BinOpKind = "gt_float"
	OpGtEqFloat BinOpKind = "gt_eq_float"
	OpAnd       BinOpKind = "and"
	OpOr        BinOpKind = "or"
	OpConcat    BinOpKind = "concat"
)

// BinOp is a binary operator application.
type BinOp struct {
	Op    BinOpKind `json:"op"`
	Left  Expr      `json:"left"`
	Right Expr      `json:"right"`
}

// NegateInt is arithmetic negation of an integer expression.
type NegateInt struct {
	Value Expr `json:"value"`
}

// NegateBool is boolean negation.
type NegateBool struct {
	Value Expr `json:"value"`
}

// Fn is an anonymous function literal.
type Fn struct {
	// Parameters are the parameter names in order
	Parameters []string `json:"parameters,omitempty"`

	// Body is the function body
	Body []Statement `json:"body"`
}

// Block is a brace-delimited sequence of statements whose value is the
// value of the final statement.
type Block struct {
	Statements []Statement `json:"statements"`
}

// Pipe is the pipeline operator `left |> right`, equivalent to calling the
// right-hand function with the left-hand value as first argument.
type Pipe struct {
	Left  Expr `json:"left"`
	Right Expr `json:"right"`
}

// Tuple is a tuple construction `#(a, b, c)`.
type Tuple struct {
	Elements []Expr `json:"elements,omitempty"`
}

// TupleIndex is a tuple element access `t.k`.
type TupleIndex struct {
	Tuple Expr `json:"tuple"`
	Index int  `json:"index"`
}

// List is a list construction from elements, with an optional tail
// (`[a, b, ..rest]`).
type List struct {
	Elements []Expr `json:"elements,omitempty"`
	Tail     Expr   `json:"tail,omitempty"`
}

// RecordUpdate is a record update `Ctor(..base, field: value, ...)`.
type RecordUpdate struct {
	// Base is the record the update starts from
	Base Expr `json:"base"`

	// Fields are the overridden fields in source order
	Fields []RecordUpdateField `json:"fields"`
}

// RecordUpdateField is one overridden field of a record update.
type RecordUpdateField struct {
	Label string `json:"label"`
	Value Expr   `json:"value"`
}

// FieldAccess is a labelled field access `record.label`.
type FieldAccess struct {
	Record Expr   `json:"record"`
	Label  string `json:"label"`
}

// Case is a multi-subject case expression.
type Case struct {
	// Subjects are the scrutinised expressions
	Subjects []Expr `json:"subjects"`

	// Clauses are the clauses in source order
	Clauses []Clause `json:"clauses"`

	// Line is the 1-based source line of the expression
	Line int `json:"line,omitempty"`
}

// Clause is one clause of a case expression. Patterns holds one pattern
// row per alternative; each row has one pattern per subject. Every
// alternative binds the same names at the same types.
type Clause struct {
	Patterns [][]Pattern `json:"patterns"`
	Guard    Expr        `json:"guard,omitempty"`
	Body     Expr        `json:"body"`
}

// Panic is a `panic` expression with an optional message.
type Panic struct {
	Message Expr `json:"message,omitempty"`
	Line    int  `json:"line,omitempty"`
}

// Todo is a `todo` expression with an optional message.
type Todo struct {
	Message Expr `json:"message,omitempty"`
	Line    int  `json:"line,omitempty"`
}

// BitArrayLit is a bit array construction `<<...>>`.
type BitArrayLit struct {
	Segments []BitArraySegment `json:"segments,omitempty"`
}

// SegmentType enumerates the supported bit-array segment types.
type SegmentType string

// Segment types. Construction is byte-aligned only.
const (
	// SegmentInt is an integer segment; SizeBits defaults to 8
	SegmentInt SegmentType = "int"

	// SegmentBits is a nested bit-array segment
	SegmentBits SegmentType = "bits"

	// SegmentBytes is a byte-aligned binary segment
	SegmentBytes SegmentType = "bytes"

	// SegmentUtf8 is a UTF-8 encoded string segment
	SegmentUtf8 SegmentType = "utf8"

	// SegmentUtf8Codepoint is a single UTF-8 encoded codepoint segment
	SegmentUtf8Codepoint SegmentType = "utf8_codepoint"
)

// BitArraySegment is one segment of a bit-array construction.
type BitArraySegment struct {
	// Value is the segment's value expression
	Value Expr `json:"value"`

	// Type is the segment type
	Type SegmentType `json:"type"`

	// SizeBits is the declared size in bits; 0 means the type's default
	SizeBits int `json:"size_bits,omitempty"`

	// Unit multiplies SizeBits when both are given
	Unit int `json:"unit,omitempty"`
}

// TotalBits returns the segment's declared width in bits, applying the
// unit multiplier and the per-type default.
func (s BitArraySegment) TotalBits() int {
	size := s.SizeBits
	if size == 0 {
		if s.Type == SegmentInt {
			return 8
		}
		return 0
	}
	if s.Unit > 0 {
		return size * s.Unit
	}
	return size
}

func (*IntLit) exprNode()       {}
func (*BoolLit) exprNode()      {}
func (*NilLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*Var) exprNode()          {}
func (*ModuleSelect) exprNode() {}
func (*Call) exprNode()         {}
func (*BinOp) exprNode()        {}
func (*NegateInt) exprNode()    {}
func (*NegateBool) exprNode()   {}
func (*Fn) exprNode()           {}
func (*Block) exprNode()        {}
func (*Pipe) exprNode()         {}
func (*Tuple) exprNode()        {}
func (*TupleIndex) exprNode()   {}
func (*List) exprNode()         {}
func (*RecordUpdate) exprNode() {}
func (*FieldAccess) exprNode()  {}
func (*Case) exprNode()         {}
func (*Panic) exprNode()        {}
func (*Todo) exprNode()         {}
func (*BitArrayLit) exprNode()  {}
