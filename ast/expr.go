package ast

import (
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"
)

// OpKind is the kind of a unary or binary operator.
type OpKind int

// Enumeration of operator kinds.
const (
	OpAssign OpKind = iota

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	OpLT
	OpGT
	OpLTEQ
	OpGTEQ
	OpEQ
	OpNEQ

	OpLAnd
	OpLOr

	OpNot
	OpOdd
	OpInc
	OpDec
)

// Oper represents an operator applied in source text.
type Oper struct {
	Kind OpKind
	Name string
	Span *report.TextSpan
}

// IsComparison returns whether the operator is a relational operator.
func (op Oper) IsComparison() bool {
	return OpLT <= op.Kind && op.Kind <= OpNEQ
}

// -----------------------------------------------------------------------------

// IntLit is an unsigned integer literal.
type IntLit struct {
	ExprBase

	Value uint32
}

// DoubleLit is a floating-point literal.
type DoubleLit struct {
	ExprBase

	Value float64
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	ExprBase

	Value bool
}

// Identifier is a reference to a named variable.
type Identifier struct {
	ExprBase

	Name string
}

// UnaryOp is a prefix operator application.
type UnaryOp struct {
	ExprBase

	Op      Oper
	Operand Expr
}

// BinaryOp is a binary operator application, assignment included.
type BinaryOp struct {
	ExprBase

	Op       Oper
	Lhs, Rhs Expr
}

// Call is a function call.
type Call struct {
	ExprBase

	Callee string
	Args   []Expr
}

// Cast is an explicit conversion: `cast<T>(expr)`.
type Cast struct {
	ExprBase

	Target typing.CXType
	Src    Expr
}
