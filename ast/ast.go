package ast

import (
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"
)

// The abstract interface for all AST nodes.
type Node interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Expr is the interface for all expressions.  Every expression carries a
// resolved type which starts out as typing.Error and is set exactly once
// during code generation.
type Expr interface {
	Node

	// Type returns the resolved type of the expression.
	Type() typing.CXType

	// SetType records the resolved type of the expression.
	SetType(typing.CXType)

	exprNode()
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ typing.CXType
}

// NewExprBase creates a new expression base over the given span.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span)}
}

func (eb *ExprBase) Type() typing.CXType {
	return eb.typ
}

// SetType sets the resolved type.  Resolving an expression a second time to a
// different type is a compiler bug.
func (eb *ExprBase) SetType(typ typing.CXType) {
	if eb.typ != typing.Error && eb.typ != typ {
		report.ReportICE("expression resolved twice: %s then %s", eb.typ, typ)
	}

	eb.typ = typ
}

func (*ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// BlockElement is anything that can appear directly inside a `{ ... }` block:
// a local variable declaration or a statement.
type BlockElement interface {
	Node

	blockElement()
}

// Stmt is the interface for all statements.
type Stmt interface {
	BlockElement

	stmtNode()
}

// StmtBase is the base struct for all statements.
type StmtBase struct {
	ASTBase
}

func (StmtBase) blockElement() {}
func (StmtBase) stmtNode()     {}

// Decl is the interface for all top-level declarations.
type Decl interface {
	Node

	// Name returns the name the declaration introduces.
	Name() string

	declNode()
}
