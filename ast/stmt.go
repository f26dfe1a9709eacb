package ast

import "github.com/TrainFun/cxc/typing"

// NewStmtBase creates a new statement base from a pre-built AST base.
func NewStmtBase(base ASTBase) StmtBase {
	return StmtBase{ASTBase: base}
}

// ExprStmt is an expression evaluated for its side effects.  Expr is nil for
// the empty statement `;`.
type ExprStmt struct {
	StmtBase

	Expr Expr
}

// Block is a braced sequence of declarations and statements.  It introduces a
// new scope.
type Block struct {
	StmtBase

	Elems []BlockElement
}

// IfStmt is `if (Cond) Then [else Else]`.  Else may be nil.
type IfStmt struct {
	StmtBase

	Cond       Expr
	Then, Else Stmt
}

// ForStmt is `for ([T Var [= Start]]; [End]; [Step]) Body`.  VarType is
// typing.Error when no loop variable is declared.  Start, End and Step may each
// be nil.
type ForStmt struct {
	StmtBase

	VarType typing.CXType
	VarName string
	Start   Expr
	End     Expr
	Step    Expr
	Body    Stmt
}

// CaseClause is a group of case labels sharing a sequence of statements.  A nil
// label is `default`.
type CaseClause struct {
	Labels []Expr
	Body   []Stmt
}

// SwitchStmt is `switch (Scrutinee) { clauses }`.
type SwitchStmt struct {
	StmtBase

	Scrutinee Expr
	Clauses   []*CaseClause
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	StmtBase

	Cond Expr
	Body Stmt
}

// DoWhileStmt is `do Body while (Cond);`.
type DoWhileStmt struct {
	StmtBase

	Body Stmt
	Cond Expr
}

// RepeatUntilStmt is `repeat Body until (Cond);`.
type RepeatUntilStmt struct {
	StmtBase

	Body Stmt
	Cond Expr
}

// ReadStmt is `read Target;`.
type ReadStmt struct {
	StmtBase

	Target Expr
}

// WriteStmt is `write Value;`.
type WriteStmt struct {
	StmtBase

	Value Expr
}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	StmtBase
}

// BreakStmt is `break;`.
type BreakStmt struct {
	StmtBase
}

// ReturnStmt is `return Value;`.
type ReturnStmt struct {
	StmtBase

	Value Expr
}

// ExitStmt is `exit Code;`.
type ExitStmt struct {
	StmtBase

	Code Expr
}
