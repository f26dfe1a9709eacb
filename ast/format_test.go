package ast

import (
	"testing"

	"github.com/TrainFun/cxc/typing"
)

func TestFormatDoubleLit(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{3, "3.0"},
		{2.5, "2.5"},
		{1e21, "1e+21"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		if got := Format(&DoubleLit{Value: tt.value}); got != tt.want {
			t.Errorf("%v: expected %s, got=%s", tt.value, tt.want, got)
		}
	}
}

func TestFormatDecls(t *testing.T) {
	param := &VarDecl{Const: true, Type: typing.Bool, VarName: "b"}
	proto := &Prototype{ReturnType: typing.Int, FuncName: "f", Params: []*VarDecl{
		{Type: typing.Int, VarName: "a"},
		param,
	}}

	body := &Block{Elems: []BlockElement{
		&VarDecl{Type: typing.Double, VarName: "d", Init: &DoubleLit{Value: 1}},
		&ForStmt{VarType: typing.Error, Body: &BreakStmt{}},
		&SwitchStmt{
			Scrutinee: &Identifier{Name: "a"},
			Clauses: []*CaseClause{
				{Labels: []Expr{&IntLit{Value: 1}, nil}, Body: []Stmt{&ExprStmt{}}},
			},
		},
		&ReturnStmt{Value: &Cast{Target: typing.Int, Src: &Identifier{Name: "d"}}},
	}}

	tests := []struct {
		node Node
		want string
	}{
		{proto, "(proto int f (int a const bool b))"},
		{&FuncDef{Proto: proto, Body: body},
			"(func int f (int a const bool b) { (var double d 1.0) (for _ _ _ (break)) (switch a (case 1 default : (empty))) (return (cast int d)) })"},
		{&GlobalVarDecl{VarDecl: &VarDecl{Const: true, Type: typing.Int, VarName: "g", Init: &IntLit{Value: 7}}},
			"(global const int g 7)"},
	}

	for _, tt := range tests {
		if got := Format(tt.node); got != tt.want {
			t.Errorf("expected %s, got=%s", tt.want, got)
		}
	}
}

func TestSetType(t *testing.T) {
	lit := &IntLit{Value: 1}
	if lit.Type() != typing.Error {
		t.Fatalf("expected unresolved type, got=%s", lit.Type())
	}

	lit.SetType(typing.Int)
	lit.SetType(typing.Int)
	if lit.Type() != typing.Int {
		t.Errorf("expected int, got=%s", lit.Type())
	}
}
