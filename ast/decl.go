package ast

import (
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"
)

// VarDecl declares a variable.  It is used for local variables, globals and
// function parameters.  Init may be nil.
type VarDecl struct {
	ASTBase

	Const    bool
	Type     typing.CXType
	VarName  string
	NameSpan *report.TextSpan
	Init     Expr
}

func (*VarDecl) blockElement() {}

// GlobalVarDecl is a variable declared at the top level.
type GlobalVarDecl struct {
	*VarDecl
}

func (gvd *GlobalVarDecl) Name() string { return gvd.VarName }
func (*GlobalVarDecl) declNode()        {}

// Prototype is a function signature: `T name(params)`.
type Prototype struct {
	ASTBase

	ReturnType typing.CXType
	FuncName   string
	Params     []*VarDecl
}

// Signature returns the call signature described by the prototype.
func (p *Prototype) Signature() typing.Signature {
	params := make([]typing.CXType, len(p.Params))
	for i, param := range p.Params {
		params[i] = param.Type
	}

	return typing.Signature{Return: p.ReturnType, Params: params}
}

func (p *Prototype) Name() string { return p.FuncName }
func (*Prototype) declNode()      {}

// FuncDef is a function definition: a prototype followed by a body.
type FuncDef struct {
	ASTBase

	Proto *Prototype
	Body  *Block
}

func (fd *FuncDef) Name() string { return fd.Proto.FuncName }
func (*FuncDef) declNode()       {}
