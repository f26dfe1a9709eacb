package generate

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// checkGlobalName checks that a top-level name is neither reserved nor used by
// a global variable.  Function names are checked by the caller since a
// function definition may complete an earlier prototype.
func (g *Generator) checkGlobalName(name string, span *report.TextSpan) {
	if isReserved(name) {
		panic(report.Raise(report.KindName, span, "`%s` is reserved by the runtime", name))
	}

	if _, ok := g.globals[name]; ok {
		panic(report.Raise(report.KindName, span, "redeclaration of global variable `%s`", name))
	}
}

// genGlobalVar generates a global variable.
func (g *Generator) genGlobalVar(gv *ast.GlobalVarDecl) {
	g.checkGlobalName(gv.VarName, gv.NameSpan)
	if _, ok := g.funcs[gv.VarName]; ok {
		panic(report.Raise(report.KindName, gv.NameSpan, "redeclaration of function `%s` as a variable", gv.VarName))
	}

	var init constant.Constant
	if gv.Init == nil {
		init = zeroValue(gv.Type)
	} else {
		init = g.genGlobalInit(gv)
	}

	glob := g.mod.NewGlobalDef(gv.VarName, init)
	glob.Immutable = gv.Const

	g.globals[gv.VarName] = &Variable{
		Ptr:   glob,
		Type:  gv.Type,
		Const: gv.Const,
	}
}

// genGlobalInit converts the initializer of a global into a constant.  Only a
// literal of the global's type is accepted.
func (g *Generator) genGlobalInit(gv *ast.GlobalVarDecl) constant.Constant {
	switch lit := gv.Init.(type) {
	case *ast.IntLit:
		if gv.Type == typing.Int {
			lit.SetType(typing.Int)
			return intConst(lit.Value)
		}
	case *ast.DoubleLit:
		if gv.Type == typing.Double {
			lit.SetType(typing.Double)
			return constant.NewFloat(types.Double, lit.Value)
		}
	case *ast.BoolLit:
		if gv.Type == typing.Bool {
			lit.SetType(typing.Bool)
			return constant.NewBool(lit.Value)
		}
	}

	panic(report.Raise(report.KindType, gv.Init.Span(), "initializer of global `%s` must be a %s literal", gv.VarName, gv.Type))
}

// -----------------------------------------------------------------------------

// genPrototypeDecl generates a forward declaration of a function.
func (g *Generator) genPrototypeDecl(proto *ast.Prototype) {
	g.checkGlobalName(proto.FuncName, proto.Span())
	if _, ok := g.funcs[proto.FuncName]; ok {
		panic(report.Raise(report.KindName, proto.Span(), "redeclaration of function `%s`", proto.FuncName))
	}

	g.declareFunc(proto)
}

// declareFunc creates the LLVM function for a prototype and records it.
func (g *Generator) declareFunc(proto *ast.Prototype) *Function {
	checkParamNames(proto)

	params := make([]*ir.Param, len(proto.Params))
	for i, param := range proto.Params {
		params[i] = ir.NewParam(param.VarName, convType(param.Type))
	}

	fn := &Function{
		IRFunc: g.mod.NewFunc(proto.FuncName, convType(proto.ReturnType), params...),
		Proto:  proto,
	}

	g.funcs[proto.FuncName] = fn
	return fn
}

// checkParamNames checks that no two parameters share a name.
func checkParamNames(proto *ast.Prototype) {
	seen := make(map[string]struct{}, len(proto.Params))
	for _, param := range proto.Params {
		if _, ok := seen[param.VarName]; ok {
			panic(report.Raise(report.KindName, param.NameSpan, "duplicate parameter `%s`", param.VarName))
		}

		seen[param.VarName] = struct{}{}
	}
}

// removeFunc removes a function from the module and the function table.
func (g *Generator) removeFunc(fn *Function) {
	for i, irFunc := range g.mod.Funcs {
		if irFunc == fn.IRFunc {
			g.mod.Funcs = append(g.mod.Funcs[:i], g.mod.Funcs[i+1:]...)
			break
		}
	}

	delete(g.funcs, fn.Proto.FuncName)
}

// -----------------------------------------------------------------------------

// genFuncDef generates a function definition.
func (g *Generator) genFuncDef(fd *ast.FuncDef) {
	proto := fd.Proto
	g.checkGlobalName(proto.FuncName, proto.Span())

	fn, declared := g.funcs[proto.FuncName]
	if declared {
		if !fn.Proto.Signature().Equals(proto.Signature()) {
			panic(report.Raise(
				report.KindName,
				proto.Span(),
				"conflicting signatures for `%s`: declared as %s, defined as %s",
				proto.FuncName,
				fn.Proto.Signature(),
				proto.Signature(),
			))
		}

		if fn.Defined {
			panic(report.Raise(report.KindName, proto.Span(), "function `%s` cannot be redefined", proto.FuncName))
		}

		checkParamNames(proto)
	} else {
		fn = g.declareFunc(proto)
	}

	// Undo everything if the body fails to generate.
	oldParamNames := make([]string, len(fn.IRFunc.Params))
	for i, param := range fn.IRFunc.Params {
		oldParamNames[i] = param.Name()
	}

	succeeded := false
	defer func() {
		if succeeded {
			return
		}

		if declared {
			fn.IRFunc.Blocks = nil
			for i, param := range fn.IRFunc.Params {
				param.SetName(oldParamNames[i])
			}
		} else {
			g.removeFunc(fn)
		}
	}()

	g.enclosingFunc = fn.IRFunc
	g.locals = make(map[string]*Variable)
	g.takenNames = make(map[string]struct{})

	// All stack slots live in the entry block which falls through to the body.
	g.varBlock = g.newBlock("entry")
	g.setBlock(g.varBlock)
	bodyBlock := g.newBlock("body")
	g.varBlock.NewBr(bodyBlock)

	for i, param := range proto.Params {
		irParam := fn.IRFunc.Params[i]
		irParam.SetName(param.VarName)

		slot := g.varBlock.NewAlloca(irParam.Type())
		g.varBlock.NewStore(irParam, slot)

		g.locals[param.VarName] = &Variable{
			Ptr:   slot,
			Type:  param.Type,
			Const: param.Const,
		}
	}

	g.setBlock(bodyBlock)
	g.genBlock(fd.Body)

	// Control may reach the end of the body: return the zero value.
	g.block.NewRet(zeroValue(proto.ReturnType))

	if err := verifyFunc(fn.IRFunc); err != nil {
		panic(report.Raise(report.KindInternal, proto.Span(), "function `%s` failed verification: %s", proto.FuncName, err))
	}

	fn.Defined = true
	succeeded = true
}
