package generate

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genBlock generates a block.  Declarations made inside the block are removed
// from scope when it ends.
func (g *Generator) genBlock(block *ast.Block) {
	snap := g.saveScope()
	defer g.restoreScope(snap)

	g.takenNames = make(map[string]struct{})

	for _, elem := range block.Elems {
		switch v := elem.(type) {
		case *ast.VarDecl:
			g.genLocalVar(v)
		case ast.Stmt:
			g.genStmt(v)
		default:
			report.ReportICE("unknown block element: %T", elem)
		}
	}
}

// genLocalVar generates a local variable declaration.  The initializer is
// evaluated before the variable comes into scope.
func (g *Generator) genLocalVar(vd *ast.VarDecl) {
	var init value.Value
	if vd.Init == nil {
		init = zeroValue(vd.Type)
	} else {
		init = g.genExpr(vd.Init)

		if vd.Init.Type() != vd.Type {
			panic(report.Raise(
				report.KindType,
				vd.Init.Span(),
				"cannot initialize `%s` of type %s with a value of type %s",
				vd.VarName,
				vd.Type,
				vd.Init.Type(),
			))
		}
	}

	v := g.declareLocal(vd)
	g.block.NewStore(init, v.Ptr)
}

// -----------------------------------------------------------------------------

// genStmt generates a statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		if v.Expr != nil {
			g.genExpr(v.Expr)
		}
	case *ast.Block:
		g.genBlock(v)
	case *ast.IfStmt:
		g.genIfStmt(v)
	case *ast.ForStmt:
		g.genForStmt(v)
	case *ast.SwitchStmt:
		g.genSwitchStmt(v)
	case *ast.WhileStmt:
		g.genWhileStmt(v)
	case *ast.DoWhileStmt:
		g.genDoWhileStmt(v)
	case *ast.RepeatUntilStmt:
		g.genRepeatUntilStmt(v)
	case *ast.ReadStmt:
		g.genReadStmt(v)
	case *ast.WriteStmt:
		g.genWriteStmt(v)
	case *ast.ContinueStmt:
		target, ok := g.continueTarget()
		if !ok {
			panic(report.Raise(report.KindControlFlow, v.Span(), "`continue` outside of a loop"))
		}

		g.block.NewBr(target)
		g.startDeadBlock()
	case *ast.BreakStmt:
		target, ok := g.breakTarget()
		if !ok {
			panic(report.Raise(report.KindControlFlow, v.Span(), "`break` outside of a loop or switch"))
		}

		g.block.NewBr(target)
		g.startDeadBlock()
	case *ast.ReturnStmt:
		g.genReturnStmt(v)
	case *ast.ExitStmt:
		g.genExitStmt(v)
	default:
		report.ReportICE("unknown statement: %T", stmt)
	}
}

// genReturnStmt generates a return statement.  The value is checked against
// the LLVM return type of the enclosing function.
func (g *Generator) genReturnStmt(rs *ast.ReturnStmt) {
	val := g.genExpr(rs.Value)

	retType := g.enclosingFunc.Sig.RetType
	if !val.Type().Equal(retType) {
		panic(report.Raise(
			report.KindType,
			rs.Value.Span(),
			"incompatible return type: function returns %s but got %s",
			cxTypeOf(retType),
			rs.Value.Type(),
		))
	}

	g.block.NewRet(val)
	g.startDeadBlock()
}

// genExitStmt generates an exit statement.  Control never continues past the
// call to the runtime's exit.
func (g *Generator) genExitStmt(es *ast.ExitStmt) {
	code := g.genExpr(es.Code)
	if es.Code.Type() != typing.Int {
		panic(report.Raise(report.KindType, es.Code.Span(), "exit code must be int, got %s", es.Code.Type()))
	}

	g.block.NewCall(g.rt.exit, code)
	g.block.NewUnreachable()
	g.startDeadBlock()
}

// genReadStmt generates a read statement.
func (g *Generator) genReadStmt(rs *ast.ReadStmt) {
	ident, ok := rs.Target.(*ast.Identifier)
	if !ok {
		panic(report.Raise(report.KindType, rs.Target.Span(), "can only read into a variable"))
	}

	v := g.lookupVar(ident)
	if v.Const {
		panic(report.Raise(report.KindConst, ident.Span(), "cannot read into const variable `%s`", ident.Name))
	}
	ident.SetType(v.Type)

	fmtPtr := g.fmtPtr(g.inFmtFor(v.Type))

	// Booleans are read as integers: any nonzero input is true.
	if v.Type == typing.Bool {
		tmp := g.varBlock.NewAlloca(types.I32)
		g.block.NewCall(g.rt.scanf, fmtPtr, tmp)

		n := g.block.NewLoad(types.I32, tmp)
		g.block.NewStore(g.block.NewICmp(enum.IPredNE, n, constant.NewInt(types.I32, 0)), v.Ptr)
		return
	}

	g.block.NewCall(g.rt.scanf, fmtPtr, v.Ptr)
}

// genWriteStmt generates a write statement.
func (g *Generator) genWriteStmt(ws *ast.WriteStmt) {
	val := g.genExpr(ws.Value)

	if ws.Value.Type() == typing.Bool {
		val = g.block.NewZExt(val, types.I32)
	}

	g.block.NewCall(g.rt.printf, g.fmtPtr(g.outFmtFor(ws.Value.Type())), val)
}
