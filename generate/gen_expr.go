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

// genExpr generates an expression and records its resolved type.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		v.SetType(typing.Int)
		return intConst(v.Value)
	case *ast.DoubleLit:
		v.SetType(typing.Double)
		return constant.NewFloat(types.Double, v.Value)
	case *ast.BoolLit:
		v.SetType(typing.Bool)
		return constant.NewBool(v.Value)
	case *ast.Identifier:
		vr := g.lookupVar(v)
		v.SetType(vr.Type)
		return g.block.NewLoad(convType(vr.Type), vr.Ptr)
	case *ast.BinaryOp:
		if v.Op.Kind == ast.OpAssign {
			return g.genAssign(v)
		}

		return g.genBinaryOp(v)
	case *ast.UnaryOp:
		return g.genUnaryOp(v)
	case *ast.Call:
		return g.genCall(v)
	case *ast.Cast:
		return g.genCast(v)
	}

	report.ReportICE("unknown expression: %T", expr)
	return nil
}

// mutableVar resolves the variable an operator mutates.
func (g *Generator) mutableVar(target ast.Expr, op ast.Oper, what string) (*ast.Identifier, *Variable) {
	ident, ok := target.(*ast.Identifier)
	if !ok {
		panic(report.Raise(report.KindType, target.Span(), "%s of '%s' must be a variable", what, op.Name))
	}

	v := g.lookupVar(ident)
	if v.Const {
		panic(report.Raise(report.KindConst, ident.Span(), "cannot mutate const variable `%s`", ident.Name))
	}

	ident.SetType(v.Type)
	return ident, v
}

// genAssign generates an assignment.  Its value is the value stored.
func (g *Generator) genAssign(bop *ast.BinaryOp) value.Value {
	ident, v := g.mutableVar(bop.Lhs, bop.Op, "destination")

	rhs := g.genExpr(bop.Rhs)
	if bop.Rhs.Type() != v.Type {
		panic(report.Raise(
			report.KindType,
			bop.Rhs.Span(),
			"cannot assign a value of type %s to `%s` of type %s",
			bop.Rhs.Type(),
			ident.Name,
			v.Type,
		))
	}

	g.block.NewStore(rhs, v.Ptr)
	bop.SetType(v.Type)
	return rhs
}

// binaryOpTypes lists the operand types each binary operator accepts.
var binaryOpTypes = map[ast.OpKind][]typing.CXType{
	ast.OpAdd:  {typing.Int, typing.Double},
	ast.OpSub:  {typing.Int, typing.Double},
	ast.OpMul:  {typing.Int, typing.Double},
	ast.OpDiv:  {typing.Int, typing.Double},
	ast.OpMod:  {typing.Int},
	ast.OpLT:   {typing.Int, typing.Double},
	ast.OpGT:   {typing.Int, typing.Double},
	ast.OpLTEQ: {typing.Int, typing.Double},
	ast.OpGTEQ: {typing.Int, typing.Double},
	ast.OpEQ:   {typing.Int, typing.Double, typing.Bool},
	ast.OpNEQ:  {typing.Int, typing.Double, typing.Bool},
	ast.OpLAnd: {typing.Bool},
	ast.OpLOr:  {typing.Bool},
}

// Unsigned integer and ordered float predicates for the relational operators.
var (
	intPredicates = map[ast.OpKind]enum.IPred{
		ast.OpLT:   enum.IPredULT,
		ast.OpGT:   enum.IPredUGT,
		ast.OpLTEQ: enum.IPredULE,
		ast.OpGTEQ: enum.IPredUGE,
		ast.OpEQ:   enum.IPredEQ,
		ast.OpNEQ:  enum.IPredNE,
	}

	floatPredicates = map[ast.OpKind]enum.FPred{
		ast.OpLT:   enum.FPredOLT,
		ast.OpGT:   enum.FPredOGT,
		ast.OpLTEQ: enum.FPredOLE,
		ast.OpGTEQ: enum.FPredOGE,
		ast.OpEQ:   enum.FPredOEQ,
		ast.OpNEQ:  enum.FPredONE,
	}
)

// genBinaryOp generates a binary operator application other than assignment.
// Both operands are always evaluated.
func (g *Generator) genBinaryOp(bop *ast.BinaryOp) value.Value {
	lhs := g.genExpr(bop.Lhs)
	rhs := g.genExpr(bop.Rhs)

	lhsType, rhsType := bop.Lhs.Type(), bop.Rhs.Type()
	if lhsType != rhsType {
		panic(report.Raise(
			report.KindType,
			bop.Op.Span,
			"mismatched operand types for '%s': %s and %s",
			bop.Op.Name,
			lhsType,
			rhsType,
		))
	}

	legal := false
	for _, typ := range binaryOpTypes[bop.Op.Kind] {
		if typ == lhsType {
			legal = true
			break
		}
	}

	if !legal {
		panic(report.Raise(report.KindType, bop.Op.Span, "operator '%s' is not defined for %s", bop.Op.Name, lhsType))
	}

	if bop.Op.IsComparison() {
		bop.SetType(typing.Bool)

		if lhsType == typing.Double {
			return g.block.NewFCmp(floatPredicates[bop.Op.Kind], lhs, rhs)
		}

		return g.block.NewICmp(intPredicates[bop.Op.Kind], lhs, rhs)
	}

	bop.SetType(lhsType)

	if lhsType == typing.Double {
		switch bop.Op.Kind {
		case ast.OpAdd:
			return g.block.NewFAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewFSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewFMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewFDiv(lhs, rhs)
		}
	} else {
		switch bop.Op.Kind {
		case ast.OpAdd:
			return g.block.NewAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewUDiv(lhs, rhs)
		case ast.OpMod:
			return g.block.NewURem(lhs, rhs)
		case ast.OpLAnd:
			return g.block.NewAnd(lhs, rhs)
		case ast.OpLOr:
			return g.block.NewOr(lhs, rhs)
		}
	}

	report.ReportICE("no lowering for binary operator '%s'", bop.Op.Name)
	return nil
}

// genUnaryOp generates a prefix operator application.
func (g *Generator) genUnaryOp(uop *ast.UnaryOp) value.Value {
	switch uop.Op.Kind {
	case ast.OpInc, ast.OpDec:
		return g.genIncDec(uop)
	}

	operand := g.genExpr(uop.Operand)
	operandType := uop.Operand.Type()

	switch uop.Op.Kind {
	case ast.OpNot:
		if operandType != typing.Bool {
			panic(report.Raise(report.KindType, uop.Op.Span, "operator '!' requires bool, got %s", operandType))
		}

		uop.SetType(typing.Bool)
		return g.block.NewXor(operand, constant.True)
	case ast.OpOdd:
		if operandType != typing.Int {
			panic(report.Raise(report.KindType, uop.Op.Span, "operator 'ODD' requires int, got %s", operandType))
		}

		uop.SetType(typing.Bool)
		one := constant.NewInt(types.I32, 1)
		return g.block.NewICmp(enum.IPredEQ, g.block.NewAnd(operand, one), one)
	}

	report.ReportICE("no lowering for unary operator '%s'", uop.Op.Name)
	return nil
}

// genIncDec generates a prefix increment or decrement.  Its value is the
// updated value.
func (g *Generator) genIncDec(uop *ast.UnaryOp) value.Value {
	_, v := g.mutableVar(uop.Operand, uop.Op, "operand")

	var result value.Value
	switch v.Type {
	case typing.Int:
		old := g.block.NewLoad(types.I32, v.Ptr)
		one := constant.NewInt(types.I32, 1)

		if uop.Op.Kind == ast.OpInc {
			result = g.block.NewAdd(old, one)
		} else {
			result = g.block.NewSub(old, one)
		}
	case typing.Double:
		old := g.block.NewLoad(types.Double, v.Ptr)
		one := constant.NewFloat(types.Double, 1)

		if uop.Op.Kind == ast.OpInc {
			result = g.block.NewFAdd(old, one)
		} else {
			result = g.block.NewFSub(old, one)
		}
	default:
		panic(report.Raise(report.KindType, uop.Op.Span, "operator '%s' is not defined for %s", uop.Op.Name, v.Type))
	}

	g.block.NewStore(result, v.Ptr)
	uop.SetType(v.Type)
	return result
}

// genCall generates a function call.
func (g *Generator) genCall(call *ast.Call) value.Value {
	fn, ok := g.funcs[call.Callee]
	if !ok {
		panic(report.Raise(report.KindName, call.Span(), "unknown function `%s`", call.Callee))
	}

	params := fn.Proto.Params
	if len(call.Args) != len(params) {
		panic(report.Raise(
			report.KindType,
			call.Span(),
			"`%s` expects %d arguments but got %d",
			call.Callee,
			len(params),
			len(call.Args),
		))
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)

		if arg.Type() != params[i].Type {
			panic(report.Raise(
				report.KindType,
				arg.Span(),
				"argument %d of `%s` must be %s, got %s",
				i+1,
				call.Callee,
				params[i].Type,
				arg.Type(),
			))
		}
	}

	call.SetType(fn.Proto.ReturnType)
	return g.block.NewCall(fn.IRFunc, args...)
}

// genCast generates an explicit type conversion.
func (g *Generator) genCast(cast *ast.Cast) value.Value {
	src := g.genExpr(cast.Src)
	srcType := cast.Src.Type()
	cast.SetType(cast.Target)

	if srcType == cast.Target {
		return src
	}

	switch cast.Target {
	case typing.Int:
		if srcType == typing.Bool {
			return g.block.NewZExt(src, types.I32)
		}

		return g.block.NewFPToUI(src, types.I32)
	case typing.Bool:
		if srcType == typing.Int {
			return g.block.NewICmp(enum.IPredNE, src, constant.NewInt(types.I32, 0))
		}

		return g.block.NewFCmp(enum.FPredONE, src, constant.NewFloat(types.Double, 0))
	case typing.Double:
		return g.block.NewUIToFP(src, types.Double)
	}

	report.ReportICE("no conversion from %s to %s", srcType, cast.Target)
	return nil
}
