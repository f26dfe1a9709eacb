package generate

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// genCond generates a loop or branch condition which must be a bool.  The
// `what` names the construct for error messages.
func (g *Generator) genCond(cond ast.Expr, what string) value.Value {
	val := g.genExpr(cond)
	if cond.Type() != typing.Bool {
		panic(report.Raise(report.KindType, cond.Span(), "condition of %s must be bool, got %s", what, cond.Type()))
	}

	return val
}

// genIfStmt generates an if statement.
func (g *Generator) genIfStmt(is *ast.IfStmt) {
	cond := g.genCond(is.Cond, "if")

	thenBlock := g.newBlock("if.then")
	endBlock := g.newBlock("if.end")

	// If there is no else, then the "else" block is the ending block.
	elseBlock := endBlock
	if is.Else != nil {
		elseBlock = g.newBlock("if.else")
	}

	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.setBlock(thenBlock)
	g.genStmt(is.Then)
	g.block.NewBr(endBlock)

	if is.Else != nil {
		g.setBlock(elseBlock)
		g.genStmt(is.Else)
		g.block.NewBr(endBlock)
	}

	g.setBlock(endBlock)
}

// genForStmt generates a for loop.  The loop variable, if any, is only in
// scope for the duration of the loop.
func (g *Generator) genForStmt(fs *ast.ForStmt) {
	if fs.VarType.IsValid() {
		var start value.Value
		if fs.Start == nil {
			start = zeroValue(fs.VarType)
		} else {
			start = g.genExpr(fs.Start)

			if fs.Start.Type() != fs.VarType {
				panic(report.Raise(
					report.KindType,
					fs.Start.Span(),
					"cannot initialize loop variable `%s` of type %s with a value of type %s",
					fs.VarName,
					fs.VarType,
					fs.Start.Type(),
				))
			}
		}

		slot := g.varBlock.NewAlloca(convType(fs.VarType))
		g.block.NewStore(start, slot)

		oldVar, hadOld := g.locals[fs.VarName]
		g.locals[fs.VarName] = &Variable{Ptr: slot, Type: fs.VarType}
		defer func() {
			if hadOld {
				g.locals[fs.VarName] = oldVar
			} else {
				delete(g.locals, fs.VarName)
			}
		}()
	}

	condBlock := g.newBlock("for.cond")
	g.block.NewBr(condBlock)
	g.setBlock(condBlock)

	// An absent end condition loops forever.
	var cond value.Value = constant.True
	if fs.End != nil {
		cond = g.genCond(fs.End, "for")
	}

	bodyBlock := g.newBlock("for.body")
	stepBlock := g.newBlock("for.step")
	endBlock := g.newBlock("for.end")
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.pushJumpTarget(stepBlock, endBlock)
	defer g.popJumpTarget()

	g.setBlock(bodyBlock)
	g.genStmt(fs.Body)
	g.block.NewBr(stepBlock)

	g.setBlock(stepBlock)
	if fs.Step != nil {
		g.genExpr(fs.Step)
	}
	g.block.NewBr(condBlock)

	g.setBlock(endBlock)
}

// genWhileStmt generates a while loop.
func (g *Generator) genWhileStmt(ws *ast.WhileStmt) {
	condBlock := g.newBlock("while.cond")
	g.block.NewBr(condBlock)
	g.setBlock(condBlock)

	cond := g.genCond(ws.Cond, "while")

	bodyBlock := g.newBlock("while.body")
	endBlock := g.newBlock("while.end")
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.pushJumpTarget(condBlock, endBlock)
	defer g.popJumpTarget()

	g.setBlock(bodyBlock)
	g.genStmt(ws.Body)
	g.block.NewBr(condBlock)

	g.setBlock(endBlock)
}

// genDoWhileStmt generates a do-while loop.
func (g *Generator) genDoWhileStmt(dws *ast.DoWhileStmt) {
	bodyBlock, endBlock := g.genPostTestBody(dws.Body, "do")

	cond := g.genCond(dws.Cond, "do-while")
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.setBlock(endBlock)
}

// genRepeatUntilStmt generates a repeat-until loop.  It loops while the
// condition is false.
func (g *Generator) genRepeatUntilStmt(rus *ast.RepeatUntilStmt) {
	bodyBlock, endBlock := g.genPostTestBody(rus.Body, "repeat")

	cond := g.genCond(rus.Cond, "repeat-until")
	g.block.NewCondBr(cond, endBlock, bodyBlock)

	g.setBlock(endBlock)
}

// genPostTestBody generates the body of a loop whose condition is tested after
// each iteration.  It leaves the generator positioned on the condition block
// and returns the body and end blocks.
func (g *Generator) genPostTestBody(body ast.Stmt, label string) (*ir.Block, *ir.Block) {
	bodyBlock := g.newBlock(label + ".body")
	condBlock := g.newBlock(label + ".cond")
	endBlock := g.newBlock(label + ".end")

	g.block.NewBr(bodyBlock)

	g.pushJumpTarget(condBlock, endBlock)
	g.setBlock(bodyBlock)
	g.genStmt(body)
	g.block.NewBr(condBlock)
	g.popJumpTarget()

	g.setBlock(condBlock)
	return bodyBlock, endBlock
}

// -----------------------------------------------------------------------------

// genSwitchStmt generates a switch statement.  The case labels are tested in
// source order by a chain of comparison blocks.  Each clause's handler falls
// through into the handler of the next clause.  The default handler is only
// reached once every case test has failed.
func (g *Generator) genSwitchStmt(ss *ast.SwitchStmt) {
	scrutinee := g.genExpr(ss.Scrutinee)
	scrutType := ss.Scrutinee.Type()
	if scrutType != typing.Int && scrutType != typing.Bool {
		panic(report.Raise(report.KindType, ss.Scrutinee.Span(), "switch value must be int or bool, got %s", scrutType))
	}

	testBlock := g.newBlock("switch.test")
	handlerBlock := g.newBlock("switch.case")
	endBlock := g.newBlock("switch.end")
	var defaultBlock *ir.Block

	g.block.NewBr(testBlock)

	g.pushJumpTarget(nil, endBlock)
	defer g.popJumpTarget()

	for _, clause := range ss.Clauses {
		for _, label := range clause.Labels {
			if label == nil {
				defaultBlock = handlerBlock
				continue
			}

			g.setBlock(testBlock)
			labelVal := g.genExpr(label)
			if label.Type() != scrutType {
				panic(report.Raise(
					report.KindType,
					label.Span(),
					"case label of type %s does not match switch value of type %s",
					label.Type(),
					scrutType,
				))
			}

			matched := g.block.NewICmp(enum.IPredEQ, scrutinee, labelVal)
			testBlock = g.newBlock("switch.test")
			g.block.NewCondBr(matched, handlerBlock, testBlock)
		}

		g.setBlock(handlerBlock)
		for _, stmt := range clause.Body {
			g.genStmt(stmt)
		}

		handlerBlock = g.newBlock("switch.case")
		g.block.NewBr(handlerBlock)
	}

	// Every case test failed.
	g.setBlock(testBlock)
	if defaultBlock != nil {
		g.block.NewBr(defaultBlock)
	} else {
		g.block.NewBr(endBlock)
	}

	// The last handler falls through to the end.
	g.setBlock(handlerBlock)
	g.block.NewBr(endBlock)

	g.setBlock(endBlock)
}
