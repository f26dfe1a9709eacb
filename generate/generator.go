package generate

import (
	"fmt"

	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Variable is a named storage slot visible to CX code: a stack slot allocated
// in the entry block of a function or a module global.
type Variable struct {
	Ptr   value.Value
	Type  typing.CXType
	Const bool
}

// Function is a function known to the generator.
type Function struct {
	// IRFunc is the LLVM function.
	IRFunc *ir.Func

	// Proto is the prototype the function was first declared with.
	Proto *ast.Prototype

	// Defined indicates whether the function has a body.
	Defined bool
}

// jumpTarget is an entry of the jump target stack.  Continue is nil for
// switches which are only a target of `break`.
type jumpTarget struct {
	Continue, Break *ir.Block
}

// Generator is responsible for converting CX declarations into LLVM IR.  It
// type checks each declaration as it lowers it and appends the result to a
// single LLVM module.  Declarations are processed one at a time: a
// declaration which fails leaves no trace in the module.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// rt holds the declarations of the runtime primitives.
	rt *runtime

	// globals is the table of global variables.
	globals map[string]*Variable

	// funcs is the table of declared functions.
	funcs map[string]*Function

	// enclosingFunc is function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// varBlock is the entry block of the enclosing function.  All stack slots
	// are allocated in it.
	varBlock *ir.Block

	// block stores the current block being generated.
	block *ir.Block

	// blockCounter is used to give basic blocks unique names.
	blockCounter int

	// locals is the table of local variables currently in scope.
	locals map[string]*Variable

	// takenNames is the set of names declared in the current block.
	takenNames map[string]struct{}

	// jumps is the stack of enclosing loop and switch targets.
	jumps []jumpTarget
}

// NewGenerator creates a new generator with an empty module named name.
func NewGenerator(name string) *Generator {
	g := &Generator{
		mod:     ir.NewModule(),
		globals: make(map[string]*Variable),
		funcs:   make(map[string]*Function),
	}

	g.mod.SourceFilename = name
	g.rt = declareRuntime(g.mod)
	return g
}

// Module returns the LLVM module built so far.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// LookupFunction returns the function declared with the given name.
func (g *Generator) LookupFunction(name string) (*Function, bool) {
	fn, ok := g.funcs[name]
	return fn, ok
}

// LookupGlobal returns the global variable declared with the given name.
func (g *Generator) LookupGlobal(name string) (*Variable, bool) {
	v, ok := g.globals[name]
	return v, ok
}

// GenerateDecl type checks and lowers a single top-level declaration.  If it
// fails, the module is left exactly as it was before the call.
func (g *Generator) GenerateDecl(decl ast.Decl) (err error) {
	defer report.CatchErrors(&err)
	defer g.resetFuncState()

	switch v := decl.(type) {
	case *ast.GlobalVarDecl:
		g.genGlobalVar(v)
	case *ast.Prototype:
		g.genPrototypeDecl(v)
	case *ast.FuncDef:
		g.genFuncDef(v)
	default:
		report.ReportICE("unknown declaration type: %T", decl)
	}

	return nil
}

// resetFuncState clears all per-function state.
func (g *Generator) resetFuncState() {
	g.enclosingFunc = nil
	g.varBlock = nil
	g.block = nil
	g.blockCounter = 0
	g.locals = nil
	g.takenNames = nil
	g.jumps = nil
}

// -----------------------------------------------------------------------------

// lookup looks up a variable by name.  Locals shadow globals.
func (g *Generator) lookup(name string) (*Variable, bool) {
	if v, ok := g.locals[name]; ok {
		return v, true
	}

	v, ok := g.globals[name]
	return v, ok
}

// lookupVar looks up a variable referenced by an identifier and raises a
// name error if it does not exist.
func (g *Generator) lookupVar(ident *ast.Identifier) *Variable {
	v, ok := g.lookup(ident.Name)
	if !ok {
		panic(report.Raise(report.KindName, ident.Span(), "unknown variable `%s`", ident.Name))
	}

	return v
}

// declareLocal allocates a new stack slot for a local variable in the current
// block's scope.
func (g *Generator) declareLocal(vd *ast.VarDecl) *Variable {
	if _, ok := g.takenNames[vd.VarName]; ok {
		panic(report.Raise(report.KindName, vd.NameSpan, "variable `%s` is already declared in this block", vd.VarName))
	}

	v := &Variable{
		Ptr:   g.varBlock.NewAlloca(convType(vd.Type)),
		Type:  vd.Type,
		Const: vd.Const,
	}

	g.locals[vd.VarName] = v
	g.takenNames[vd.VarName] = struct{}{}
	return v
}

// scopeSnapshot is a saved copy of the local scope.
type scopeSnapshot struct {
	locals     map[string]*Variable
	takenNames map[string]struct{}
}

// saveScope copies the current local scope so it can be restored later.
func (g *Generator) saveScope() scopeSnapshot {
	locals := make(map[string]*Variable, len(g.locals))
	for name, v := range g.locals {
		locals[name] = v
	}

	takenNames := make(map[string]struct{}, len(g.takenNames))
	for name := range g.takenNames {
		takenNames[name] = struct{}{}
	}

	return scopeSnapshot{locals: locals, takenNames: takenNames}
}

// restoreScope restores a previously saved local scope.
func (g *Generator) restoreScope(snap scopeSnapshot) {
	g.locals = snap.locals
	g.takenNames = snap.takenNames
}

// -----------------------------------------------------------------------------

// pushJumpTarget pushes a new set of jump targets for a loop or switch body.
func (g *Generator) pushJumpTarget(continueBlock, breakBlock *ir.Block) {
	g.jumps = append(g.jumps, jumpTarget{Continue: continueBlock, Break: breakBlock})
}

// popJumpTarget pops the innermost jump targets.
func (g *Generator) popJumpTarget() {
	g.jumps = g.jumps[:len(g.jumps)-1]
}

// continueTarget returns the nearest enclosing `continue` target.
func (g *Generator) continueTarget() (*ir.Block, bool) {
	for i := len(g.jumps) - 1; i >= 0; i-- {
		if g.jumps[i].Continue != nil {
			return g.jumps[i].Continue, true
		}
	}

	return nil, false
}

// breakTarget returns the nearest enclosing `break` target.
func (g *Generator) breakTarget() (*ir.Block, bool) {
	if len(g.jumps) == 0 {
		return nil, false
	}

	return g.jumps[len(g.jumps)-1].Break, true
}

// -----------------------------------------------------------------------------

// newBlock creates a new basic block for the current function without adding
// it to the function.  It is added when the generator is positioned on it
// with setBlock so that blocks appear in the order they are generated.
func (g *Generator) newBlock(label string) *ir.Block {
	block := ir.NewBlock(fmt.Sprintf("%s.%d", label, g.blockCounter))
	block.Parent = g.enclosingFunc
	g.blockCounter++
	return block
}

// setBlock appends block to the current function and positions the generator
// on it.
func (g *Generator) setBlock(block *ir.Block) {
	g.enclosingFunc.Blocks = append(g.enclosingFunc.Blocks, block)
	g.block = block
}

// startDeadBlock positions the generator on a fresh block after a terminator
// has been emitted.  Code after `break`, `continue`, `return` or `exit` is
// lowered into this unreachable block.
func (g *Generator) startDeadBlock() {
	g.setBlock(g.newBlock("dead"))
}

// UndefinedFunctions returns the functions which have been declared but not
// defined in the order they were declared.
func (g *Generator) UndefinedFunctions() []*Function {
	var undefined []*Function
	for _, irFunc := range g.mod.Funcs {
		if fn, ok := g.funcs[irFunc.Name()]; ok && fn.IRFunc == irFunc && !fn.Defined {
			undefined = append(undefined, fn)
		}
	}

	return undefined
}
