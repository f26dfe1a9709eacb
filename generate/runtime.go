package generate

import (
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Names of the runtime primitives CX programs depend on.  They are reserved:
// CX code cannot declare functions or globals with these names.
const (
	RuntimePrintf = "printf"
	RuntimeScanf  = "scanf"
	RuntimeExit   = "exit"
)

// Names of the format string globals.  They contain a `.` so they can never
// collide with a CX identifier.
const (
	OutFmtIntName    = "cx.outfmt.int"
	OutFmtDoubleName = "cx.outfmt.double"
	InFmtIntName     = "cx.infmt.int"
	InFmtDoubleName  = "cx.infmt.double"
)

// runtime holds the module-level declarations of the runtime primitives.
type runtime struct {
	printf, scanf, exit *ir.Func

	outFmtInt, outFmtDouble *ir.Global
	inFmtInt, inFmtDouble   *ir.Global
}

// declareRuntime declares the runtime primitives and format strings in mod.
func declareRuntime(mod *ir.Module) *runtime {
	rt := &runtime{
		printf: mod.NewFunc(RuntimePrintf, types.I32, ir.NewParam("format", types.I8Ptr)),
		scanf:  mod.NewFunc(RuntimeScanf, types.I32, ir.NewParam("format", types.I8Ptr)),
		exit:   mod.NewFunc(RuntimeExit, types.I32, ir.NewParam("code", types.I32)),
	}

	rt.printf.Sig.Variadic = true
	rt.scanf.Sig.Variadic = true

	rt.outFmtInt = declareFmtString(mod, OutFmtIntName, "%u\n")
	rt.outFmtDouble = declareFmtString(mod, OutFmtDoubleName, "%f\n")
	rt.inFmtInt = declareFmtString(mod, InFmtIntName, "%u")
	rt.inFmtDouble = declareFmtString(mod, InFmtDoubleName, "%lf")

	return rt
}

// declareFmtString declares a private, immutable, null-terminated string.
func declareFmtString(mod *ir.Module, name, str string) *ir.Global {
	glob := mod.NewGlobalDef(name, constant.NewCharArrayFromString(str+"\x00"))
	glob.Immutable = true
	glob.Linkage = enum.LinkagePrivate
	return glob
}

// isReserved returns whether name is reserved by the runtime.
func isReserved(name string) bool {
	return name == RuntimePrintf || name == RuntimeScanf || name == RuntimeExit
}

// -----------------------------------------------------------------------------

// fmtPtr returns an `i8*` pointing to the start of a format string.
func (g *Generator) fmtPtr(glob *ir.Global) value.Value {
	zero := constant.NewInt(types.I32, 0)
	return g.block.NewGetElementPtr(glob.ContentType, glob, zero, zero)
}

// outFmtFor returns the output format string for values of typ.
func (g *Generator) outFmtFor(typ typing.CXType) *ir.Global {
	if typ == typing.Double {
		return g.rt.outFmtDouble
	}

	return g.rt.outFmtInt
}

// inFmtFor returns the input format string for variables of typ.
func (g *Generator) inFmtFor(typ typing.CXType) *ir.Global {
	if typ == typing.Double {
		return g.rt.inFmtDouble
	}

	return g.rt.inFmtInt
}
