package generate

import (
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// convType converts a CX type into its LLVM type.
func convType(typ typing.CXType) types.Type {
	switch typ {
	case typing.Int:
		return types.I32
	case typing.Bool:
		return types.I1
	case typing.Double:
		return types.Double
	}

	report.ReportICE("no LLVM type for CX type %s", typ)
	return nil
}

// cxTypeOf converts an LLVM value type back into its CX type.  It returns
// typing.Error for types CX values never have.
func cxTypeOf(typ types.Type) typing.CXType {
	switch {
	case typ.Equal(types.I32):
		return typing.Int
	case typ.Equal(types.I1):
		return typing.Bool
	case typ.Equal(types.Double):
		return typing.Double
	}

	return typing.Error
}

// zeroValue returns the zero value of a CX type.
func zeroValue(typ typing.CXType) constant.Constant {
	switch typ {
	case typing.Int:
		return constant.NewInt(types.I32, 0)
	case typing.Bool:
		return constant.NewBool(false)
	case typing.Double:
		return constant.NewFloat(types.Double, 0)
	}

	report.ReportICE("no zero value for CX type %s", typ)
	return nil
}

// intConst returns the LLVM constant for an unsigned CX integer.  The value is
// stored in its two's complement form as LLVM prints integer constants signed.
func intConst(v uint32) *constant.Int {
	return constant.NewInt(types.I32, int64(int32(v)))
}
