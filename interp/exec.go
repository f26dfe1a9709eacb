package interp

import (
	"fmt"
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// execInst executes a single non-terminator instruction and returns the value
// it produces, if any.
func (m *Machine) execInst(fr *frame, inst ir.Instruction) (interface{}, error) {
	switch v := inst.(type) {
	case *ir.InstAlloca:
		zero, err := zeroOf(v.ElemType)
		if err != nil {
			return nil, m.fault(fr, "%s", err)
		}

		return &cell{val: zero}, nil
	case *ir.InstLoad:
		ptr, err := m.evalPtr(fr, v.Src)
		if err != nil {
			return nil, err
		}

		return ptr.val, nil
	case *ir.InstStore:
		ptr, err := m.evalPtr(fr, v.Dst)
		if err != nil {
			return nil, err
		}

		val, err := m.eval(fr, v.Src)
		if err != nil {
			return nil, err
		}

		ptr.val = val
		return nil, nil
	case *ir.InstGetElementPtr:
		// Only the address of the first character of a string is ever taken.
		for _, index := range v.Indices {
			if n, ok := index.(*constant.Int); !ok || n.X.Sign() != 0 {
				return nil, m.fault(fr, "unsupported element pointer index `%s`", index.Ident())
			}
		}

		return m.evalPtr(fr, v.Src)
	case *ir.InstICmp:
		return m.execICmp(fr, v)
	case *ir.InstFCmp:
		return m.execFCmp(fr, v)
	case *ir.InstAnd:
		return m.execBitwise(fr, v.X, v.Y, func(a, b bool) bool { return a && b }, func(a, b uint32) uint32 { return a & b })
	case *ir.InstOr:
		return m.execBitwise(fr, v.X, v.Y, func(a, b bool) bool { return a || b }, func(a, b uint32) uint32 { return a | b })
	case *ir.InstXor:
		return m.execBitwise(fr, v.X, v.Y, func(a, b bool) bool { return a != b }, func(a, b uint32) uint32 { return a ^ b })
	case *ir.InstAdd:
		return m.execIntArith(fr, v.X, v.Y, func(a, b uint32) uint32 { return a + b })
	case *ir.InstSub:
		return m.execIntArith(fr, v.X, v.Y, func(a, b uint32) uint32 { return a - b })
	case *ir.InstMul:
		return m.execIntArith(fr, v.X, v.Y, func(a, b uint32) uint32 { return a * b })
	case *ir.InstUDiv, *ir.InstURem:
		return m.execIntDiv(fr, inst)
	case *ir.InstFAdd:
		return m.execFloatArith(fr, v.X, v.Y, func(a, b float64) float64 { return a + b })
	case *ir.InstFSub:
		return m.execFloatArith(fr, v.X, v.Y, func(a, b float64) float64 { return a - b })
	case *ir.InstFMul:
		return m.execFloatArith(fr, v.X, v.Y, func(a, b float64) float64 { return a * b })
	case *ir.InstFDiv:
		return m.execFloatArith(fr, v.X, v.Y, func(a, b float64) float64 { return a / b })
	case *ir.InstZExt:
		b, err := m.evalBool(fr, v.From)
		if err != nil {
			return nil, err
		}

		return boolToInt(b), nil
	case *ir.InstFPToUI:
		f, err := m.evalFloat(fr, v.From)
		if err != nil {
			return nil, err
		}

		if math.IsNaN(f) || f <= -1 || f >= 1<<32 {
			return nil, m.fault(fr, "%g is out of range for int", f)
		}

		return uint32(math.Trunc(f)), nil
	case *ir.InstUIToFP:
		src, err := m.eval(fr, v.From)
		if err != nil {
			return nil, err
		}

		switch n := src.(type) {
		case uint32:
			return float64(n), nil
		case bool:
			return float64(boolToInt(n)), nil
		}

		return nil, m.fault(fr, "cannot convert %T to double", src)
	case *ir.InstCall:
		return m.execCall(fr, v)
	}

	return nil, m.fault(fr, "unsupported instruction %T", inst)
}

// execICmp executes an integer comparison.  Booleans only support equality.
func (m *Machine) execICmp(fr *frame, inst *ir.InstICmp) (interface{}, error) {
	x, err := m.eval(fr, inst.X)
	if err != nil {
		return nil, err
	}

	y, err := m.eval(fr, inst.Y)
	if err != nil {
		return nil, err
	}

	if bx, ok := x.(bool); ok {
		by, ok := y.(bool)
		if !ok {
			return nil, m.fault(fr, "mismatched comparison operands")
		}

		switch inst.Pred {
		case enum.IPredEQ:
			return bx == by, nil
		case enum.IPredNE:
			return bx != by, nil
		}

		return nil, m.fault(fr, "unsupported bool comparison `%s`", inst.Pred)
	}

	nx, okx := x.(uint32)
	ny, oky := y.(uint32)
	if !okx || !oky {
		return nil, m.fault(fr, "mismatched comparison operands")
	}

	switch inst.Pred {
	case enum.IPredEQ:
		return nx == ny, nil
	case enum.IPredNE:
		return nx != ny, nil
	case enum.IPredULT:
		return nx < ny, nil
	case enum.IPredUGT:
		return nx > ny, nil
	case enum.IPredULE:
		return nx <= ny, nil
	case enum.IPredUGE:
		return nx >= ny, nil
	}

	return nil, m.fault(fr, "unsupported integer comparison `%s`", inst.Pred)
}

// execFCmp executes an ordered floating-point comparison.
func (m *Machine) execFCmp(fr *frame, inst *ir.InstFCmp) (interface{}, error) {
	x, err := m.evalFloat(fr, inst.X)
	if err != nil {
		return nil, err
	}

	y, err := m.evalFloat(fr, inst.Y)
	if err != nil {
		return nil, err
	}

	if math.IsNaN(x) || math.IsNaN(y) {
		return false, nil
	}

	switch inst.Pred {
	case enum.FPredOEQ:
		return x == y, nil
	case enum.FPredONE:
		return x != y, nil
	case enum.FPredOLT:
		return x < y, nil
	case enum.FPredOGT:
		return x > y, nil
	case enum.FPredOLE:
		return x <= y, nil
	case enum.FPredOGE:
		return x >= y, nil
	}

	return nil, m.fault(fr, "unsupported float comparison `%s`", inst.Pred)
}

// execBitwise executes a logical operation on either two bools or two ints.
func (m *Machine) execBitwise(fr *frame, x, y value.Value, onBool func(a, b bool) bool, onInt func(a, b uint32) uint32) (interface{}, error) {
	a, err := m.eval(fr, x)
	if err != nil {
		return nil, err
	}

	b, err := m.eval(fr, y)
	if err != nil {
		return nil, err
	}

	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return onBool(av, bv), nil
		}
	case uint32:
		if bv, ok := b.(uint32); ok {
			return onInt(av, bv), nil
		}
	}

	return nil, m.fault(fr, "mismatched logical operands %T and %T", a, b)
}

// execIntArith executes wrapping 32-bit arithmetic.
func (m *Machine) execIntArith(fr *frame, x, y value.Value, op func(a, b uint32) uint32) (interface{}, error) {
	a, err := m.evalInt(fr, x)
	if err != nil {
		return nil, err
	}

	b, err := m.evalInt(fr, y)
	if err != nil {
		return nil, err
	}

	return op(a, b), nil
}

// execIntDiv executes unsigned division or remainder.
func (m *Machine) execIntDiv(fr *frame, inst ir.Instruction) (interface{}, error) {
	var x, y value.Value
	isRem := false

	switch v := inst.(type) {
	case *ir.InstUDiv:
		x, y = v.X, v.Y
	case *ir.InstURem:
		x, y = v.X, v.Y
		isRem = true
	}

	a, err := m.evalInt(fr, x)
	if err != nil {
		return nil, err
	}

	b, err := m.evalInt(fr, y)
	if err != nil {
		return nil, err
	}

	if b == 0 {
		return nil, m.fault(fr, "integer division by zero")
	}

	if isRem {
		return a % b, nil
	}

	return a / b, nil
}

// execFloatArith executes double-precision arithmetic.
func (m *Machine) execFloatArith(fr *frame, x, y value.Value, op func(a, b float64) float64) (interface{}, error) {
	a, err := m.evalFloat(fr, x)
	if err != nil {
		return nil, err
	}

	b, err := m.evalFloat(fr, y)
	if err != nil {
		return nil, err
	}

	return op(a, b), nil
}

// execCall executes a call instruction.
func (m *Machine) execCall(fr *frame, inst *ir.InstCall) (interface{}, error) {
	callee, ok := inst.Callee.(*ir.Func)
	if !ok {
		return nil, m.fault(fr, "indirect calls are not supported")
	}

	args := make([]interface{}, len(inst.Args))
	for i, arg := range inst.Args {
		val, err := m.eval(fr, arg)
		if err != nil {
			return nil, err
		}

		args[i] = val
	}

	return m.call(callee, args)
}

// -----------------------------------------------------------------------------

// eval evaluates an operand.
func (m *Machine) eval(fr *frame, v value.Value) (interface{}, error) {
	switch c := v.(type) {
	case *ir.Global:
		glob, ok := m.globals[c]
		if !ok {
			return nil, m.fault(fr, "unknown global `%s`", c.Name())
		}

		return glob, nil
	case *ir.Func:
		return c, nil
	case constant.Constant:
		val, err := constValue(c)
		if err != nil {
			return nil, m.fault(fr, "%s", err)
		}

		return val, nil
	}

	val, ok := fr.vals[v]
	if !ok {
		return nil, m.fault(fr, "use of `%s` before it is defined", v.Ident())
	}

	return val, nil
}

func (m *Machine) evalInt(fr *frame, v value.Value) (uint32, error) {
	val, err := m.eval(fr, v)
	if err != nil {
		return 0, err
	}

	n, ok := val.(uint32)
	if !ok {
		return 0, m.fault(fr, "expected an int, got %T", val)
	}

	return n, nil
}

func (m *Machine) evalBool(fr *frame, v value.Value) (bool, error) {
	val, err := m.eval(fr, v)
	if err != nil {
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, m.fault(fr, "expected a bool, got %T", val)
	}

	return b, nil
}

func (m *Machine) evalFloat(fr *frame, v value.Value) (float64, error) {
	val, err := m.eval(fr, v)
	if err != nil {
		return 0, err
	}

	f, ok := val.(float64)
	if !ok {
		return 0, m.fault(fr, "expected a double, got %T", val)
	}

	return f, nil
}

func (m *Machine) evalPtr(fr *frame, v value.Value) (*cell, error) {
	val, err := m.eval(fr, v)
	if err != nil {
		return nil, err
	}

	ptr, ok := val.(*cell)
	if !ok {
		return nil, m.fault(fr, "expected a pointer, got %T", val)
	}

	return ptr, nil
}

// -----------------------------------------------------------------------------

// constValue converts an LLVM constant into its machine representation.
// Character arrays become strings.
func constValue(c constant.Constant) (interface{}, error) {
	switch v := c.(type) {
	case *constant.Int:
		if v.Typ.BitSize == 1 {
			return v.X.Sign() != 0, nil
		}

		return uint32(v.X.Int64()), nil
	case *constant.Float:
		f, _ := v.X.Float64()
		return f, nil
	case *constant.CharArray:
		return string(v.X), nil
	}

	return nil, fmt.Errorf("unsupported constant %T", c)
}

// zeroOf returns the zero value of an LLVM type.
func zeroOf(typ types.Type) (interface{}, error) {
	switch t := typ.(type) {
	case *types.IntType:
		if t.BitSize == 1 {
			return false, nil
		}

		return uint32(0), nil
	case *types.FloatType:
		return float64(0), nil
	}

	return nil, fmt.Errorf("cannot allocate a value of type %s", typ)
}

func boolToInt(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
