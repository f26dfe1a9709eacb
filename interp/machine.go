package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// maxCallDepth is the deepest the call stack may grow before execution is
// aborted.
const maxCallDepth = 10000

// Machine executes the functions of an LLVM module produced by the CX code
// generator.  Values are represented as Go values: `i32` as uint32, `i1` as
// bool, `double` as float64 and pointers as *cell.
type Machine struct {
	// StepLimit is the maximum number of instructions to execute.  Zero means
	// there is no limit.
	StepLimit int

	mod *ir.Module
	in  *bufio.Reader
	out *bufio.Writer

	// globals maps each global of the module to its storage.
	globals map[*ir.Global]*cell

	// funcs maps function names to functions.
	funcs map[string]*ir.Func

	// steps is the number of instructions executed so far.
	steps int

	// depth is the current depth of the call stack.
	depth int
}

// cell is a single storage slot: a stack slot or a global.
type cell struct {
	val interface{}
}

// frame holds the values computed by one function invocation.
type frame struct {
	fn   *ir.Func
	vals map[value.Value]interface{}
}

// New creates a new machine for mod which reads input from in and writes
// output to out.
func New(mod *ir.Module, in io.Reader, out io.Writer) *Machine {
	m := &Machine{
		mod:     mod,
		in:      bufio.NewReader(in),
		out:     bufio.NewWriter(out),
		globals: make(map[*ir.Global]*cell),
		funcs:   make(map[string]*ir.Func),
	}

	for _, fn := range mod.Funcs {
		m.funcs[fn.Name()] = fn
	}

	return m
}

// RuntimeError is an error which occurs while executing a program.
type RuntimeError struct {
	// Func is the name of the function executing when the error occurred.
	Func string

	Message string
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error in `%s`: %s", re.Func, re.Message)
}

// exitSignal unwinds the machine when the program calls `exit`.
type exitSignal struct {
	code uint32
}

func (es *exitSignal) Error() string {
	return fmt.Sprintf("exit(%d)", es.code)
}

// Run executes the function named entry which must take no arguments and
// return an int.  It returns the exit code of the program: the value passed
// to `exit` or the value returned by entry.
func (m *Machine) Run(entry string) (code uint32, err error) {
	defer func() {
		if ferr := m.out.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()

	fn, ok := m.funcs[entry]
	if !ok || len(fn.Blocks) == 0 {
		return 0, fmt.Errorf("no definition of entry function `%s`", entry)
	} else if len(fn.Params) != 0 {
		return 0, fmt.Errorf("entry function `%s` must not take parameters", entry)
	}

	if err := m.initGlobals(); err != nil {
		return 0, err
	}

	m.steps = 0
	result, err := m.call(fn, nil)
	if err != nil {
		var es *exitSignal
		if errors.As(err, &es) {
			return es.code, nil
		}

		return 0, err
	}

	rv, ok := result.(uint32)
	if !ok {
		return 0, fmt.Errorf("entry function `%s` must return an int", entry)
	}

	return rv, nil
}

// initGlobals resets every global to its initial value.
func (m *Machine) initGlobals() error {
	for _, glob := range m.mod.Globals {
		init, err := constValue(glob.Init)
		if err != nil {
			return fmt.Errorf("global `%s`: %w", glob.Name(), err)
		}

		m.globals[glob] = &cell{val: init}
	}

	return nil
}

// fault creates a runtime error in the function of fr.
func (m *Machine) fault(fr *frame, msg string, args ...interface{}) error {
	return &RuntimeError{Func: fr.fn.Name(), Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// call invokes fn with args and returns its result.
func (m *Machine) call(fn *ir.Func, args []interface{}) (interface{}, error) {
	if len(fn.Blocks) == 0 {
		native, ok := natives[fn.Name()]
		if !ok {
			return nil, &RuntimeError{Func: fn.Name(), Message: "function is declared but never defined"}
		}

		return native(m, args)
	}

	if m.depth >= maxCallDepth {
		return nil, &RuntimeError{Func: fn.Name(), Message: "call stack overflow"}
	}

	m.depth++
	defer func() { m.depth-- }()

	fr := &frame{fn: fn, vals: make(map[value.Value]interface{})}
	for i, param := range fn.Params {
		fr.vals[param] = args[i]
	}

	block := fn.Blocks[0]
	for {
		for _, inst := range block.Insts {
			if err := m.step(fr); err != nil {
				return nil, err
			}

			result, err := m.execInst(fr, inst)
			if err != nil {
				return nil, err
			}

			if v, ok := inst.(value.Value); ok && result != nil {
				fr.vals[v] = result
			}
		}

		if err := m.step(fr); err != nil {
			return nil, err
		}

		switch term := block.Term.(type) {
		case *ir.TermBr:
			block = term.Succs()[0]
		case *ir.TermCondBr:
			cond, err := m.evalBool(fr, term.Cond)
			if err != nil {
				return nil, err
			}

			succs := term.Succs()
			if cond {
				block = succs[0]
			} else {
				block = succs[1]
			}
		case *ir.TermRet:
			if term.X == nil {
				return nil, nil
			}

			return m.eval(fr, term.X)
		case *ir.TermUnreachable:
			return nil, m.fault(fr, "reached unreachable code in block `%s`", block.Name())
		default:
			return nil, m.fault(fr, "unsupported terminator %T", block.Term)
		}
	}
}

// step counts an executed instruction against the step limit.
func (m *Machine) step(fr *frame) error {
	m.steps++
	if m.StepLimit > 0 && m.steps > m.StepLimit {
		return m.fault(fr, "step limit of %d exceeded", m.StepLimit)
	}

	return nil
}
