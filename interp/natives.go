package interp

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// nativeFunc is a runtime primitive implemented by the machine.
type nativeFunc func(m *Machine, args []interface{}) (interface{}, error)

// natives are the runtime primitives CX programs call.
var natives = map[string]nativeFunc{
	"printf": nativePrintf,
	"scanf":  nativeScanf,
	"exit":   nativeExit,
}

// formatArg returns the format string pointed to by the first argument of a
// formatted I/O primitive.
func formatArg(name string, args []interface{}) (string, error) {
	if len(args) == 0 {
		return "", &RuntimeError{Func: name, Message: "missing format string"}
	}

	ptr, ok := args[0].(*cell)
	if !ok {
		return "", &RuntimeError{Func: name, Message: "format is not a pointer"}
	}

	format, ok := ptr.val.(string)
	if !ok {
		return "", &RuntimeError{Func: name, Message: "format is not a string"}
	}

	return strings.TrimRight(format, "\x00"), nil
}

// verbs splits a format string into its literal text and conversions.  Only
// the `%u`, `%d`, `%f` and `%lf` conversions are supported.
func verbs(name, format string, onText func(string), onVerb func(byte) error) error {
	for len(format) > 0 {
		i := strings.IndexByte(format, '%')
		if i < 0 {
			onText(format)
			return nil
		}

		onText(format[:i])
		format = format[i+1:]

		if strings.HasPrefix(format, "%") {
			onText("%")
			format = format[1:]
			continue
		}

		format = strings.TrimPrefix(format, "l")
		if len(format) == 0 {
			return &RuntimeError{Func: name, Message: "incomplete conversion in format"}
		}

		switch format[0] {
		case 'u', 'd', 'f':
			if err := onVerb(format[0]); err != nil {
				return err
			}
		default:
			return &RuntimeError{Func: name, Message: fmt.Sprintf("unsupported conversion `%%%c`", format[0])}
		}

		format = format[1:]
	}

	return nil
}

// nativePrintf implements `printf`.  It returns the number of bytes written.
func nativePrintf(m *Machine, args []interface{}) (interface{}, error) {
	format, err := formatArg("printf", args)
	if err != nil {
		return nil, err
	}

	sb := &strings.Builder{}
	next := 1

	err = verbs("printf", format, func(text string) { sb.WriteString(text) }, func(verb byte) error {
		if next >= len(args) {
			return &RuntimeError{Func: "printf", Message: "too few arguments for format"}
		}

		arg := args[next]
		next++

		switch v := arg.(type) {
		case uint32:
			if verb == 'd' {
				fmt.Fprint(sb, int32(v))
			} else {
				fmt.Fprint(sb, v)
			}
		case float64:
			fmt.Fprintf(sb, "%f", v)
		default:
			return &RuntimeError{Func: "printf", Message: fmt.Sprintf("cannot format %T", arg)}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	n, err := m.out.WriteString(sb.String())
	if err != nil {
		return nil, err
	}

	return uint32(n), nil
}

// nativeScanf implements `scanf`.  It returns the number of values read.  The
// destination of a conversion which fails is left unchanged.
func nativeScanf(m *Machine, args []interface{}) (interface{}, error) {
	format, err := formatArg("scanf", args)
	if err != nil {
		return nil, err
	}

	// Prompts must be visible before blocking on input.
	if err := m.out.Flush(); err != nil {
		return nil, err
	}

	count := uint32(0)
	next := 1
	stop := errors.New("stop")

	err = verbs("scanf", format, func(string) {}, func(verb byte) error {
		if next >= len(args) {
			return &RuntimeError{Func: "scanf", Message: "too few arguments for format"}
		}

		ptr, ok := args[next].(*cell)
		if !ok {
			return &RuntimeError{Func: "scanf", Message: "destination is not a pointer"}
		}
		next++

		var scanned interface{}
		if verb == 'f' {
			var f float64
			if _, err := fmt.Fscan(m.in, &f); err != nil {
				return stop
			}

			scanned = f
		} else {
			var n uint32
			if _, err := fmt.Fscan(m.in, &n); err != nil {
				return stop
			}

			scanned = n
		}

		ptr.val = scanned
		count++
		return nil
	})

	if err != nil && err != stop && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return count, nil
}

// nativeExit implements `exit`.  It never returns normally.
func nativeExit(m *Machine, args []interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, &RuntimeError{Func: "exit", Message: "expected one argument"}
	}

	code, ok := args[0].(uint32)
	if !ok {
		return nil, &RuntimeError{Func: "exit", Message: fmt.Sprintf("exit code must be an int, got %T", args[0])}
	}

	return nil, &exitSignal{code: code}
}
