package report

import (
	"errors"
	"fmt"
)

// TextSpan represents a range or "span" of source text.  Text spans are
// inclusive on both sides: the starting position is the position of the first
// character in the span and the ending position is one past the last
// character.  The line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// ErrorKind classifies a compile error.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	KindLexical     ErrorKind = iota // unrecognized characters, bad literals
	KindSyntax                       // malformed productions
	KindName                         // unknown or redeclared names
	KindType                         // operand, condition and signature mismatches
	KindControlFlow                  // `break`/`continue` with no target
	KindConst                        // writes to const variables
	KindInternal                     // generated IR failed verification
)

var kindNames = map[ErrorKind]string{
	KindLexical:     "Lexical",
	KindSyntax:      "Syntax",
	KindName:        "Name",
	KindType:        "Type",
	KindControlFlow: "Control Flow",
	KindConst:       "Const",
	KindInternal:    "Internal",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CompileError is an error in the user's source text.  It is raised by the
// parser and the generator and carries the location it occurred at.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil.
	Span *TextSpan
}

// Line returns the 1-based source line of the error or 0 if it is unknown.
func (ce *CompileError) Line() int {
	if ce.Span == nil {
		return 0
	}

	return ce.Span.StartLine + 1
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return fmt.Sprintf("%s error: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("line %d: %s error: %s", ce.Line(), ce.Kind, ce.Message)
}

// Raise creates a new compile error.  It is meant to be passed to `panic` and
// recovered by a deferred call to CatchErrors.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// AsCompileError returns the compile error wrapped by err if there is one.
func AsCompileError(err error) (*CompileError, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr, true
	}

	return nil, false
}

// CatchErrors catches any errors thrown by a `panic` during a unit of
// compilation and stores them in the error pointed to by errp.  Panics which
// are not errors continue to unwind.
// NB: This function must ALWAYS be deferred.
func CatchErrors(errp *error) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *CompileError:
			*errp = v
		case error:
			*errp = v
		default:
			panic(x)
		}
	}
}
