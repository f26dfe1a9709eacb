package build

import (
	"errors"
	"strings"
	"testing"

	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
)

func TestCompileRecovery(t *testing.T) {
	src := `int a = 1;;
int b = = 2;
int f() { return x; }
int g() { 1 + ; }
double c;
int h() { return a; }
`

	result := Compile(strings.NewReader(src), "test.cx", nil)

	// The stray `}` left behind by the failed body of g is an error of its own.
	wantLines := []int{2, 3, 4, 4}
	if len(result.Errors) != len(wantLines) {
		t.Fatalf("expected %d errors, got=%v", len(wantLines), result.Errors)
	}

	for i, err := range result.Errors {
		cerr, ok := report.AsCompileError(err)
		if !ok {
			t.Errorf("expected a compile error, got=%v", err)
		} else if cerr.Line() != wantLines[i] {
			t.Errorf("expected error on line %d, got=%d (%s)", wantLines[i], cerr.Line(), cerr.Message)
		}
	}

	var names []string
	for _, decl := range result.Decls {
		names = append(names, decl.Name())
	}

	if got := strings.Join(names, " "); got != "a c h" {
		t.Errorf("expected declarations a c h, got=%s", got)
	}

	for _, fn := range result.Module.Funcs {
		if name := fn.Name(); name == "f" || name == "g" {
			t.Errorf("failed function %s was left in the module", name)
		}
	}
}

func TestCompileLexicalErrors(t *testing.T) {
	result := Compile(strings.NewReader("int a = 99999999999;\nint b = 1;\nint c = #;\nint d;"), "test.cx", nil)

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got=%v", result.Errors)
	}

	for _, err := range result.Errors {
		if cerr, ok := report.AsCompileError(err); !ok || cerr.Kind != report.KindLexical {
			t.Errorf("expected a lexical error, got=%v", err)
		}
	}

	if len(result.Decls) != 2 || result.Decls[0].Name() != "b" || result.Decls[1].Name() != "d" {
		t.Errorf("expected declarations b and d, got=%v", result.Decls)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestCompileReadError(t *testing.T) {
	result := Compile(failingReader{}, "test.cx", nil)

	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got=%v", result.Errors)
	}

	if _, ok := report.AsCompileError(result.Errors[0]); ok {
		t.Errorf("expected a read error, got=%v", result.Errors[0])
	}
}

func TestCompileUndefined(t *testing.T) {
	result := Compile(strings.NewReader("int f(int x);\nint main() { return f(1); }"), "test.cx", nil)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	if len(result.Undefined) != 1 || result.Undefined[0].Proto.FuncName != "f" {
		t.Errorf("expected f to be undefined, got=%v", result.Undefined)
	}

	if _, ok := result.Decls[0].(*ast.Prototype); !ok {
		t.Errorf("expected a prototype, got=%T", result.Decls[0])
	}
}
