package generate

import (
	"bufio"
	"strings"
	"testing"

	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/syntax"
	"github.com/TrainFun/cxc/typing"
)

// generateSource parses every declaration in src and generates it.  It
// returns the generator, the parsed declarations and the generation errors.
func generateSource(t *testing.T, src string) (*Generator, []ast.Decl, []error) {
	t.Helper()

	p := syntax.NewParser(syntax.NewLexer(bufio.NewReader(strings.NewReader(src))), nil)
	g := NewGenerator("test.cx")

	var decls []ast.Decl
	var errs []error
	for {
		eof, err := p.AtEOF()
		if err != nil {
			t.Fatalf("%q: unexpected parse error: %v", src, err)
		} else if eof {
			break
		}

		if skipped, err := p.SkipSemicolon(); err != nil {
			t.Fatalf("%q: unexpected parse error: %v", src, err)
		} else if skipped {
			continue
		}

		decl, err := p.ParseTopLevel()
		if err != nil {
			t.Fatalf("%q: unexpected parse error: %v", src, err)
		}

		decls = append(decls, decl)
		if err := g.GenerateDecl(decl); err != nil {
			errs = append(errs, err)
		}
	}

	return g, decls, errs
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind report.ErrorKind
		line int
	}{
		// names
		{"int main() { return x; }", report.KindName, 1},
		{"int main() {\n  int a;\n  double a;\n  return 0;\n}", report.KindName, 3},
		{"int main() {\n  { int a = 1; }\n  return a;\n}", report.KindName, 3},
		{"int main() { int a = a; return 0; }", report.KindName, 1},
		{"int main() { return f(); }", report.KindName, 1},
		{"int f();\nint f();", report.KindName, 2},
		{"int f(int a);\nint f(double a) { return 0; }", report.KindName, 2},
		{"bool f();\nint f() { return 0; }", report.KindName, 2},
		{"int f() { return 1; }\nint f() { return 2; }", report.KindName, 2},
		{"int printf;", report.KindName, 1},
		{"int exit() { return 0; }", report.KindName, 1},
		{"int scanf(int a);", report.KindName, 1},
		{"int g;\nint g;", report.KindName, 2},
		{"int g;\nint g() { return 0; }", report.KindName, 2},
		{"int f();\nint f;", report.KindName, 2},
		{"int f(int a, int a) { return a; }", report.KindName, 1},

		// types
		{"int main() { return 1.0; }", report.KindType, 1},
		{"bool main() { return 1; }", report.KindType, 1},
		{"int main() { return 1 + 1.0; }", report.KindType, 1},
		{"int main() { bool b = true + false; return 0; }", report.KindType, 1},
		{"int main() { double d = 1.0 % 2.0; return 0; }", report.KindType, 1},
		{"int main() { bool b = true < false; return 0; }", report.KindType, 1},
		{"int main() { bool b = 1 && 2; return 0; }", report.KindType, 1},
		{"int main() { bool b = !1; return 0; }", report.KindType, 1},
		{"int main() { bool b = ODD true; return 0; }", report.KindType, 1},
		{"int main() { if (1) return 0; return 1; }", report.KindType, 1},
		{"int main() { while (1.0) {} return 0; }", report.KindType, 1},
		{"int main() { do {} while (0); return 0; }", report.KindType, 1},
		{"int main() { repeat {} until (0); return 0; }", report.KindType, 1},
		{"int main() { for (;1;) {} return 0; }", report.KindType, 1},
		{"int main() { for (int i = 1.0; ; ) {} return 0; }", report.KindType, 1},
		{"int main() { switch (1.0) { case 1.0: break; } return 0; }", report.KindType, 1},
		{"int main() { switch (1) { case true: break; } return 0; }", report.KindType, 1},
		{"int main() { int x = 1; x = true; return 0; }", report.KindType, 1},
		{"int main() { 1 = 2; return 0; }", report.KindType, 1},
		{"int main() { int a; int b; int c; a = b = c; return 0; }", report.KindType, 1},
		{"int main() { bool b; ++b; return 0; }", report.KindType, 1},
		{"int main() { --1; return 0; }", report.KindType, 1},
		{"int f(int a) { return a; }\nint main() { return f(); }", report.KindType, 2},
		{"int f(int a) { return a; }\nint main() { return f(true); }", report.KindType, 2},
		{"int main() { read 1; return 0; }", report.KindType, 1},
		{"int main() { exit 1.0; }", report.KindType, 1},
		{"int main() { int x = 1.0; return 0; }", report.KindType, 1},
		{"int g = 1.0;", report.KindType, 1},
		{"int g = 1 + 1;", report.KindType, 1},
		{"bool g = 0;", report.KindType, 1},

		// control flow
		{"int main() { break; return 0; }", report.KindControlFlow, 1},
		{"int main() {\n  continue;\n  return 0;\n}", report.KindControlFlow, 2},
		{"int main() { switch (1) { case 1: continue; } return 0; }", report.KindControlFlow, 1},

		// const
		{"const int c = 1;\nint main() { c = 2; return 0; }", report.KindConst, 2},
		{"int main() { const int c = 1; ++c; return 0; }", report.KindConst, 1},
		{"int main() { const double d = 1.0; read d; return 0; }", report.KindConst, 1},
		{"int f(const int a) { a = 1; return a; }", report.KindConst, 1},
	}

	for _, tt := range tests {
		_, _, errs := generateSource(t, tt.src)
		if len(errs) != 1 {
			t.Errorf("%q: expected exactly one error, got=%v", tt.src, errs)
			continue
		}

		cerr, ok := report.AsCompileError(errs[0])
		if !ok {
			t.Errorf("%q: expected a compile error, got=%v", tt.src, errs[0])
			continue
		}

		if cerr.Kind != tt.kind || cerr.Line() != tt.line {
			t.Errorf("%q: expected %s error on line %d, got=%s on line %d (%s)",
				tt.src, tt.kind, tt.line, cerr.Kind, cerr.Line(), cerr.Message)
		}
	}
}

func TestGenerateValid(t *testing.T) {
	srcs := []string{
		"int g = 4; const double pi = 3.14; bool flag = true;",
		"int f(int a) { int a = 2; return a; }",
		"int main() { int x; { int x = 1; { double x = 2.0; } } return x; }",
		"int main() { int x = 1; { int y = x; } int y = 2; return y; }",
		"int main() { for (int i = 0; i < 3; ++i) { int i = 7; } for (int i = 0; ; ) break; return 0; }",
		"int main() { while (true) { switch (1) { case 1: continue; } } return 0; }",
		"int main() { return 1; write 2; }",
		"int main() { switch (1) { } switch (true) { default: } return 0; }",
		"int f(int a, double b, bool c) { return a; } int main() { return f(1, 2.0, false); }",
	}

	for _, src := range srcs {
		g, _, errs := generateSource(t, src)
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors: %v", src, errs)
			continue
		}

		for _, fn := range g.Module().Funcs {
			if len(fn.Blocks) == 0 {
				continue
			}

			if err := verifyFunc(fn); err != nil {
				t.Errorf("%q: function %s is malformed: %v", src, fn.Name(), err)
			}
		}
	}
}

func TestGenerateRollback(t *testing.T) {
	g, _, errs := generateSource(t, "int f() { return x; }")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got=%v", errs)
	}

	if _, ok := g.LookupFunction("f"); ok {
		t.Error("failed function definition was left in the function table")
	}

	for _, fn := range g.Module().Funcs {
		if fn.Name() == "f" {
			t.Error("failed function definition was left in the module")
		}
	}

	g, _, errs = generateSource(t, "int f(int a);\nint f(int b) { return c; }\nint f(int b) { return b; }")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got=%v", errs)
	}

	fn, ok := g.LookupFunction("f")
	if !ok {
		t.Fatal("forward declared function was removed")
	}

	if !fn.Defined || len(fn.IRFunc.Blocks) == 0 {
		t.Error("function was not defined after a failed first definition")
	}

	if name := fn.IRFunc.Params[0].Name(); name != "b" {
		t.Errorf("expected parameter named b, got=%s", name)
	}
}

func TestGenerateFailedDeclLeavesNoTrace(t *testing.T) {
	g, _, errs := generateSource(t, "int g = true;\nint main() { return g; }")
	if len(errs) != 2 {
		t.Fatalf("expected two errors, got=%v", errs)
	}

	if _, ok := g.LookupGlobal("g"); ok {
		t.Error("failed global was left in the global table")
	}

	if len(g.UndefinedFunctions()) != 0 {
		t.Error("unexpected undefined functions")
	}
}

func TestGenerateUndefinedFunctions(t *testing.T) {
	g, _, errs := generateSource(t, "int f(); int g(); int h() { return 0; } int g() { return 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	undefined := g.UndefinedFunctions()
	if len(undefined) != 1 || undefined[0].Proto.FuncName != "f" {
		t.Errorf("expected only f to be undefined, got=%v", undefined)
	}
}

func TestGenerateResolvedTypes(t *testing.T) {
	_, decls, errs := generateSource(t, "bool f(double d) { return cast<int>(d) + 1 > 2; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	ret := decls[0].(*ast.FuncDef).Body.Elems[0].(*ast.ReturnStmt)
	cmp := ret.Value.(*ast.BinaryOp)
	add := cmp.Lhs.(*ast.BinaryOp)
	cast := add.Lhs.(*ast.Cast)

	tests := []struct {
		expr ast.Expr
		want typing.CXType
	}{
		{cmp, typing.Bool},
		{add, typing.Int},
		{cast, typing.Int},
		{cast.Src, typing.Double},
		{cmp.Rhs, typing.Int},
	}

	for _, tt := range tests {
		if got := tt.expr.Type(); got != tt.want {
			t.Errorf("%s: expected type %s, got=%s", ast.Format(tt.expr), tt.want, got)
		}
	}
}

func TestGenerateIR(t *testing.T) {
	g, _, errs := generateSource(t, `
		int div(int a, int b) { return a / b % b; }
		bool lt(int a, int b) { return a < b; }
		bool flt(double a, double b) { return a < b; }
		int casts(bool b, double d) { write cast<double>(cast<int>(b) + cast<int>(d)); return 0; }
		int io() { int x; bool b; read x; read b; write b; exit 1; }
		bool odd(int x) { return ODD x; }
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	ir := g.Module().String()
	for _, want := range []string{
		"udiv i32",
		"urem i32",
		"icmp ult i32",
		"fcmp olt double",
		"zext i1",
		"fptoui double",
		"uitofp i32",
		"@printf(",
		"@scanf(",
		"call i32 @exit(i32 1)",
		"unreachable",
		"@cx.outfmt.int",
		"@cx.infmt.int",
		"and i32",
		"icmp ne i32",
	} {
		if !strings.Contains(ir, want) {
			t.Errorf("expected generated IR to contain %q:\n%s", want, ir)
		}
	}
}
