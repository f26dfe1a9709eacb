package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/kr/pretty"
)

func newTestParser(src string) *Parser {
	return NewParser(NewLexer(bufio.NewReader(strings.NewReader(src))), nil)
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b % c", "(% (/ a b) c)"},
		{"x = y + 1", "(= x (+ y 1))"},
		{"a = b = c", "(= (= a b) c)"},
		{"a < b && c == d", "(&& (< a b) (== c d))"},
		{"a || b && c", "(&& (|| a b) c)"},
		{"!a && ODD b", "(&& (! a) (ODD b))"},
		{"++x * 2", "(* (++ x) 2)"},
		{"--x", "(-- x)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"cast<double>(x) / 2.5", "(/ (cast double x) 2.5)"},
		{"cast<bool>(n % 2)", "(cast bool (% n 2))"},
		{"f()", "(call f)"},
		{"f(1, g(x), y = 2)", "(call f 1 (call g x) (= y 2))"},
		{"true != false", "(!= true false)"},
		{"3.0", "3.0"},
	}

	for _, tt := range tests {
		p := newTestParser(tt.src)

		expr, err := p.ParseExpression()
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.src, err)
			continue
		}

		if got := ast.Format(expr); got != tt.want {
			t.Errorf("%q: expected %s, got=%s\n%# v", tt.src, tt.want, got, pretty.Formatter(expr))
		}

		if eof, _ := p.AtEOF(); !eof {
			t.Errorf("%q: expression was not fully consumed", tt.src)
		}
	}
}

func TestParseCustomPrecedence(t *testing.T) {
	prec := DefaultPrecedence()
	prec[TOK_PLUS], prec[TOK_STAR] = prec[TOK_STAR], prec[TOK_PLUS]

	p := NewParser(NewLexer(bufio.NewReader(strings.NewReader("a + b * c"))), prec)
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatal(err)
	}

	if got := ast.Format(expr); got != "(* (+ a b) c)" {
		t.Fatalf("expected swapped precedence, got=%s", got)
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{";", "(empty)"},
		{"x = 1;", "(= x 1)"},
		{"{ int a = 1; const double d; write a; }", "{ (var int a 1) (var const double d) (write a) }"},
		{"if (a) write 1; else write 2;", "(if a (write 1) (write 2))"},
		{"if (a) if (b) x; else y;", "(if a (if b x y))"},
		{"for (int i = 0; i < 10; ++i) write i;", "(for (int i 0) (< i 10) (++ i) (write i))"},
		{"for (;;) break;", "(for _ _ _ (break))"},
		{"for (int i; ; ) continue;", "(for (int i _) _ _ (continue))"},
		{"while (x < 3) ++x;", "(while (< x 3) (++ x))"},
		{"do x = x + 1; while (x < 3);", "(do (= x (+ x 1)) (< x 3))"},
		{"repeat --x; until (x == 0);", "(repeat (-- x) (== x 0))"},
		{"read x;", "(read x)"},
		{"return a + 1;", "(return (+ a 1))"},
		{"exit 3;", "(exit 3)"},
		{"switch (x) { }", "(switch x)"},
		{
			"switch (x) { case 1: case 2: write 1; default: write 0; case 3: ; }",
			"(switch x (case 1 2 : (write 1)) (case default : (write 0)) (case 3 : (empty)))",
		},
	}

	for _, tt := range tests {
		p := newTestParser(tt.src)

		stmt, err := p.ParseStatement()
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.src, err)
			continue
		}

		if got := ast.Format(stmt); got != tt.want {
			t.Errorf("%q: expected %s, got=%s", tt.src, tt.want, got)
		}
	}
}

func TestParseTopLevel(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"int g;", "(global int g)"},
		{"const double pi = 3.14;", "(global const double pi 3.14)"},
		{"bool flag = true;", "(global bool flag true)"},
		{"int f(int a, const bool b);", "(proto int f (int a const bool b))"},
		{"double zero();", "(proto double zero ())"},
		{"int main() { return 0; }", "(func int main () { (return 0) })"},
		{"int id(int x) { int y = x; return y; }", "(func int id (int x) { (var int y x) (return y) })"},
	}

	for _, tt := range tests {
		decl, err := newTestParser(tt.src).ParseTopLevel()
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.src, err)
			continue
		}

		if got := ast.Format(decl); got != tt.want {
			t.Errorf("%q: expected %s, got=%s", tt.src, tt.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind report.ErrorKind
		line int
	}{
		{"int x = 1", report.KindSyntax, 1},
		{"int f(int a,) { }", report.KindSyntax, 1},
		{"const int f() { return 1; }", report.KindSyntax, 1},
		{"int f() {\n  write 1\n}", report.KindSyntax, 3},
		{"int f() {\n  switch (x) { default: ; default: ; }\n}", report.KindSyntax, 2},
		{"int f() { switch (x) { write 1; } }", report.KindSyntax, 1},
		{"int f() { repeat x; while (x); }", report.KindSyntax, 1},
		{"int f() { break }", report.KindSyntax, 1},
		{"int f() { x = cast<string>(1); }", report.KindSyntax, 1},
		{"int f() {\n\n  x = # 1;\n}", report.KindLexical, 3},
		{"int f() { int y = 1;", report.KindSyntax, 1},
		{"foo;", report.KindSyntax, 1},
		{"int 3;", report.KindSyntax, 1},
	}

	for _, tt := range tests {
		_, err := newTestParser(tt.src).ParseTopLevel()

		cerr, ok := report.AsCompileError(err)
		if !ok {
			t.Errorf("%q: expected a compile error, got=%v", tt.src, err)
			continue
		}

		if cerr.Kind != tt.kind || cerr.Line() != tt.line {
			t.Errorf("%q: expected %s error on line %d, got=%s on line %d (%s)",
				tt.src, tt.kind, tt.line, cerr.Kind, cerr.Line(), cerr.Message)
		}
	}
}

func TestResync(t *testing.T) {
	p := newTestParser("int x = = 2; int y; int g() { 1 + ; } double z;")

	if _, err := p.ParseTopLevel(); err == nil {
		t.Fatal("expected first declaration to fail")
	}
	if err := p.Resync(); err != nil {
		t.Fatal(err)
	}

	decl, err := p.ParseTopLevel()
	if err != nil || ast.Format(decl) != "(global int y)" {
		t.Fatalf("expected to recover at `int y`, got=%v (%v)", decl, err)
	}

	if _, err := p.ParseTopLevel(); err == nil {
		t.Fatal("expected function with bad body to fail")
	}
	if err := p.Resync(); err != nil {
		t.Fatal(err)
	}

	// The resync stops at the `;` inside the body, so the stray `}` must be
	// skipped by a second round of recovery.
	if _, err := p.ParseTopLevel(); err == nil {
		t.Fatal("expected stray `}` to fail")
	}
	if err := p.Resync(); err != nil {
		t.Fatal(err)
	}

	decl, err = p.ParseTopLevel()
	if err != nil || ast.Format(decl) != "(global double z)" {
		t.Fatalf("expected to recover at `double z`, got=%v (%v)", decl, err)
	}

	if eof, _ := p.AtEOF(); !eof {
		t.Fatal("expected end of input")
	}
}
