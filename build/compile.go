package build

import (
	"bufio"
	"io"

	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/generate"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/syntax"

	"github.com/llir/llvm/ir"
)

// Result is the outcome of compiling a translation unit.
type Result struct {
	// Module is the LLVM module containing every declaration that compiled
	// successfully.
	Module *ir.Module

	// Decls are the declarations that compiled successfully in source order.
	Decls []ast.Decl

	// Errors are the errors encountered in source order.  Compile errors are
	// of type *report.CompileError.
	Errors []error

	// Undefined are the functions which were declared but never defined.
	Undefined []*generate.Function
}

// OK returns whether the translation unit compiled without errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Compile compiles a whole translation unit read from r into a module named
// name.  A declaration that fails to parse or generate is discarded and
// compilation continues with the next declaration.  If prec is nil, the
// default operator precedence is used.
func Compile(r io.Reader, name string, prec syntax.PrecedenceTable) *Result {
	p := syntax.NewParser(syntax.NewLexer(bufio.NewReader(r)), prec)
	g := generate.NewGenerator(name)
	result := &Result{Module: g.Module()}

	// record records an error and returns whether compilation can continue.
	// Only compile errors are recoverable: any other error comes from the
	// underlying reader.
	record := func(err error) bool {
		result.Errors = append(result.Errors, err)

		_, ok := report.AsCompileError(err)
		return ok
	}

	for {
		eof, err := p.AtEOF()
		if err != nil {
			if record(err) {
				continue
			}

			break
		} else if eof {
			break
		}

		// Stray semicolons between declarations are ignored.
		skipped, err := p.SkipSemicolon()
		if err != nil {
			if record(err) {
				continue
			}

			break
		} else if skipped {
			continue
		}

		decl, err := p.ParseTopLevel()
		if err != nil {
			if !record(err) {
				break
			}

			if err := p.Resync(); err != nil && !record(err) {
				break
			}

			continue
		}

		// The declaration was fully consumed so there is nothing to skip.
		if err := g.GenerateDecl(decl); err != nil {
			record(err)
			continue
		}

		result.Decls = append(result.Decls, decl)
	}

	result.Undefined = g.UndefinedFunctions()
	return result
}
