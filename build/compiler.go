package build

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/TrainFun/cxc/mods"
	"github.com/TrainFun/cxc/report"

	"github.com/kr/pretty"
)

// Compiler compiles a single CX source file according to a build profile and
// reports everything that goes wrong along the way.
type Compiler struct {
	// srcPath is the path to the source file being compiled.
	srcPath string

	// profile is the build profile of the compiler.
	profile *mods.BuildProfile
}

// NewCompiler creates a new compiler for the source file at srcPath.
func NewCompiler(srcPath string, profile *mods.BuildProfile) *Compiler {
	return &Compiler{srcPath: srcPath, profile: profile}
}

// Compile compiles the source file.  All errors and warnings are reported.  It
// returns the compilation result and whether compilation succeeded.
func (c *Compiler) Compile() (*Result, bool) {
	f, err := os.Open(c.srcPath)
	if err != nil {
		report.ReportFatal("failed to open source file: %s", err)
		return nil, false
	}
	defer f.Close()

	report.ReportCompileHeader(c.srcPath, c.profile.EmitModeName())

	result := Compile(f, filepath.Base(c.srcPath), nil)

	for _, err := range result.Errors {
		if cerr, ok := report.AsCompileError(err); ok {
			report.ReportCompileError(c.srcPath, cerr)
		} else {
			report.ReportStdError("Read", err)
		}
	}

	for _, fn := range result.Undefined {
		report.ReportCompileWarning(c.srcPath, fn.Proto.Span(), "function `%s` is declared but never defined", fn.Proto.FuncName)
	}

	report.ReportInfo("Compiled", "%d declarations", len(result.Decls))

	return result, !report.AnyErrors()
}

// Emit writes the compilation output selected by the build profile and
// returns the path it was written to.
func (c *Compiler) Emit(result *Result) string {
	outputPath := c.profile.DefaultOutputPath(c.srcPath)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			report.ReportFatal("failed to create output directory: %s", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		report.ReportFatal("failed to create output file: %s", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	switch c.profile.EmitMode {
	case mods.EmitAST:
		for _, decl := range result.Decls {
			if _, err = pretty.Fprintf(w, "%# v\n", decl); err != nil {
				break
			}
		}
	default:
		_, err = result.Module.WriteTo(w)
	}

	if err == nil {
		err = w.Flush()
	}

	if err != nil {
		report.ReportFatal("failed to write output: %s", err)
	}

	return outputPath
}
