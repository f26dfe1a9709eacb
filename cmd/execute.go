package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TrainFun/cxc/build"
	"github.com/TrainFun/cxc/common"
	"github.com/TrainFun/cxc/interp"
	"github.com/TrainFun/cxc/mods"
	"github.com/TrainFun/cxc/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `cxc` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("cxc", "cxc is the compiler for the CX language", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, report.LogLevelNames)

	buildCmd := cli.AddSubcommand("build", "compile a CX source file", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the source file to compile", true)
	buildCmd.AddStringArg("outpath", "o", "the path to write the output to", false)
	buildCmd.AddSelectorArg("outmode", "m", "the kind of output to produce", false, []string{"llvm", "ast"})

	runCmd := cli.AddSubcommand("run", "compile and run a CX source file", true)
	runCmd.AddPrimaryArg("source-path", "the path to the source file to run", true)
	runCmd.AddStringArg("entry", "e", "the name of the function to run", false)

	cli.AddSubcommand("version", "print the cxc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	loglevel, _ := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, loglevel)
	case "run":
		execRunCommand(subResult, loglevel)
	case "version":
		report.PrintInfoMessage("cxc Version", common.CXVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	srcPath, profile, ok := loadProfile(result, loglevel)
	if !ok {
		os.Exit(1)
	}

	if outpath, ok := result.Arguments["outpath"]; ok {
		profile.OutputPath = outpath.(string)
	}

	if outmode, ok := result.Arguments["outmode"]; ok {
		profile.EmitMode, _ = mods.EmitModeFromName(outmode.(string))
	}

	report.InitReporter(profile.LogLevel)

	c := build.NewCompiler(srcPath, profile)
	compileResult, ok := c.Compile()
	if !ok {
		report.ReportCompilationFinished("")
		os.Exit(1)
	}

	report.ReportCompilationFinished(c.Emit(compileResult))
}

// execRunCommand executes the run subcommand and handles all errors.  The
// process exits with the exit code of the program.
func execRunCommand(result *olive.ArgParseResult, loglevel string) {
	srcPath, profile, ok := loadProfile(result, loglevel)
	if !ok {
		os.Exit(1)
	}

	if entry, ok := result.Arguments["entry"]; ok {
		profile.Entry = entry.(string)
	}

	// Informational messages would be mixed into the program's output.
	if loglevel == "" && profile.LogLevel > report.LogLevelWarn {
		profile.LogLevel = report.LogLevelWarn
	}

	report.InitReporter(profile.LogLevel)

	c := build.NewCompiler(srcPath, profile)
	compileResult, ok := c.Compile()
	if !ok {
		report.ReportCompilationFinished("")
		os.Exit(1)
	}

	m := interp.New(compileResult.Module, os.Stdin, os.Stdout)
	m.StepLimit = profile.StepLimit

	code, err := m.Run(profile.Entry)
	if err != nil {
		report.ReportStdError("Runtime Error", err)
		os.Exit(1)
	}

	os.Exit(int(code))
}

// -----------------------------------------------------------------------------

// loadProfile determines the source path from the primary argument and loads
// the build profile in its directory.  The log level given on the command
// line, if any, overrides the log level of the profile.
func loadProfile(result *olive.ArgParseResult, loglevel string) (string, *mods.BuildProfile, bool) {
	srcRelPath, _ := result.PrimaryArg()

	srcPath, err := filepath.Abs(srcRelPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return "", nil, false
	}

	if filepath.Ext(srcPath) != common.SrcFileExtension {
		report.PrintErrorMessage("Path Error", fmt.Errorf("source file must have the extension `%s`", common.SrcFileExtension))
		return "", nil, false
	}

	if finfo, err := os.Stat(srcPath); err != nil {
		report.PrintErrorMessage("Path Error", err)
		return "", nil, false
	} else if finfo.IsDir() {
		report.PrintErrorMessage("Path Error", errors.New("source path must be a file"))
		return "", nil, false
	}

	profile, err := mods.LoadProfile(filepath.Dir(srcPath))
	if err != nil {
		report.PrintErrorMessage("Profile Error", err)
		return "", nil, false
	}

	if loglevel != "" {
		profile.LogLevel, _ = report.LogLevelFromName(loglevel)
	}

	return srcPath, profile, true
}
