package report

import (
	"fmt"
	"os"
	"time"
)

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately: unreadable source files, bad build profiles
// and the like.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportCompileError reports an error in the source file at path.
func ReportCompileError(path string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(true, path, cerr)
	}
}

// ReportCompileWarning reports a compilation warning.
func ReportCompileWarning(path string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++

	if rep.logLevel >= LogLevelWarn {
		displayCompileMessage(false, path, &CompileError{Message: fmt.Sprintf(message, args...), Span: span})
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		PrintErrorMessage(tag, err)
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.errorCount > 0
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.

// ReportCompileHeader reports the pre-compilation header.
func ReportCompileHeader(srcPath, mode string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(srcPath, mode)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
// The output path may be empty if nothing was written.
func ReportCompilationFinished(outputPath string) {
	if rep.logLevel >= LogLevelError {
		displayCompilationFinished(rep.errorCount, rep.warnCount, outputPath, time.Since(rep.startTime))
	}
}

// ReportInfo reports an informational message.
func ReportInfo(tag, msg string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		PrintInfoMessage(tag, fmt.Sprintf(msg, args...))
	}
}
