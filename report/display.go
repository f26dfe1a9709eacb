package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/TrainFun/cxc/common"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Compiler Error ")
	ErrorColorFG.Println(message)
	InfoColorFG.Println("This error was not supposed to happen: please open an issue.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(message)
}

// displayCompileMessage displays a compilation error or warning.
func displayCompileMessage(isError bool, path string, cerr *CompileError) {
	displayBanner(isError, cerr.Kind, path)

	if cerr.Span == nil {
		fmt.Println(cerr.Message)
		return
	}

	fmt.Printf("line %d: %s\n", cerr.Line(), cerr.Message)
	displaySourceText(path, cerr.Span)
}

// displayBanner displays the banner on top of all compilation messages.
func displayBanner(isError bool, kind ErrorKind, path string) {
	fmt.Print("\n-- ")

	var label string
	if isError {
		label = kind.String() + " Error"
		ErrorStyleBG.Print(label)
	} else {
		label = "Warning"
		WarnStyleBG.Print(label)
	}

	fmt.Print(" ")

	fileName := filepath.Base(path)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(label) - 1
	if dashCount < 2 {
		dashCount = 2
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displaySourceText displays the source line an error occurs on with the
// erroneous text underlined.  Only the first line of a multi-line span is
// shown.  Nothing is displayed if the file cannot be read.
func displaySourceText(path string, span *TextSpan) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	var line string
	found := false
	sc := bufio.NewScanner(f)
	for ln := 0; sc.Scan(); ln++ {
		if ln == span.StartLine {
			line = strings.ReplaceAll(sc.Text(), "\t", "    ")
			found = true
			break
		}
	}

	if !found {
		return
	}

	lineNumStr := strconv.Itoa(span.StartLine + 1)
	fmt.Println()
	InfoColorFG.Print(lineNumStr + " ")
	fmt.Println("|  " + line)

	endCol := span.EndCol
	if span.EndLine != span.StartLine || endCol > len(line) {
		endCol = len(line)
	}

	carretCount := endCol - span.StartCol
	if carretCount < 1 {
		carretCount = 1
	}

	fmt.Print(strings.Repeat(" ", len(lineNumStr)+1), "|  ", strings.Repeat(" ", span.StartCol))
	ErrorColorFG.Println(strings.Repeat("^", carretCount))
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func displayCompileHeader(srcPath, mode string) {
	fmt.Print("cxc ")
	InfoColorFG.Print("v" + common.CXVersion)
	fmt.Print(" -- ")
	InfoColorFG.Print(filepath.Base(srcPath))
	fmt.Print(" -- emit: ")
	InfoColorFG.Println(mode)
}

// displayCompilationFinished displays the closing summary of compilation.
func displayCompilationFinished(errorCount, warnCount int, outputPath string, elapsed time.Duration) {
	fmt.Println()

	if errorCount == 0 {
		SuccessStyleBG.Print("Done")
		fmt.Printf(" compiled in %.3fs", elapsed.Seconds())

		if outputPath != "" {
			fmt.Print(" -> ")
			InfoColorFG.Print(outputPath)
		}
	} else {
		ErrorStyleBG.Print("Failed")
		fmt.Print(" (")
		ErrorColorFG.Print(errorCount)
		if errorCount == 1 {
			fmt.Print(" error")
		} else {
			fmt.Print(" errors")
		}
		fmt.Print(")")
	}

	switch warnCount {
	case 0:
		fmt.Println()
	case 1:
		fmt.Print(" (")
		WarnColorFG.Print(warnCount)
		fmt.Println(" warning)")
	default:
		fmt.Print(" (")
		WarnColorFG.Print(warnCount)
		fmt.Println(" warnings)")
	}
}
