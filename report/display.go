package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG  = pterm.FgLightGreen
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

// All error output goes to the error stream so it never mixes with generated
// output on stdout (the `ir` subcommand dumps there).  Informational messages
// stay on stdout.

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyleBG.Sprint("internal compiler error"), message)
	fmt.Fprint(os.Stderr, "This error was not supposed to happen: please open an issue\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyleBG.Sprint("fatal error"), message)
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, msg string) {
	infoStyleBG.Print(tag)
	infoColorFG.Println(" " + msg)
}

// displayCompileError displays a compilation error as a one-line diagnostic
// followed by the offending source text.
func displayCompileError(path string, cerr *CompileError) {
	if cerr.Span == nil {
		fmt.Fprintf(os.Stderr, "%s: %s %s\n", path, errorColorFG.Sprintf("%s error:", cerr.Kind), cerr.Message)
		return
	}

	fmt.Fprintf(os.Stderr, "%s:%d:%d: ", path, cerr.Span.StartLine+1, cerr.Span.StartCol+1)
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColorFG.Sprintf("%s error:", cerr.Kind), cerr.Message)

	displaySourceLine(path, cerr.Span)
}

// displayStdError displays a standard Go error.
func displayStdError(path string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s %s\n", path, errorColorFG.Sprint("error:"), err)
}

// -----------------------------------------------------------------------------

// displaySourceLine echoes the first source line of the given span with a
// caret marking the start of the erroneous text.
func displaySourceLine(path string, span *TextSpan) {
	file, err := os.Open(path)
	if err != nil {
		// The file was already read once to get here; if it has since become
		// unreadable, just skip the source echo.
		return
	}
	defer file.Close()

	var line string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if ln == span.StartLine {
			line = sc.Text()
			break
		}
	}

	if sc.Err() != nil || line == "" {
		return
	}

	// Tabs are expanded so the caret column stays aligned.
	expanded := strings.ReplaceAll(line, "\t", "    ")
	caretCol := span.StartCol + 3*strings.Count(line[:min(span.StartCol, len(line))], "\t")

	fmt.Fprintf(os.Stderr, "\t%s\n", expanded)
	fmt.Fprint(os.Stderr, "\t", strings.Repeat(" ", caretCol))
	fmt.Fprintln(os.Stderr, errorColorFG.Sprint("^"))
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
