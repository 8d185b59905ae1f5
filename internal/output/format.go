// Package output provides terminal output formatting utilities for the
// relver CLI. It is kept dependency-light to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a terminal. Spinners and
// colors are suppressed when it isn't.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintStep prints a pipeline step line with a magenta arrow.
func PrintStep(out io.Writer, message string) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", magenta("→"), message)
}

// PrintSuccess prints a green checkmark line for a completed step.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintVersionBump prints the previous → next transition with the increment
// level, the release command's headline output.
func PrintVersionBump(out io.Writer, previous, next, increment string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s %s %s\n", dim(previous), dim("→"), cyan(next), dim("("+increment+")"))
}
