package cli

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// toastSuccess prints a transient success line, the terminal stand-in for a
// toast notification.
func (a *App) toastSuccess(format string, args ...any) {
	successColor.Fprintln(a.out, fmt.Sprintf(format, args...))
}

// toastError prints a transient failure line. Messages stay generic; the
// underlying error goes to the structured log, not the user.
func (a *App) toastError(format string, args ...any) {
	errorColor.Fprintln(a.out, fmt.Sprintf(format, args...))
}
