// Package report prints one-line outcomes of commands.
package report

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/wellcon/internal/osutil"
)

func Info(w io.Writer, format string, args ...any) {
	pterm.Info.WithWriter(w).Printfln(format, args...)
}

func Success(w io.Writer, format string, args ...any) {
	pterm.Success.WithWriter(w).Printfln(format, args...)
}

func Warn(w io.Writer, format string, args ...any) {
	pterm.Warning.WithWriter(w).Printfln(format, args...)
}

// Quit prints err and exits with a non-zero status.
func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
