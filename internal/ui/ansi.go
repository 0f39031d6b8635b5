package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	symCheck = "✔"
	symCross = "✖"
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func OKTo(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(symCheck+" "+msg))
}

func FailTo(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(symCross+" "+msg))
}
