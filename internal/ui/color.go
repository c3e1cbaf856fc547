package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour.
var DarkTheme bool

type shade struct {
	onLight pterm.Color
	onDark  pterm.Color
}

var (
	green     = shade{pterm.FgGreen, pterm.FgLightGreen}
	cyan      = shade{pterm.FgCyan, pterm.FgLightCyan}
	magenta   = shade{pterm.FgMagenta, pterm.FgLightMagenta}
	red       = shade{pterm.FgRed, pterm.FgLightRed}
	highlight = shade{pterm.FgBlack, pterm.FgLightWhite}
)

func paint(s shade, a any) string {
	if DarkTheme {
		return s.onDark.Sprint(a)
	}

	return s.onLight.Sprint(a)
}

// Green marks healthy states such as a ready session.
func Green(a any) string {
	return paint(green, a)
}

func Cyan(a any) string {
	return paint(cyan, a)
}

func Magenta(a any) string {
	return paint(magenta, a)
}

// Red marks failures.
func Red(a any) string {
	return paint(red, a)
}

// Highlight emphasises titles in tables.
func Highlight(a any) string {
	return paint(highlight, a)
}
