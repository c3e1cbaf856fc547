package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Base    lipgloss.Style
	Title   lipgloss.Style
	Section lipgloss.Style
	Main    lipgloss.Style
	Hint    lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
}

func newStyles(dark bool) styles {
	text := lipgloss.Color("#1e1e2e")
	muted := lipgloss.Color("#6c6f85")
	accent := lipgloss.Color("#1e66f5")
	green := lipgloss.Color("#40a02b")
	red := lipgloss.Color("#d20f39")

	if dark {
		text = lipgloss.Color("#cdd6f4")
		muted = lipgloss.Color("#a6adc8")
		accent = lipgloss.Color("#74c7ec")
		green = lipgloss.Color("#a6e3a1")
		red = lipgloss.Color("#f38ba8")
	}

	return styles{
		Base:    lipgloss.NewStyle().Padding(1, 2),
		Title:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Section: lipgloss.NewStyle().Foreground(accent).Underline(true).MarginTop(1),
		Main:    lipgloss.NewStyle().Foreground(text),
		Hint:    lipgloss.NewStyle().Foreground(muted),
		Good:    lipgloss.NewStyle().Foreground(green),
		Bad:     lipgloss.NewStyle().Foreground(red),
	}
}
