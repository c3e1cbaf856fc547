package console

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	env     key.Binding
	token   key.Binding
	clear   key.Binding
	logout  key.Binding
	retry   key.Binding
	prevDay key.Binding
	nextDay key.Binding
	today   key.Binding
	enter   key.Binding
	esc     key.Binding
	help    key.Binding
	quit    key.Binding
}

var defaultKeymap = keymap{
	env: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "next environment"),
	),
	token: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "paste token"),
	),
	clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear token"),
	),
	logout: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "log out"),
	),
	retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry/refresh"),
	),
	prevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	nextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	today: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "today"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.env, k.retry, k.prevDay, k.nextDay, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.env, k.token, k.clear, k.logout, k.retry},
		{k.prevDay, k.nextDay, k.today},
		{k.help, k.quit},
	}
}
