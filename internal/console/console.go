// Package console is the interactive terminal UI: session status, the
// wellness check-in and the day's tasks, kept in sync with the session
// controller.
package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/env"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/session"
)

// Controller is the part of the session controller the console drives.
type Controller interface {
	panel.Observer
	SelectEnvironment(baseURL string)
	SetToken(token string)
	Logout()
	Retry() bool
}

// Options configures the console.
type Options struct {
	Registry       *env.Registry
	Fallback       *time.Location
	TwentyFourHour bool
	DarkTheme      bool
	Notify         bool
	Logger         *slog.Logger
}

type (
	sessionMsg struct {
		session session.Session
		changed <-chan struct{}
	}

	credentialsMsg struct {
		creds panel.Credentials
	}

	wellnessMsg struct{}

	tasksMsg struct{}
)

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	ctrl Controller
	opts Options

	wellness *panel.Wellness
	tasks    *panel.Tasks

	session session.Session
	changed <-chan struct{}
	creds   panel.Credentials

	wellnessView panel.View[*api.WellnessWindow]
	tasksView    panel.View[panel.TaskList]

	keys     keymap
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model
	style    styles
	editing  bool
	status   string
	notify   func(title, msg string) error
	logger   *slog.Logger
	width    int
	quitting bool
}

// New returns a console bound to ctrl and the panels.
func New(
	ctrl Controller,
	wellness *panel.Wellness,
	tasks *panel.Tasks,
	opts Options,
) Model {
	if opts.Registry == nil {
		opts.Registry = env.Default()
	}

	if opts.Fallback == nil {
		opts.Fallback = time.Local
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s, changed := ctrl.Observe()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "paste a bearer token"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'

	return Model{
		ctx:          context.Background(),
		ctrl:         ctrl,
		opts:         opts,
		wellness:     wellness,
		tasks:        tasks,
		session:      s,
		changed:      changed,
		wellnessView: wellness.View(),
		tasksView:    tasks.View(),
		keys:         defaultKeymap,
		help:         help.New(),
		spinner:      sp,
		input:        in,
		style:        newStyles(opts.DarkTheme),
		notify: func(title, msg string) error {
			return beeep.Notify(title, msg, "")
		},
		logger: opts.Logger.With("component", "console"),
	}
}

// Run starts the console and blocks until the operator quits or ctx is
// done. Panel reloads follow the session credentials through panel.Sync.
func Run(ctx context.Context, m Model) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.ctx = ctx

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	go func() {
		_ = panel.Sync(ctx, m.ctrl, func(_ context.Context, creds panel.Credentials) {
			p.Send(credentialsMsg{creds: creds})
		}, m.logger)
	}()

	_, err := p.Run()

	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForSession(m.changed))
}

// waitForSession resolves on the next session transition.
func (m Model) waitForSession(changed <-chan struct{}) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl

	return func() tea.Msg {
		select {
		case <-changed:
		case <-ctx.Done():
			return nil
		}

		s, next := ctrl.Observe()

		return sessionMsg{session: s, changed: next}
	}
}

func (m Model) reloadWellness(creds panel.Credentials) tea.Cmd {
	ctx, w := m.ctx, m.wellness

	return func() tea.Msg {
		w.Reload(ctx, creds)
		return wellnessMsg{}
	}
}

func (m Model) reloadTasks(creds panel.Credentials) tea.Cmd {
	ctx, t := m.ctx, m.tasks

	return func() tea.Msg {
		t.Reload(ctx, creds)
		return tasksMsg{}
	}
}

func (m Model) selectDate(date time.Time) tea.Cmd {
	ctx, t := m.ctx, m.tasks

	return func() tea.Msg {
		t.SetDate(ctx, date)
		return tasksMsg{}
	}
}

func (m Model) sendNotification(title, msg string) tea.Cmd {
	if !m.opts.Notify {
		return nil
	}

	notify, logger := m.notify, m.logger

	return func() tea.Msg {
		if err := notify(title, msg); err != nil {
			logger.Warn("desktop notification failed", "error", err)
		}

		return nil
	}
}
