package console

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/timeutil"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case sessionMsg:
		return m.handleSession(msg)

	case credentialsMsg:
		return m.handleCredentials(msg.creds)

	case wellnessMsg:
		m.wellnessView = m.wellness.View()
		return m, nil

	case tasksMsg:
		m.tasksView = m.tasks.View()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleTokenInput(msg)
		}

		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	prev := m.session

	m.session = msg.session
	m.changed = msg.changed

	cmds := []tea.Cmd{m.waitForSession(msg.changed)}

	s := msg.session
	if s.Status == session.StatusFailed && prev.Status != session.StatusFailed {
		detail := "sign-in failed"
		if s.LastError != nil {
			detail = s.LastError.Error()
		}

		cmds = append(cmds, m.sendNotification("wellcon: sign-in failed", detail))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleCredentials(creds panel.Credentials) (tea.Model, tea.Cmd) {
	m.creds = creds

	if !creds.Valid() {
		m.wellnessView = panel.View[*api.WellnessWindow]{Phase: panel.PhaseNeedsCredentials}
		m.tasksView = panel.View[panel.TaskList]{Phase: panel.PhaseNeedsCredentials}
	} else {
		m.wellnessView = panel.View[*api.WellnessWindow]{Phase: panel.PhaseLoading}
		m.tasksView = panel.View[panel.TaskList]{Phase: panel.PhaseLoading}
	}

	return m, tea.Batch(m.reloadWellness(creds), m.reloadTasks(creds))
}

func (m Model) handleTokenInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		token := strings.TrimSpace(m.input.Value())

		m.editing = false
		m.input.Reset()
		m.input.Blur()

		if token != "" {
			m.ctrl.SetToken(token)
			m.status = "token saved"
		}

		return m, nil

	case key.Matches(msg, m.keys.esc):
		m.editing = false
		m.input.Reset()
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.env):
		next := m.opts.Registry.Next(m.session.SelectedBaseURL)
		m.ctrl.SelectEnvironment(m.opts.Registry.BaseURL(next))
		m.status = "switched to " + string(next)

	case key.Matches(msg, m.keys.token):
		m.editing = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.clear):
		m.ctrl.SetToken("")
		m.status = "token cleared"

	case key.Matches(msg, m.keys.logout):
		m.ctrl.Logout()
		m.status = "logged out"

	case key.Matches(msg, m.keys.retry):
		if m.ctrl.Retry() {
			m.status = "signing in again"
			return m, nil
		}

		m.status = "refreshing"

		return m.handleCredentials(m.creds)

	case key.Matches(msg, m.keys.prevDay):
		return m.shiftDate(-1)

	case key.Matches(msg, m.keys.nextDay):
		return m.shiftDate(1)

	case key.Matches(msg, m.keys.today):
		return m.shiftDate(0)
	}

	return m, nil
}

// shiftDate moves the tasks panel by days. Zero returns to today.
func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	date := m.tasks.Date().AddDate(0, 0, days)
	if days == 0 {
		date = timeutil.RoundToStart(time.Now().In(m.opts.Fallback))
	}

	if m.creds.Valid() {
		m.tasksView = panel.View[panel.TaskList]{Phase: panel.PhaseLoading}
	}

	m.status = "tasks for " + timeutil.FormatDate(date)

	return m, m.selectDate(date)
}
