package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/wellcon/internal/timeutil"
	"github.com/ayoisaiah/wellcon/internal/ui"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/session"
)

func (m Model) sessionView() string {
	var s strings.Builder

	s.WriteString(m.style.Title.Render("wellcon"))
	s.WriteString(" ")
	s.WriteString(m.style.Main.Render(ui.EnvironmentLabel(m.opts.Registry, m.session.SelectedBaseURL)))
	s.WriteString(" ")
	s.WriteString(m.style.Hint.Render(m.session.SelectedBaseURL))
	s.WriteString("\n")

	switch m.session.Status {
	case session.StatusAuthenticating:
		s.WriteString(m.spinner.View() + " " + m.style.Hint.Render("signing in..."))
	case session.StatusReady:
		s.WriteString(m.style.Good.Render("● signed in"))
	case session.StatusFailed:
		msg := "sign-in failed"
		if m.session.LastError != nil {
			msg += ": " + m.session.LastError.Error()
		}

		s.WriteString(m.style.Bad.Render("● " + msg))
		s.WriteString(m.style.Hint.Render("  (r to retry, t to paste a token)"))
	case session.StatusSignedOut:
		s.WriteString(m.style.Hint.Render("● signed out (r to sign in)"))
	default:
		s.WriteString(m.style.Hint.Render("● no environment selected (e to choose)"))
	}

	return s.String()
}

// phaseView renders the non-loaded phases of a panel. It reports false when
// the panel has data to show.
func phaseView[T any](m Model, v panel.View[T]) (string, bool) {
	switch v.Phase {
	case panel.PhaseNeedsCredentials:
		return m.style.Hint.Render("waiting for sign-in"), true
	case panel.PhaseLoading:
		return m.spinner.View() + " " + m.style.Hint.Render("loading..."), true
	case panel.PhaseFailed:
		msg := "failed"
		if v.Err != nil {
			msg += ": " + v.Err.Error()
		}

		return m.style.Bad.Render(msg), true
	case panel.PhaseLoaded:
		return "", false
	}

	return "", true
}

func (m Model) wellnessPanel() string {
	body, done := phaseView(m, m.wellnessView)
	if !done {
		body = renderRows(m, ui.WellnessRows(
			m.wellnessView.Data,
			m.opts.Fallback,
			m.opts.TwentyFourHour,
		))
	}

	return m.style.Section.Render("Wellness check-in") + "\n" + body
}

func (m Model) tasksPanel() string {
	title := "Tasks for " + timeutil.FormatDate(m.tasks.Date())

	body, done := phaseView(m, m.tasksView)
	if !done {
		list := m.tasksView.Data

		zone := list.Location.String()
		if list.TimezoneFallback {
			zone += ", default"
		}

		title += " (" + zone + ")"

		if len(list.Tasks) == 0 {
			body = m.style.Hint.Render("nothing scheduled")
		} else {
			body = renderRows(m, ui.TaskRows(list, m.opts.TwentyFourHour))
		}
	}

	return m.style.Section.Render(title) + "\n" + body
}

// renderRows aligns rows into columns. The first row is a header.
func renderRows(m Model, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var s strings.Builder

	for r, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}

		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if r == 0 && len(rows) > 1 {
			line = m.style.Hint.Render(line)
		}

		s.WriteString(line)

		if r < len(rows)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.sessionView(),
		m.wellnessPanel(),
		m.tasksPanel(),
	}

	if m.editing {
		sections = append(sections, "\n"+m.input.View())
	}

	if m.status != "" {
		sections = append(sections, "\n"+m.style.Hint.Render(m.status))
	}

	sections = append(sections, "\n"+m.help.View(m.keys))

	return m.style.Base.Render(strings.Join(sections, "\n"))
}
