package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/env"
	"github.com/ayoisaiah/wellcon/internal/timeutil"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/session"
)

// EnvironmentLabel names the environment owning baseURL, falling back to the
// URL itself.
func EnvironmentLabel(reg *env.Registry, baseURL string) string {
	if baseURL == "" {
		return "none"
	}

	if name, ok := reg.NameOf(baseURL); ok {
		return string(name)
	}

	return baseURL
}

// StatusLabel colours a session status.
func StatusLabel(s session.Status) string {
	switch s {
	case session.StatusReady:
		return Green(string(s))
	case session.StatusAuthenticating:
		return Cyan(string(s))
	case session.StatusFailed:
		return Red(string(s))
	case session.StatusSignedOut:
		return Magenta("signed out")
	default:
		return string(s)
	}
}

// MaskToken shows only the tail of a bearer token.
func MaskToken(token string) string {
	if token == "" {
		return "-"
	}

	const visible = 6

	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}

	return "..." + token[len(token)-visible:]
}

// SessionRows describes s as a two column table with a header.
func SessionRows(reg *env.Registry, s session.Session) [][]string {
	rows := [][]string{
		{"Field", "Value"},
		{"Environment", EnvironmentLabel(reg, s.SelectedBaseURL)},
		{"Base URL", s.SelectedBaseURL},
		{"Status", StatusLabel(s.Status)},
		{"Token", MaskToken(s.Token)},
	}

	if s.LastError != nil {
		rows = append(rows, []string{"Last error", Red(s.LastError.Error())})
	}

	return rows
}

// EnvironmentRows lists every environment, marking the selected one.
func EnvironmentRows(reg *env.Registry, selected string) [][]string {
	rows := [][]string{{"", "Name", "Base URL"}}

	for _, name := range env.Names {
		u := reg.BaseURL(name)

		marker := ""
		if u == selected {
			marker = Green("*")
		}

		rows = append(rows, []string{marker, string(name), u})
	}

	return rows
}

func clockRange(start, end *time.Time, loc *time.Location, twentyFourHour bool) string {
	if start == nil || end == nil {
		return "not set"
	}

	return fmt.Sprintf(
		"%s - %s",
		timeutil.FormatClock(start.In(loc), twentyFourHour),
		timeutil.FormatClock(end.In(loc), twentyFourHour),
	)
}

// WellnessRows describes a check-in. Windows are shown in the check-in
// timezone when it resolves, otherwise in fallback.
func WellnessRows(
	win *api.WellnessWindow,
	fallback *time.Location,
	twentyFourHour bool,
) [][]string {
	if win == nil {
		return [][]string{{"No check-in stored yet"}}
	}

	loc, err := win.Location()
	if err != nil {
		loc = fallback
	}

	reminders := "off"
	if win.ReminderEnabled {
		reminders = "on"
	}

	tz := win.TimezoneID
	if tz == "" {
		tz = fallback.String() + " (default)"
	}

	return [][]string{
		{"Window", "Time"},
		{"Weekdays", clockRange(win.WeekdayStartUTC, win.WeekdayEndUTC, loc, twentyFourHour)},
		{"Weekends", clockRange(win.WeekendStartUTC, win.WeekendEndUTC, loc, twentyFourHour)},
		{"Reminders", reminders},
		{"Timezone", tz},
	}
}

// TaskRows lists tasks with their start time in list.Location.
func TaskRows(list panel.TaskList, twentyFourHour bool) [][]string {
	rows := [][]string{{"Time", "Task", "Duration", "Status", ""}}

	for _, t := range list.Tasks {
		start := "all day"
		if s, ok := t.Start(); ok {
			start = timeutil.FormatClock(s.In(list.Location), twentyFourHour)
		}

		origin := ""
		if t.IsAISuggested {
			origin = Cyan("suggested")
		}

		rows = append(rows, []string{
			start,
			Highlight(t.Title),
			timeutil.FormatMinutes(t.DurationMinutes),
			t.Status,
			origin,
		})
	}

	return rows
}

// SuggestionRows lists suggested activities numbered from 1.
func SuggestionRows(res *api.SuggestionResponse) [][]string {
	rows := [][]string{{"#", "Activity", "When", "Duration", "Category"}}

	if res == nil {
		return rows
	}

	for i, s := range res.SuggestedActivities {
		when := s.Time
		if !s.Date.IsZero() {
			when = strings.TrimSpace(s.Date.String() + " " + s.Time)
		}

		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			Highlight(s.Title),
			when,
			timeutil.FormatMinutes(s.DurationMinutes),
			s.Category,
		})
	}

	return rows
}
