// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

// DateLayout is the calendar date format exchanged with the backend.
const DateLayout = time.DateOnly

// ParseDate resolves s to the start of a calendar day in now's location. s
// is either a yyyy-MM-dd date or a natural language expression such as
// "tomorrow" or "next friday", interpreted relative to now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoundToStart(now), nil
	}

	if t, err := time.ParseInLocation(DateLayout, s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", s, err)
	}

	return RoundToStart(dt.Time.In(now.Location())), nil
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats the time of day of t.
func FormatClock(t time.Time, twentyFourHour bool) string {
	if twentyFourHour {
		return t.Format("15:04")
	}

	return t.Format("3:04 PM")
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatMinutes renders a duration in minutes as e.g. "1h 30m".
func FormatMinutes(val int) string {
	if val <= 0 {
		return ""
	}

	hrs, mins := MinsToHoursAndMins(val)

	switch {
	case hrs == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hrs)
	default:
		return fmt.Sprintf("%dh %dm", hrs, mins)
	}
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}
