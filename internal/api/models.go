package api

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
)

// Date is a calendar date encoded as yyyy-MM-dd.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// UnmarshalJSON accepts yyyy-MM-dd as well as full timestamps.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse date %q: %w", s, err)
	}

	d.Time = t

	return nil
}

// MarshalJSON implements the json.Marshaler interface for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

// WellnessWindow is the stored wellness check-in.
type WellnessWindow struct {
	WeekdayStartUTC *time.Time `json:"weekdayStartUtc,omitempty"`
	WeekdayEndUTC   *time.Time `json:"weekdayEndUtc,omitempty"`
	WeekendStartUTC *time.Time `json:"weekendStartUtc,omitempty"`
	WeekendEndUTC   *time.Time `json:"weekendEndUtc,omitempty"`
	ReminderEnabled bool       `json:"reminderEnabled"`
	TimezoneID      string     `json:"timezoneId,omitempty"`
}

// Location resolves the check-in timezone.
func (w *WellnessWindow) Location() (*time.Location, error) {
	if w == nil || strings.TrimSpace(w.TimezoneID) == "" {
		return nil, errNoTimezone
	}

	return time.LoadLocation(strings.TrimSpace(w.TimezoneID))
}

// Task is a scheduled task as returned by the tasks endpoint.
type Task struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Date            Date    `json:"date"`
	Time            string  `json:"time,omitempty"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Repeat          string  `json:"repeat,omitempty"`
	Status          string  `json:"status,omitempty"`
	IsAISuggested   bool    `json:"isAiSuggested"`
	EntryID         *string `json:"entryId,omitempty"`
}

// Start combines Date and Time into a UTC instant. Tasks without a time of
// day report false.
func (t Task) Start() (time.Time, bool) {
	if t.Date.IsZero() || strings.TrimSpace(t.Time) == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		tod, err := time.Parse(layout, strings.TrimSpace(t.Time))
		if err != nil {
			continue
		}

		return time.Date(
			t.Date.Year(),
			t.Date.Month(),
			t.Date.Day(),
			tod.Hour(),
			tod.Minute(),
			tod.Second(),
			0,
			time.UTC,
		), true
	}

	return time.Time{}, false
}

// BrainDumpRequest is the free-text input submitted for suggestions.
// Scores are optional and range from 0 to 10.
type BrainDumpRequest struct {
	Text    string `json:"text"`
	Mood    *int   `json:"mood,omitempty"`
	Stress  *int   `json:"stress,omitempty"`
	Purpose *int   `json:"purpose,omitempty"`
}

// Validate checks the text and score bounds.
func (r BrainDumpRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errEmptyBrainDump
	}

	scores := []struct {
		name  string
		value *int
	}{
		{"mood", r.Mood},
		{"stress", r.Stress},
		{"purpose", r.Purpose},
	}

	for _, s := range scores {
		if s.value != nil && (*s.value < 0 || *s.value > 10) {
			return errScoreOutOfRange.Fmt(s.name, *s.value)
		}
	}

	return nil
}

// Suggestion is an AI suggested activity.
type Suggestion struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Date            Date   `json:"date"`
	Time            string `json:"time,omitempty"`
	Repeat          string `json:"repeat,omitempty"`
	Category        string `json:"category,omitempty"`
}

// SuggestionResponse is returned by the suggestions endpoint.
type SuggestionResponse struct {
	UserProfile         map[string]any `json:"userProfile,omitempty"`
	KeyThemes           []string       `json:"keyThemes"`
	SuggestedActivities []Suggestion   `json:"suggestedActivities"`
	EntryID             string         `json:"entryId"`
}

// AddToCalendarRequest schedules one suggestion from a brain dump entry.
type AddToCalendarRequest struct {
	EntryID         string `json:"entryId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Date            Date   `json:"date"`
	Time            string `json:"time,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Repeat          string `json:"repeat,omitempty"`
}

// NewAddToCalendarRequest copies the fields of s for entryID. A suggestion
// without a date is scheduled on fallback.
func NewAddToCalendarRequest(entryID string, s Suggestion, fallback time.Time) AddToCalendarRequest {
	date := s.Date
	if date.IsZero() {
		date = NewDate(fallback)
	}

	return AddToCalendarRequest{
		EntryID:         entryID,
		Title:           s.Title,
		Description:     s.Description,
		Date:            date,
		Time:            s.Time,
		DurationMinutes: s.DurationMinutes,
		Repeat:          s.Repeat,
	}
}

// AddToCalendarResponse carries the created task.
type AddToCalendarResponse struct {
	Task Task `json:"task"`
}
