package panel

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/apperr"
)

var (
	errNoSuggestions = &apperr.Error{
		Message: "generate suggestions before adding one to the calendar",
	}

	errSuggestionIndex = &apperr.Error{
		Message: "suggestion %d does not exist",
	}
)

// Suggestions generates activity suggestions from a brain dump and adds a
// chosen one to the calendar.
type Suggestions struct {
	loader[*api.SuggestionResponse]
	dial   Dialer
	now    func() time.Time
	logger *slog.Logger
}

// NewSuggestions returns a Suggestions panel.
func NewSuggestions(dial Dialer, logger *slog.Logger) *Suggestions {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Suggestions{
		dial:   dial,
		now:    time.Now,
		logger: logger.With("panel", "suggestions"),
	}
	s.view = View[*api.SuggestionResponse]{Phase: PhaseNeedsCredentials}

	return s
}

// Reload discards suggestions generated with other credentials.
func (s *Suggestions) Reload(
	_ context.Context,
	creds Credentials,
) View[*api.SuggestionResponse] {
	if !creds.Valid() {
		return s.reset(PhaseNeedsCredentials)
	}

	return s.reset(PhaseIdle)
}

// Generate submits req.
func (s *Suggestions) Generate(
	ctx context.Context,
	creds Credentials,
	req api.BrainDumpRequest,
) View[*api.SuggestionResponse] {
	return s.run(ctx, creds, func(ctx context.Context) (*api.SuggestionResponse, error) {
		return s.dial(creds).Suggestions(ctx, req)
	})
}

// Add schedules the suggestion at index from the last generated response.
func (s *Suggestions) Add(
	ctx context.Context,
	creds Credentials,
	index int,
) (*api.Task, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	v := s.View()
	if v.Phase != PhaseLoaded || v.Data == nil {
		return nil, errNoSuggestions
	}

	if index < 0 || index >= len(v.Data.SuggestedActivities) {
		return nil, errSuggestionIndex.Fmt(index + 1)
	}

	req := api.NewAddToCalendarRequest(
		v.Data.EntryID,
		v.Data.SuggestedActivities[index],
		s.now(),
	)

	task, err := s.dial(creds).AddToCalendar(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "suggestion added to calendar", "task_id", task.ID)

	return task, nil
}
