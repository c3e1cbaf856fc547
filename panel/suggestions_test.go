package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ayoisaiah/wellcon/internal/api"
)

func suggestionBackend(added *[]api.AddToCalendarRequest) *fakeBackend {
	return &fakeBackend{
		suggestions: func(_ context.Context, req api.BrainDumpRequest) (*api.SuggestionResponse, error) {
			return &api.SuggestionResponse{
				EntryID:   "entry-1",
				KeyThemes: []string{"sleep"},
				SuggestedActivities: []api.Suggestion{
					{Title: "Wind down", DurationMinutes: 20, Time: "21:30"},
					{Title: "Walk", Date: api.NewDate(day.AddDate(0, 0, 2))},
				},
			}, nil
		},
		addToCalendar: func(_ context.Context, req api.AddToCalendarRequest) (*api.Task, error) {
			*added = append(*added, req)
			return &api.Task{ID: "task-1", Title: req.Title, Date: req.Date}, nil
		},
	}
}

func TestSuggestionsAddBeforeGenerate(t *testing.T) {
	s := NewSuggestions(unexpectedDial(t), nil)

	if _, err := s.Add(context.Background(), devCreds, 0); !errors.Is(err, errNoSuggestions) {
		t.Fatalf("Add() error = %v, want %v", err, errNoSuggestions)
	}

	if _, err := s.Add(context.Background(), Credentials{}, 0); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Add() error = %v, want %v", err, ErrMissingCredentials)
	}
}

func TestSuggestionsGenerateAndAdd(t *testing.T) {
	var added []api.AddToCalendarRequest

	s := NewSuggestions(dialer(suggestionBackend(&added), nil), nil)
	s.now = func() time.Time { return day }

	v := s.Generate(context.Background(), devCreds, api.BrainDumpRequest{Text: "tired"})
	if v.Phase != PhaseLoaded || len(v.Data.SuggestedActivities) != 2 {
		t.Fatalf("unexpected view %+v", v)
	}

	if _, err := s.Add(context.Background(), devCreds, 2); !errors.Is(err, errSuggestionIndex) {
		t.Fatalf("Add() error = %v, want %v", err, errSuggestionIndex)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Add(context.Background(), devCreds, i); err != nil {
			t.Fatalf("Add(%d) error = %v", i, err)
		}
	}

	want := []api.AddToCalendarRequest{
		{
			EntryID:         "entry-1",
			Title:           "Wind down",
			Date:            api.NewDate(day),
			Time:            "21:30",
			DurationMinutes: 20,
		},
		{
			EntryID: "entry-1",
			Title:   "Walk",
			Date:    api.NewDate(day.AddDate(0, 0, 2)),
		},
	}

	if diff := cmp.Diff(want, added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestionsReloadDiscardsResponse(t *testing.T) {
	var added []api.AddToCalendarRequest

	s := NewSuggestions(dialer(suggestionBackend(&added), nil), nil)
	s.Generate(context.Background(), devCreds, api.BrainDumpRequest{Text: "tired"})

	if v := s.Reload(context.Background(), prodCreds); v.Phase != PhaseIdle || v.Data != nil {
		t.Fatalf("unexpected view %+v", v)
	}

	if _, err := s.Add(context.Background(), prodCreds, 0); !errors.Is(err, errNoSuggestions) {
		t.Fatalf("Add() error = %v, want %v", err, errNoSuggestions)
	}

	if v := s.Reload(context.Background(), Credentials{}); v.Phase != PhaseNeedsCredentials {
		t.Fatalf("phase = %s, want %s", v.Phase, PhaseNeedsCredentials)
	}
}
