package api

import "github.com/ayoisaiah/wellcon/internal/apperr"

var (
	// ErrNotFound reports a 404 from the backend.
	ErrNotFound = &apperr.Error{
		Message: "not found",
	}

	// ErrRequest reports any other non-2xx response.
	ErrRequest = &apperr.Error{
		Message: "%s %s failed with status %d: %s",
	}

	// ErrNetwork reports a request that could not complete.
	ErrNetwork = &apperr.Error{
		Message: "request failed",
	}

	errDecode = &apperr.Error{
		Message: "unable to decode %s response",
	}

	errNoTimezone = &apperr.Error{
		Message: "check-in has no timezone",
	}

	errEmptyBrainDump = &apperr.Error{
		Message: "brain dump text cannot be empty",
	}

	errScoreOutOfRange = &apperr.Error{
		Message: "%s score must be between 0 and 10, got %d",
	}

	errEmptyEntryID = &apperr.Error{
		Message: "entry id is required to add a suggestion to the calendar",
	}
)
