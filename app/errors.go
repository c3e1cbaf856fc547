package app

import "github.com/ayoisaiah/wellcon/internal/apperr"

var (
	errNotSignedIn = &apperr.Error{
		Message: "not signed in to %s (%s): run 'wellcon login' or 'wellcon token set'",
	}

	errUnknownEnvironment = &apperr.Error{
		Message: "unknown environment %q (expected one of local, dev, prod)",
	}

	errMissingArgument = &apperr.Error{
		Message: "missing argument: %s",
	}

	errEditor = &apperr.Error{
		Message: "unable to parse editor command",
	}

	errSetup = &apperr.Error{
		Message: "startup failed",
	}
)
