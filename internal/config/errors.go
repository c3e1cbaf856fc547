package config

import "github.com/ayoisaiah/wellcon/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errUnknownEnvironment = &apperr.Error{
		Message: "unknown environment %q (expected one of local, dev, prod)",
	}

	errInvalidEnvironmentURLs = &apperr.Error{
		Message: "invalid environment urls",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "http timeout must be between %v and %v, got %v",
	}

	errInvalidTimezone = &apperr.Error{
		Message: "unknown display timezone %q",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level %q (expected debug, info, warn or error)",
	}

	errInvalidLogRotation = &apperr.Error{
		Message: "log max_size_mb must be at least 1 and max_backups must not be negative",
	}

	errInvalidDate = &apperr.Error{
		Message: "invalid date",
	}
)
