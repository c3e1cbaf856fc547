package app

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	envFlag = &cli.StringFlag{
		Name:    "env",
		Aliases: []string{"e"},
		Usage:   "Default environment when none has been selected: local, dev or prod",
	}

	usernameFlag = &cli.StringFlag{
		Name:    "username",
		Aliases: []string{"u"},
		Usage:   "Username or email used to sign in",
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Timeout for each API request (default: 30s)",
	}

	timezoneFlag = &cli.StringFlag{
		Name:    "timezone",
		Aliases: []string{"tz"},
		Usage:   "Timezone for task times when the check-in has none (e.g. 'Europe/London')",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	ephemeralFlag = &cli.BoolFlag{
		Name:  "ephemeral",
		Usage: "Keep the session in memory only. Nothing is read from or written to the session database",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable desktop notifications",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Date to show tasks for: yyyy-mm-dd or natural language such as 'tomorrow' (default: today)",
	}

	passwordStdinFlag = &cli.BoolFlag{
		Name:  "password-stdin",
		Usage: "Read the password from standard input instead of prompting",
	}

	awaitTimeoutFlag = &cli.DurationFlag{
		Name:  "wait",
		Usage: "How long to wait for a sign-in to finish",
		Value: time.Minute,
	}
)

// globalFlags are accepted by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		envFlag,
		usernameFlag,
		timeoutFlag,
		timezoneFlag,
		logLevelFlag,
		ephemeralFlag,
		disableNotificationFlag,
		noColorFlag,
		awaitTimeoutFlag,
	}
}
