package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/wellcon/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Environment   string
	Username      string
	Timezone      string
	LogLevel      string
	Date          string
	Timeout       time.Duration
	Ephemeral     bool
	DisableNotify bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags take precedence over the config file.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Environment:   ctx.String("env"),
			Username:      ctx.String("username"),
			Timezone:      ctx.String("timezone"),
			LogLevel:      ctx.String("log-level"),
			Date:          ctx.String("date"),
			Timeout:       ctx.Duration("timeout"),
			Ephemeral:     ctx.Bool("ephemeral"),
			DisableNotify: ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Environment != "" {
		c.Environment.Default = strings.ToLower(strings.TrimSpace(opts.Environment))
	}

	if opts.Username != "" {
		c.Auth.Username = opts.Username
	}

	if opts.Timezone != "" {
		c.Display.Timezone = opts.Timezone
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.Timeout > 0 {
		c.HTTP.Timeout = opts.Timeout
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	c.CLI.Ephemeral = opts.Ephemeral

	if opts.Date != "" {
		loc := now.Location()
		if c.Display.Timezone != "" {
			if l, err := time.LoadLocation(c.Display.Timezone); err == nil {
				loc = l
			}
		}

		date, err := timeutil.ParseDate(opts.Date, now.In(loc))
		if err != nil {
			return errInvalidDate.Wrap(err)
		}

		c.CLI.Date = date
	}

	return nil
}
