package config

import (
	"time"

	"github.com/ayoisaiah/wellcon/internal/logging"
)

var (
	minHTTPTimeout = 1 * time.Second
	maxHTTPTimeout = 5 * time.Minute
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateEnvironment(); err != nil {
		return err
	}

	if c.HTTP.Timeout < minHTTPTimeout || c.HTTP.Timeout > maxHTTPTimeout {
		return errInvalidTimeout.Fmt(minHTTPTimeout, maxHTTPTimeout, c.HTTP.Timeout)
	}

	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			return errInvalidTimezone.Fmt(c.Display.Timezone)
		}
	}

	return c.validateLog()
}

func (c *Config) validateEnvironment() error {
	reg, err := c.Registry()
	if err != nil {
		return errInvalidEnvironmentURLs.Wrap(err)
	}

	if _, ok := reg.Lookup(c.Environment.Default); !ok {
		return errUnknownEnvironment.Fmt(c.Environment.Default)
	}

	return nil
}

func (c *Config) validateLog() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	if c.Log.MaxSizeMB < 1 || c.Log.MaxBackups < 0 {
		return errInvalidLogRotation
	}

	return nil
}

// DefaultBaseURL returns the base URL of the default environment. Call it on
// a validated Config.
func (c *Config) DefaultBaseURL() string {
	reg, err := c.Registry()
	if err != nil {
		return ""
	}

	u, _ := reg.Lookup(c.Environment.Default)

	return u
}
