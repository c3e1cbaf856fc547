package config

import (
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/wellcon/internal/auth"
	"github.com/ayoisaiah/wellcon/internal/env"
)

type (
	// Config holds all configuration settings
	Config struct {
		Environment   EnvironmentConfig  `mapstructure:"environment"`
		Auth          AuthConfig         `mapstructure:"auth"`
		HTTP          HTTPConfig         `mapstructure:"http"`
		Display       DisplayConfig      `mapstructure:"display"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// EnvironmentConfig selects the backend environment.
	EnvironmentConfig struct {
		// Default is used until the operator selects another environment.
		Default string `mapstructure:"default"`
		// URLs overrides the base URL of known environments.
		URLs map[string]string `mapstructure:"urls"`
	}

	// AuthConfig holds the sign-in credentials.
	AuthConfig struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	}

	HTTPConfig struct {
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		// Timezone is used to show task times when the check-in does not
		// provide one. Empty means the system zone.
		Timezone       string `mapstructure:"timezone"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
		DarkTheme      bool   `mapstructure:"dark_theme"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// LogConfig controls the rotating log file.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds settings that only come from command-line flags
	CLIConfig struct {
		Date      time.Time
		Ephemeral bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config, applies options in order and validates the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Registry builds the environment registry with the configured overrides.
func (c *Config) Registry() (*env.Registry, error) {
	overrides := make(map[string]string, len(c.Environment.URLs))

	for name, u := range c.Environment.URLs {
		if u != "" {
			overrides[name] = u
		}
	}

	return env.NewRegistry(overrides)
}

// Location returns the fallback display timezone.
func (c *Config) Location() *time.Location {
	if c.Display.Timezone == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// Credentials returns the configured sign-in credentials.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		UserNameOrEmail: c.Auth.Username,
		Password:        c.Auth.Password,
	}
}

// Today returns the date selected with --date, or today.
func (c *Config) Today() time.Time {
	if !c.CLI.Date.IsZero() {
		return c.CLI.Date
	}

	now := time.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
