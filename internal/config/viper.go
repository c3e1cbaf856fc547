package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/wellcon/internal/env"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyDefaultEnvironment   = "environment.default"
	keyEnvironmentURLs      = "environment.urls"
	keyUsername             = "auth.username"
	keyPassword             = "auth.password"
	keyHTTPTimeout          = "http.timeout"
	keyTimezone             = "display.timezone"
	keyTwentyFourHour       = "display.24hr_clock"
	keyDarkTheme            = "display.dark_theme"
	keyNotificationsEnabled = "notifications.enabled"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
)

const envPrefix = "WELLCON"

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing file is created with the defaults. Environment variables such
// as WELLCON_AUTH_PASSWORD override file values but are never written back.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return errReadConfig.Wrap(err)
			}

			if err := v.WriteConfig(); err != nil {
				return errWriteConfig.Wrap(err)
			}
		}

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	reg := env.Default()

	v.SetDefault(keyDefaultEnvironment, string(env.Dev))

	for _, name := range env.Names {
		v.SetDefault(keyEnvironmentURLs+"."+string(name), reg.BaseURL(name))
	}

	v.SetDefault(keyUsername, "")
	v.SetDefault(keyPassword, "")
	v.SetDefault(keyHTTPTimeout, "30s")
	v.SetDefault(keyTimezone, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Environment.Default != "" {
		v.SetDefault(keyDefaultEnvironment, c.Environment.Default)
	}

	if c.Auth.Username != "" {
		v.SetDefault(keyUsername, c.Auth.Username)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.Environment.Default = strings.ToLower(strings.TrimSpace(c.Environment.Default))

	return nil
}
