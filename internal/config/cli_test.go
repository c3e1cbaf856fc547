package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestWithCLIConfig(t *testing.T) {
	f := flag.NewFlagSet("wellcon", flag.ContinueOnError)

	for _, name := range []string{"env", "username", "timezone", "log-level", "date"} {
		_ = f.String(name, "", "")
	}

	_ = f.Duration("timeout", 0, "")
	_ = f.Bool("ephemeral", false, "")
	_ = f.Bool("disable-notification", false, "")

	require.NoError(t, f.Parse([]string{
		"-env", "PROD",
		"-username", "ops",
		"-timeout", "10s",
		"-date", "2025-06-01",
		"-ephemeral",
		"-disable-notification",
	}))

	ctx := cli.NewContext(&cli.App{}, f, nil)

	c := &Config{Notifications: NotificationConfig{Enabled: true}}
	require.NoError(t, WithCLIConfig(ctx)(c))

	assert.Equal(t, "prod", c.Environment.Default)
	assert.Equal(t, "ops", c.Auth.Username)
	assert.Equal(t, 10*time.Second, c.HTTP.Timeout)
	assert.False(t, c.Notifications.Enabled)
	assert.True(t, c.CLI.Ephemeral)
	assert.Equal(t, "2025-06-01", c.CLI.Date.Format(time.DateOnly))
}

func TestApplyCLIOptionsDate(t *testing.T) {
	now := time.Date(2025, time.March, 12, 23, 30, 0, 0, time.UTC)

	c := &Config{Display: DisplayConfig{Timezone: "Asia/Tokyo"}}
	require.NoError(t, applyCLIOptions(c, CLIOptions{Date: "today"}, now))

	// 23:30 UTC is already the 13th in Tokyo.
	assert.Equal(t, "2025-03-13", c.CLI.Date.Format(time.DateOnly))
	assert.Equal(t, c.CLI.Date, c.Today())

	err := applyCLIOptions(&Config{}, CLIOptions{Date: "qwxz zzqv"}, now)
	assert.ErrorIs(t, err, errInvalidDate)
}

func TestApplyCLIOptionsKeepsFileValues(t *testing.T) {
	c := &Config{
		Environment: EnvironmentConfig{Default: "dev"},
		Auth:        AuthConfig{Username: "file-user"},
		HTTP:        HTTPConfig{Timeout: time.Minute},
	}

	require.NoError(t, applyCLIOptions(c, CLIOptions{}, time.Now()))

	assert.Equal(t, "dev", c.Environment.Default)
	assert.Equal(t, "file-user", c.Auth.Username)
	assert.Equal(t, time.Minute, c.HTTP.Timeout)
	assert.True(t, c.CLI.Date.IsZero())
}
