package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/wellcon/internal/env"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Environment string
	Username    string
}

// WithPromptConfig returns an Option that asks for first-run settings when
// no config file exists yet. It must precede WithViperConfig so the answers
// are written to the new file.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{Environment: string(env.Dev)}

	pterm.DefaultHeader.Println("wellcon")

	_ = putils.BulletListFromString(`Answer the prompts below to configure wellcon for the first time.
The password is never stored: set WELLCON_AUTH_PASSWORD or use 'wellcon login'.
Edit the config file with 'wellcon edit-config' to change any settings.`, " ").
		Render()

	options := make([]huh.Option[string], 0, len(env.Names))
	for _, name := range env.Names {
		options = append(options, huh.NewOption(string(name), string(name)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default environment").
				Options(options...).
				Value(&opts.Environment),
			huh.NewInput().
				Title("Username or email").
				Value(&opts.Username),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Environment.Default = opts.Environment
	c.Auth.Username = opts.Username
}
