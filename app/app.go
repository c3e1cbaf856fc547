package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/wellcon/internal/config"
)

// Get retrieves the wellcon app instance.
func Get() *cli.App {
	wellconApp := &cli.App{
		Name: "wellcon",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Wellcon is an operator console for the wellness planning service. It 
		keeps you signed in to the selected environment and shows the stored 
		check-in window, the day's tasks and AI suggested activities.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "env",
				Usage:  "List the environments and show which one is selected",
				Action: envAction,
				Subcommands: []*cli.Command{
					{
						Name:      "use",
						Usage:     "Select an environment and sign in to it",
						ArgsUsage: "<local|dev|prod>",
						Action:    envUseAction,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Print the session for the selected environment",
				Action: statusAction,
			},
			{
				Name:   "login",
				Usage:  "Sign in to the selected environment",
				Flags:  []cli.Flag{passwordStdinFlag},
				Action: loginAction,
			},
			{
				Name:   "logout",
				Usage:  "Forget the token for the selected environment",
				Action: logoutAction,
			},
			{
				Name:  "token",
				Usage: "Manage the bearer token directly",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Use a token obtained elsewhere. Pass '-' to read it from stdin",
						ArgsUsage: "<token>",
						Action:    tokenSetAction,
					},
					{
						Name:   "clear",
						Usage:  "Clear the token and sign in again",
						Action: tokenClearAction,
					},
				},
			},
			{
				Name:   "wellness",
				Usage:  "Print the stored check-in window",
				Action: wellnessAction,
			},
			{
				Name:   "tasks",
				Usage:  "Print the tasks scheduled for a day",
				Flags:  []cli.Flag{dateFlag},
				Action: tasksAction,
			},
			{
				Name:   "overview",
				Usage:  "Print the session, check-in window and tasks together",
				Flags:  []cli.Flag{dateFlag},
				Action: overviewAction,
			},
			{
				Name:  "suggest",
				Usage: "Get activity suggestions from a brain dump",
				Flags: []cli.Flag{
					brainDumpFlag,
					moodFlag,
					stressFlag,
					purposeFlag,
					addFlag,
				},
				Action: suggestAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  globalFlags(),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return wellconApp
}
