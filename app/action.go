package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/wellcon/internal/config"
	"github.com/ayoisaiah/wellcon/internal/console"
	"github.com/ayoisaiah/wellcon/internal/osutil"
	"github.com/ayoisaiah/wellcon/internal/pathutil"
	"github.com/ayoisaiah/wellcon/internal/ui"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/report"
	"github.com/ayoisaiah/wellcon/session"
)

const (
	envNoColor        = "NO_COLOR"
	envWellconNoColor = "WELLCON_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// printSession prints the session and returns an error when sign-in failed.
func printSession(r *runtime, s session.Session) error {
	ui.PrintSection("Session", ui.SessionRows(r.reg, s), config.Stdout)

	if s.Status == session.StatusFailed {
		return s.LastError
	}

	return nil
}

// envAction lists the environments and marks the selected one.
func envAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		s := r.ctrl.Snapshot()

		ui.PrintTable(ui.EnvironmentRows(r.reg, s.SelectedBaseURL), config.Stdout)

		return nil
	})
}

// envUseAction selects an environment and waits for the sign-in it
// triggers.
func envUseAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errMissingArgument.Fmt("environment name")
	}

	return withRuntime(ctx, nil, func(r *runtime) error {
		baseURL, ok := r.reg.Lookup(name)
		if !ok {
			return errUnknownEnvironment.Fmt(name)
		}

		r.ctrl.SelectEnvironment(baseURL)

		s, err := r.await(ctx)
		if err != nil {
			return err
		}

		return printSession(r, s)
	})
}

// statusAction prints the session, signing in first when the stored token
// does not belong to the selected environment.
func statusAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		s, err := r.await(ctx)
		if err != nil {
			return err
		}

		return printSession(r, s)
	})
}

// readPassword prompts for a password, or reads one line from stdin with
// --password-stdin.
func readPassword(ctx *cli.Context, username string) (string, error) {
	if ctx.Bool("password-stdin") {
		b, err := io.ReadAll(io.LimitReader(config.Stdin, 4096))
		if err != nil {
			return "", err
		}

		return strings.TrimRight(string(b), "\r\n"), nil
	}

	var password string

	err := huh.NewInput().
		Title("Password for " + username).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()

	return password, err
}

// loginAction forces a fresh sign-in with the configured username.
func loginAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	creds := cfg.Credentials()

	if creds.UserNameOrEmail == "" {
		err := huh.NewInput().
			Title("Username or email").
			Value(&creds.UserNameOrEmail).
			Run()
		if err != nil {
			return err
		}
	}

	if creds.Password == "" || ctx.Bool("password-stdin") {
		creds.Password, err = readPassword(ctx, creds.UserNameOrEmail)
		if err != nil {
			return err
		}
	}

	return withRuntime(ctx, &creds, func(r *runtime) error {
		// A token restored from the store skips sign-in. Clear it so the
		// credentials are checked.
		if r.ctrl.Snapshot().Status == session.StatusReady {
			r.ctrl.SetToken("")
		}

		s, err := r.await(ctx)
		if err != nil {
			return err
		}

		return printSession(r, s)
	})
}

// logoutAction clears the stored token for the selected environment.
func logoutAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		r.ctrl.Logout()

		report.Success(config.Stdout, "signed out of %s", ui.EnvironmentLabel(r.reg, r.ctrl.Snapshot().SelectedBaseURL))

		return nil
	})
}

// tokenSetAction stores a bearer token obtained elsewhere for the selected
// environment.
func tokenSetAction(ctx *cli.Context) error {
	token := ctx.Args().First()
	if token == "-" {
		b, err := io.ReadAll(io.LimitReader(config.Stdin, 64<<10))
		if err != nil {
			return err
		}

		token = string(b)
	}

	if strings.TrimSpace(token) == "" {
		return errMissingArgument.Fmt("token")
	}

	return withRuntime(ctx, nil, func(r *runtime) error {
		r.ctrl.SetToken(token)

		return printSession(r, r.ctrl.Snapshot())
	})
}

// tokenClearAction drops the token, which triggers a new sign-in.
func tokenClearAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		r.ctrl.SetToken("")

		s, err := r.await(ctx)
		if err != nil {
			return err
		}

		return printSession(r, s)
	})
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		osutil.DefaultEditor(goruntime.GOOS),
	)

	args, err := shellquote.Split(editor)
	if err != nil {
		return errEditor.Wrap(err)
	}

	if len(args) == 0 {
		return errEditor
	}

	cmd := exec.Command(args[0], append(args[1:], pathutil.ConfigFilePath())...)

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

// defaultAction starts the interactive console.
func defaultAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		m := console.New(
			r.ctrl,
			panel.NewWellness(r.dial, r.logger),
			r.newTasksPanel(),
			console.Options{
				Registry:       r.reg,
				Fallback:       r.cfg.Location(),
				TwentyFourHour: r.cfg.Display.TwentyFourHour,
				DarkTheme:      r.cfg.Display.DarkTheme,
				Notify:         r.cfg.Notifications.Enabled,
				Logger:         r.logger,
			},
		)

		return console.Run(ctx.Context, m)
	})
}

func (r *runtime) newTasksPanel() *panel.Tasks {
	return panel.NewTasks(
		r.dial,
		panel.CheckInTimezone{Dial: r.dial},
		r.cfg.Location(),
		r.cfg.Today(),
		r.logger,
	)
}

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Fprintf(
			config.Stdout,
			"https://github.com/ayoisaiah/wellcon/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envWellconNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return errSetup.Wrap(err)
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting wellcon")

	return nil
}
