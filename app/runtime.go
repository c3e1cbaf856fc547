package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/auth"
	"github.com/ayoisaiah/wellcon/internal/config"
	"github.com/ayoisaiah/wellcon/internal/env"
	"github.com/ayoisaiah/wellcon/internal/logging"
	"github.com/ayoisaiah/wellcon/internal/pathutil"
	"github.com/ayoisaiah/wellcon/internal/ui"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/session"
	"github.com/ayoisaiah/wellcon/store"
)

// runtime is everything a command needs, built from config.
type runtime struct {
	cfg    *config.Config
	reg    *env.Registry
	logger *slog.Logger
	store  store.Store
	ctrl   *session.Controller
	dial   panel.Dialer

	closers []io.Closer
}

// loadConfig reads the config file and applies the command-line flags.
// First-run prompts are only shown on a terminal.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	opts := []config.Option{}

	if f, ok := config.Stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, config.WithPromptConfig(path))
	}

	opts = append(opts,
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)

	return config.New(opts...)
}

// newRuntime loads config, opens the session store and builds the
// controller. creds overrides the configured credentials when set.
func newRuntime(ctx *cli.Context, creds *auth.Credentials) (*runtime, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	reg, err := cfg.Registry()
	if err != nil {
		return nil, errSetup.Wrap(err)
	}

	r := &runtime{cfg: cfg, reg: reg}

	logger, closer, err := logging.New(logging.Options{
		Path:       pathutil.LogFilePath(),
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, errSetup.Wrap(err)
	}

	slog.SetDefault(logger)

	r.logger = logger
	r.closers = append(r.closers, closer)

	if cfg.CLI.Ephemeral {
		r.store = store.NewMemory(store.Record{})
	} else {
		client, err := store.NewClient(pathutil.DBFilePath())
		if err != nil {
			_ = r.Close()
			return nil, err
		}

		r.store = client
		r.closers = append(r.closers, client)
	}

	c := cfg.Credentials()
	if creds != nil {
		c = *creds
	}

	authenticator := auth.NewClient(&http.Client{Timeout: cfg.HTTP.Timeout}, logger)

	r.ctrl = session.New(
		r.store,
		authenticator,
		c,
		session.WithLogger(logger),
		session.WithDefaultBaseURL(cfg.DefaultBaseURL()),
	)

	r.dial = panel.APIDialer(
		api.WithTimeout(cfg.HTTP.Timeout),
		api.WithLogger(logger),
	)

	return r, nil
}

// start seeds the controller from the store.
func (r *runtime) start(ctx context.Context) error {
	return r.ctrl.Start(ctx)
}

// await waits for any sign-in to finish, bounded by --wait.
func (r *runtime) await(ctx *cli.Context) (session.Session, error) {
	c, cancel := context.WithTimeout(ctx.Context, ctx.Duration("wait"))
	defer cancel()

	return r.ctrl.Await(c)
}

// credentials waits for the session and returns its credentials, or an
// error explaining why there are none.
func (r *runtime) credentials(ctx *cli.Context) (panel.Credentials, error) {
	s, err := r.await(ctx)
	if err != nil {
		return panel.Credentials{}, err
	}

	creds := panel.CredentialsOf(s)
	if creds.Valid() {
		return creds, nil
	}

	reason := string(s.Status)
	if s.LastError != nil {
		reason = s.LastError.Error()
	}

	return creds, errNotSignedIn.Fmt(ui.EnvironmentLabel(r.reg, s.SelectedBaseURL), reason)
}

func (r *runtime) Close() error {
	if r.ctrl != nil {
		r.ctrl.Close()
	}

	var errs []error

	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i].Close())
	}

	return errors.Join(errs...)
}

// withRuntime runs fn with a started runtime and closes it afterwards.
func withRuntime(
	ctx *cli.Context,
	creds *auth.Credentials,
	fn func(r *runtime) error,
) (err error) {
	r, err := newRuntime(ctx, creds)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, r.Close())
	}()

	if err := r.start(ctx.Context); err != nil {
		return err
	}

	return fn(r)
}
