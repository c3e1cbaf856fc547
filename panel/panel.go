// Package panel coordinates the data fetches behind each console panel. Every
// fetch is gated on session credentials and only the latest fetch of a panel
// may publish its result.
package panel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/apperr"
	"github.com/ayoisaiah/wellcon/session"
)

// ErrMissingCredentials is returned by panel actions attempted without a
// token. Loads report PhaseNeedsCredentials instead.
var ErrMissingCredentials = &apperr.Error{
	Message: "sign in or paste a token to continue",
}

// Phase is the lifecycle stage of a panel.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseNeedsCredentials Phase = "needs_credentials"
	PhaseLoading          Phase = "loading"
	PhaseLoaded           Phase = "loaded"
	PhaseFailed           Phase = "failed"
)

// View is what a panel renders. Err is set only in PhaseFailed.
type View[T any] struct {
	Phase Phase
	Data  T
	Err   error
}

// Credentials identify the environment and token a panel fetches with.
type Credentials struct {
	BaseURL string
	Token   string
}

// Valid reports whether a fetch may be issued.
func (c Credentials) Valid() bool {
	return c.BaseURL != "" && c.Token != ""
}

// CredentialsOf extracts credentials from a ready session. The token is
// always paired with the environment it was issued for.
func CredentialsOf(s session.Session) Credentials {
	if s.Status != session.StatusReady || !s.HasToken() {
		return Credentials{}
	}

	return Credentials{BaseURL: s.TokenOwnerBaseURL, Token: s.Token}
}

// Backend is the subset of the API a panel needs.
type Backend interface {
	CheckIn(ctx context.Context) (*api.WellnessWindow, error)
	Tasks(ctx context.Context, date time.Time) ([]api.Task, error)
	Suggestions(ctx context.Context, req api.BrainDumpRequest) (*api.SuggestionResponse, error)
	AddToCalendar(ctx context.Context, req api.AddToCalendarRequest) (*api.Task, error)
}

// Dialer returns a Backend bound to creds.
type Dialer func(creds Credentials) Backend

// APIDialer dials the HTTP API.
func APIDialer(opts ...api.Option) Dialer {
	return func(creds Credentials) Backend {
		return api.New(creds.BaseURL, creds.Token, opts...)
	}
}

// loader runs one fetch at a time. Starting a fetch cancels the previous
// one, and results of superseded fetches are dropped.
type loader[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	view   View[T]
}

func (l *loader[T]) View() View[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.view
}

// reset cancels any fetch and publishes an empty view in phase.
func (l *loader[T]) reset(phase Phase) View[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
	l.view = View[T]{Phase: phase}

	return l.view
}

func (l *loader[T]) stopLocked() {
	l.gen++

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *loader[T]) run(
	ctx context.Context,
	creds Credentials,
	fetch func(ctx context.Context) (T, error),
) View[T] {
	if !creds.Valid() {
		return l.reset(PhaseNeedsCredentials)
	}

	l.mu.Lock()

	l.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	gen := l.gen
	l.cancel = cancel
	l.view = View[T]{Phase: PhaseLoading}

	l.mu.Unlock()

	data, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return l.view
	}

	cancel()
	l.cancel = nil

	if err != nil {
		l.view = View[T]{Phase: PhaseFailed, Err: err}
	} else {
		l.view = View[T]{Phase: PhaseLoaded, Data: data}
	}

	return l.view
}

// Observer exposes session transitions.
type Observer interface {
	Observe() (session.Session, <-chan struct{})
}

// Sync calls reload with the session credentials at start and whenever
// they change, until ctx is done. reload runs on its own goroutine so a slow
// fetch never delays noticing the next change.
func Sync(
	ctx context.Context,
	obs Observer,
	reload func(ctx context.Context, creds Credentials),
	logger *slog.Logger,
) error {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		last  Credentials
		first = true
	)

	for {
		s, changed := obs.Observe()

		creds := CredentialsOf(s)
		if first || creds != last {
			logger.Debug(
				"session credentials changed",
				"base_url", creds.BaseURL,
				"has_token", creds.Token != "",
			)

			first = false
			last = creds

			go reload(ctx, creds)
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
