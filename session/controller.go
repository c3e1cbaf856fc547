package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ayoisaiah/wellcon/internal/auth"
	"github.com/ayoisaiah/wellcon/store"
)

// Controller is the session state machine. All transitions happen under a
// single lock and are persisted before the lock is released, so a sign-in is
// never started while a stale token is still stored.
type Controller struct {
	mu sync.Mutex

	state     Session
	signedOut bool

	store  store.Store
	auth   auth.Authenticator
	creds  auth.Credentials
	logger *slog.Logger

	defaultBaseURL string

	// attempt identifies the current sign-in. Results of other attempts
	// are discarded.
	attempt uint64
	cancel  context.CancelFunc

	ctx       context.Context
	ctxCancel context.CancelFunc

	changed chan struct{}

	// signInDone runs after a sign-in result has been applied or discarded.
	signInDone func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used by the controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithDefaultBaseURL sets the environment selected when nothing was
// persisted.
func WithDefaultBaseURL(baseURL string) Option {
	return func(c *Controller) {
		c.defaultBaseURL = baseURL
	}
}

// New returns a Controller in the idle state. Call Start to seed it from the
// store.
func New(
	st store.Store,
	authenticator auth.Authenticator,
	creds auth.Credentials,
	opts ...Option,
) *Controller {
	c := &Controller{
		store:   st,
		auth:    authenticator,
		creds:   creds,
		logger:  slog.Default(),
		state:   Session{Status: StatusIdle},
		changed: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With("component", "session")

	return c
}

// Start seeds the session from the store and signs in if the persisted token
// does not belong to the selected environment. Sign-ins run until ctx is
// done or Close is called.
func (c *Controller) Start(ctx context.Context) error {
	rec, err := c.store.Load()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctx, c.ctxCancel = context.WithCancel(ctx)

	selected := rec.SelectedBaseURL
	if selected == "" {
		selected = c.defaultBaseURL
	}

	next := Session{
		SelectedBaseURL: selected,
		Status:          StatusIdle,
	}

	if rec.Token != "" && rec.TokenOwnerBaseURL == selected {
		next.Token = rec.Token
		next.TokenOwnerBaseURL = rec.TokenOwnerBaseURL
	}

	c.logger.Debug(
		"seeded session",
		"selected_base_url", selected,
		"token_restored", next.Token != "",
	)

	c.setLocked(next)
	c.evaluateLocked()

	return nil
}

// Snapshot returns the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Observe returns the current session and a channel that is closed on the
// next transition.
func (c *Controller) Observe() (Session, <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state, c.changed
}

// Await blocks until no sign-in is in progress and returns the session.
func (c *Controller) Await(ctx context.Context) (Session, error) {
	for {
		s, changed := c.Observe()
		if s.Settled() {
			return s, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return s, ctx.Err()
		}
	}
}

// SelectEnvironment switches to baseURL. The current token and its owner
// are cleared and persisted before the sign-in for baseURL starts.
// Selecting the current environment is a no-op.
func (c *Controller) SelectEnvironment(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if baseURL == "" || baseURL == c.state.SelectedBaseURL {
		return
	}

	c.logger.Info(
		"switching environment",
		"from", c.state.SelectedBaseURL,
		"to", baseURL,
	)

	c.cancelAttemptLocked()

	c.signedOut = false

	c.setLocked(Session{
		SelectedBaseURL: baseURL,
		Status:          StatusIdle,
	})

	c.persistLocked()
	c.evaluateLocked()
}

// SetToken installs a token pasted by the operator for the selected
// environment without signing in. An empty token clears the session and
// lets the re-auth rule decide what happens next.
func (c *Controller) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token = strings.TrimSpace(token)

	c.cancelAttemptLocked()

	if token == "" {
		c.logger.Info("token cleared by operator")

		c.setLocked(Session{
			SelectedBaseURL: c.state.SelectedBaseURL,
			Status:          StatusIdle,
		})
		c.clearPersistedTokenLocked()
		c.evaluateLocked()

		return
	}

	if c.state.SelectedBaseURL == "" {
		c.logger.Warn("ignoring token: no environment selected")
		return
	}

	c.logger.Info("token set by operator")

	c.signedOut = false

	c.setLocked(Session{
		Token:             token,
		TokenOwnerBaseURL: c.state.SelectedBaseURL,
		SelectedBaseURL:   c.state.SelectedBaseURL,
		Status:            StatusReady,
	})
	c.persistLocked()
}

// Logout clears the token and stays signed out until Retry, SetToken or
// SelectEnvironment.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAttemptLocked()

	c.signedOut = true

	c.setLocked(Session{
		SelectedBaseURL: c.state.SelectedBaseURL,
		Status:          StatusSignedOut,
	})
	c.clearPersistedTokenLocked()
}

// Retry re-enters the re-auth rule after a failure or logout. It reports
// whether a sign-in was started.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != StatusFailed && c.state.Status != StatusSignedOut {
		return false
	}

	c.signedOut = false

	return c.evaluateLocked()
}

// Close cancels any sign-in in progress. The controller must not be used
// afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAttemptLocked()

	if c.ctxCancel != nil {
		c.ctxCancel()
	}
}

// evaluateLocked applies the re-auth rule: sign in iff the token is absent
// or owned by another environment. It reports whether a sign-in started.
func (c *Controller) evaluateLocked() bool {
	s := c.state

	switch {
	case s.SelectedBaseURL == "":
		c.setStatusLocked(StatusIdle, nil)
		return false
	case c.signedOut:
		c.setStatusLocked(StatusSignedOut, nil)
		return false
	case !s.NeedsAuth():
		c.setStatusLocked(StatusReady, nil)
		return false
	}

	c.startAttemptLocked()

	return true
}

func (c *Controller) startAttemptLocked() {
	c.cancelAttemptLocked()

	parent := c.ctx
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)

	c.attempt++
	c.cancel = cancel

	attempt := c.attempt
	baseURL := c.state.SelectedBaseURL

	c.setLocked(Session{
		SelectedBaseURL: baseURL,
		Status:          StatusAuthenticating,
	})

	c.logger.Info("signing in", "base_url", baseURL, "attempt", attempt)

	go c.signIn(ctx, attempt, baseURL)
}

func (c *Controller) signIn(ctx context.Context, attempt uint64, baseURL string) {
	token, err := c.auth.SignIn(ctx, baseURL, c.creds)

	c.applySignIn(ctx, attempt, baseURL, token, err)

	if c.signInDone != nil {
		c.signInDone()
	}
}

func (c *Controller) applySignIn(
	ctx context.Context,
	attempt uint64,
	baseURL, token string,
	err error,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attempt != c.attempt || ctx.Err() != nil {
		c.logger.Debug(
			"discarding superseded sign-in",
			"base_url", baseURL,
			"attempt", attempt,
		)

		return
	}

	c.cancel()
	c.cancel = nil

	if err != nil {
		c.setLocked(Session{
			SelectedBaseURL: baseURL,
			Status:          StatusFailed,
			LastError:       err,
		})
		c.clearPersistedTokenLocked()

		return
	}

	c.setLocked(Session{
		Token:             token,
		TokenOwnerBaseURL: baseURL,
		SelectedBaseURL:   baseURL,
		Status:            StatusReady,
	})
	c.persistLocked()
}

func (c *Controller) cancelAttemptLocked() {
	if c.cancel == nil {
		return
	}

	c.cancel()
	c.cancel = nil
	c.attempt++
}

func (c *Controller) setStatusLocked(status Status, err error) {
	next := c.state
	next.Status = status
	next.LastError = err

	c.setLocked(next)
}

// setLocked replaces the state and wakes observers. A ready state that
// would break the invariant is downgraded rather than published.
func (c *Controller) setLocked(next Session) {
	if !next.Consistent() {
		c.logger.Error(
			"refusing inconsistent ready state",
			"selected_base_url", next.SelectedBaseURL,
			"token_owner_base_url", next.TokenOwnerBaseURL,
		)

		next.Status = StatusIdle
	}

	if next.Status != StatusFailed {
		next.LastError = nil
	}

	c.state = next

	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) persistLocked() {
	err := c.store.Save(store.Record{
		SelectedBaseURL:   c.state.SelectedBaseURL,
		Token:             c.state.Token,
		TokenOwnerBaseURL: c.state.TokenOwnerBaseURL,
	})
	if err != nil {
		c.logger.Error("persisting session failed", "error", err)
	}
}

func (c *Controller) clearPersistedTokenLocked() {
	if err := c.store.ClearToken(); err != nil {
		c.logger.Error("clearing persisted token failed", "error", err)
	}
}
