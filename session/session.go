// Package session owns the console's authentication state: which environment
// is selected, the bearer token for it, and when to sign in again.
package session

// Status is the state of the session controller.
type Status string

const (
	// StatusIdle means no environment has been selected yet.
	StatusIdle           Status = "idle"
	StatusAuthenticating Status = "authenticating"
	StatusReady          Status = "ready"
	StatusFailed         Status = "failed"
	// StatusSignedOut follows an explicit logout and suppresses automatic
	// sign-in until the operator retries, pastes a token or switches
	// environment.
	StatusSignedOut Status = "signed_out"
)

// Session is a snapshot of the controller state.
type Session struct {
	Token             string
	TokenOwnerBaseURL string
	SelectedBaseURL   string
	Status            Status
	// LastError is set only when Status is StatusFailed.
	LastError error
}

// HasToken reports whether a bearer token is held.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// NeedsAuth reports whether the token is absent or was issued for another
// environment.
func (s Session) NeedsAuth() bool {
	return s.Token == "" || s.TokenOwnerBaseURL != s.SelectedBaseURL
}

// Consistent reports whether the ready invariant holds: a ready session
// always holds a token issued for the selected environment.
func (s Session) Consistent() bool {
	if s.Status != StatusReady {
		return true
	}

	return s.Token != "" && s.TokenOwnerBaseURL == s.SelectedBaseURL
}

// Settled reports whether no sign-in is in progress.
func (s Session) Settled() bool {
	return s.Status != StatusAuthenticating
}
