package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ayoisaiah/wellcon/internal/auth"
	"github.com/ayoisaiah/wellcon/store"
)

const (
	baseA = "https://localhost:7046"
	baseB = "https://wellness-api-dev.azurewebsites.net"
)

var testCreds = auth.Credentials{UserNameOrEmail: "dev@example.com", Password: "secret"}

type result struct {
	token string
	err   error
}

type call struct {
	baseURL string
	stored  store.Record
	reply   chan result
}

// fakeAuth hands every sign-in to the test through calls. When
// ignoreCancel is set the reply is awaited even after cancellation, which
// simulates a response that arrives after the caller moved on.
type fakeAuth struct {
	st           store.Store
	calls        chan *call
	ignoreCancel bool
}

func newFakeAuth(st store.Store) *fakeAuth {
	return &fakeAuth{st: st, calls: make(chan *call, 8)}
}

func (f *fakeAuth) SignIn(ctx context.Context, baseURL string, _ auth.Credentials) (string, error) {
	rec, _ := f.st.Load()

	c := &call{baseURL: baseURL, stored: rec, reply: make(chan result, 1)}
	f.calls <- c

	if f.ignoreCancel {
		r := <-c.reply
		return r.token, r.err
	}

	select {
	case r := <-c.reply:
		return r.token, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *fakeAuth) next(t *testing.T) *call {
	t.Helper()

	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sign-in")
		return nil
	}
}

func (f *fakeAuth) assertNoCall(t *testing.T) {
	t.Helper()

	select {
	case c := <-f.calls:
		t.Fatalf("unexpected sign-in for %s", c.baseURL)
	case <-time.After(50 * time.Millisecond):
	}
}

type harness struct {
	ctrl  *Controller
	store *store.Memory
	auth  *fakeAuth
	done  sync.WaitGroup
}

func newHarness(t *testing.T, rec store.Record) *harness {
	t.Helper()

	h := &harness{store: store.NewMemory(rec)}
	h.auth = newFakeAuth(h.store)
	h.ctrl = New(
		h.store,
		h.auth,
		testCreds,
		WithDefaultBaseURL(baseA),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	h.ctrl.signInDone = h.done.Done

	t.Cleanup(h.ctrl.Close)

	return h
}

// start expects n sign-ins to complete over the life of the test.
func (h *harness) start(t *testing.T, n int) {
	t.Helper()

	h.done.Add(n)

	if err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func (h *harness) await(t *testing.T) Session {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := h.ctrl.Await(ctx)
	if err != nil {
		t.Fatalf("session did not settle: %v", err)
	}

	if !s.Consistent() {
		t.Fatalf("inconsistent session: %+v", s)
	}

	return s
}

func assertRecord(t *testing.T, st *store.Memory, want store.Record) {
	t.Helper()

	got, _ := st.Load()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted record mismatch (-want +got):\n%s", diff)
	}
}

func TestFreshStartSignsIn(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 1)

	if s := h.ctrl.Snapshot(); s.Status != StatusAuthenticating {
		t.Fatalf("expected authenticating, got %s", s.Status)
	}

	c := h.auth.next(t)
	if c.baseURL != baseA {
		t.Fatalf("signed in against %s", c.baseURL)
	}

	c.reply <- result{token: "abc"}

	s := h.await(t)
	if s.Status != StatusReady || s.Token != "abc" || s.TokenOwnerBaseURL != baseA {
		t.Fatalf("unexpected session: %+v", s)
	}

	assertRecord(t, h.store, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "abc",
		TokenOwnerBaseURL: baseA,
	})
}

func TestStartRestoresMatchingToken(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseB,
		Token:             "persisted",
		TokenOwnerBaseURL: baseB,
	})
	h.start(t, 0)

	s := h.ctrl.Snapshot()
	if s.Status != StatusReady || s.Token != "persisted" || s.SelectedBaseURL != baseB {
		t.Fatalf("unexpected session: %+v", s)
	}

	h.auth.assertNoCall(t)
}

func TestStartDropsTokenForOtherEnvironment(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseB,
		Token:             "for-a",
		TokenOwnerBaseURL: baseA,
	})
	h.start(t, 1)

	s := h.ctrl.Snapshot()
	if s.Status != StatusAuthenticating || s.HasToken() {
		t.Fatalf("unexpected session: %+v", s)
	}

	c := h.auth.next(t)
	if c.baseURL != baseB {
		t.Fatalf("signed in against %s", c.baseURL)
	}

	c.reply <- result{token: "for-b"}

	if s := h.await(t); s.Token != "for-b" || s.TokenOwnerBaseURL != baseB {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestSwitchEnvironmentClearsTokenBeforeSigningIn(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "token-a",
		TokenOwnerBaseURL: baseA,
	})
	h.start(t, 1)

	h.ctrl.SelectEnvironment(baseB)

	s := h.ctrl.Snapshot()
	if s.Status != StatusAuthenticating || s.HasToken() {
		t.Fatalf("stale token observable after switch: %+v", s)
	}

	c := h.auth.next(t)
	if c.baseURL != baseB {
		t.Fatalf("signed in against %s", c.baseURL)
	}

	if c.stored.Token != "" || c.stored.TokenOwnerBaseURL != "" {
		t.Fatalf("persisted token not cleared before sign-in: %+v", c.stored)
	}

	if c.stored.SelectedBaseURL != baseB {
		t.Fatalf("selection not persisted before sign-in: %+v", c.stored)
	}

	c.reply <- result{token: "token-b"}

	if s := h.await(t); s.Token != "token-b" || s.TokenOwnerBaseURL != baseB {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestSelectingCurrentEnvironmentIsNoop(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "token-a",
		TokenOwnerBaseURL: baseA,
	})
	h.start(t, 0)

	h.ctrl.SelectEnvironment(baseA)

	if s := h.ctrl.Snapshot(); s.Status != StatusReady || s.Token != "token-a" {
		t.Fatalf("unexpected session: %+v", s)
	}

	h.auth.assertNoCall(t)
}

func TestSignInFailure(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 1)

	c := h.auth.next(t)
	c.reply <- result{err: auth.ErrAuthentication.Wrap(errors.New("response did not include an access token"))}

	s := h.await(t)
	if s.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", s.Status)
	}

	if !errors.Is(s.LastError, auth.ErrAuthentication) {
		t.Fatalf("unexpected error: %v", s.LastError)
	}

	if s.HasToken() || s.TokenOwnerBaseURL != "" {
		t.Fatalf("token not cleared: %+v", s)
	}

	assertRecord(t, h.store, store.Record{})

	h.auth.assertNoCall(t)
}

func TestRetryAfterFailureClearsError(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 2)

	h.auth.next(t).reply <- result{err: auth.ErrNetwork}
	h.await(t)

	if !h.ctrl.Retry() {
		t.Fatal("expected retry to start a sign-in")
	}

	if s := h.ctrl.Snapshot(); s.Status != StatusAuthenticating || s.LastError != nil {
		t.Fatalf("unexpected session: %+v", s)
	}

	h.auth.next(t).reply <- result{token: "abc"}

	if s := h.await(t); s.Status != StatusReady {
		t.Fatalf("unexpected session: %+v", s)
	}

	if h.ctrl.Retry() {
		t.Fatal("retry must not start a sign-in while ready")
	}
}

func TestStaleSignInIsDiscarded(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.auth.ignoreCancel = true
	h.start(t, 2)

	slow := h.auth.next(t)
	if slow.baseURL != baseA {
		t.Fatalf("signed in against %s", slow.baseURL)
	}

	h.ctrl.SelectEnvironment(baseB)

	fast := h.auth.next(t)
	fast.reply <- result{token: "token-b"}

	if s := h.await(t); s.Token != "token-b" {
		t.Fatalf("unexpected session: %+v", s)
	}

	slow.reply <- result{token: "token-a"}
	h.done.Wait()

	want := Session{
		Token:             "token-b",
		TokenOwnerBaseURL: baseB,
		SelectedBaseURL:   baseB,
		Status:            StatusReady,
	}

	if diff := cmp.Diff(want, h.ctrl.Snapshot(), cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("stale sign-in leaked into state (-want +got):\n%s", diff)
	}

	assertRecord(t, h.store, store.Record{
		SelectedBaseURL:   baseB,
		Token:             "token-b",
		TokenOwnerBaseURL: baseB,
	})
}

func TestStaleFailureIsDiscarded(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.auth.ignoreCancel = true
	h.start(t, 2)

	slow := h.auth.next(t)

	h.ctrl.SelectEnvironment(baseB)

	fast := h.auth.next(t)
	fast.reply <- result{token: "token-b"}
	h.await(t)

	slow.reply <- result{err: auth.ErrNetwork}
	h.done.Wait()

	if s := h.ctrl.Snapshot(); s.Status != StatusReady || s.Token != "token-b" {
		t.Fatalf("stale failure leaked into state: %+v", s)
	}
}

func TestCancelledSignInLeavesNoTrace(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 2)

	first := h.auth.next(t)

	h.ctrl.SelectEnvironment(baseB)
	second := h.auth.next(t)

	if first.baseURL != baseA || second.baseURL != baseB {
		t.Fatalf("unexpected sign-ins: %s, %s", first.baseURL, second.baseURL)
	}

	// first observes cancellation and returns context.Canceled
	second.reply <- result{token: "token-b"}
	h.done.Wait()

	if s := h.ctrl.Snapshot(); s.Status != StatusReady || s.Token != "token-b" || s.LastError != nil {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestPastedTokenBypassesSignIn(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 1)

	h.auth.next(t).reply <- result{err: auth.ErrNetwork}
	h.await(t)

	h.ctrl.SetToken("  pasted  ")

	s := h.ctrl.Snapshot()
	if s.Status != StatusReady || s.Token != "pasted" || s.TokenOwnerBaseURL != baseA {
		t.Fatalf("unexpected session: %+v", s)
	}

	if !s.Consistent() {
		t.Fatalf("inconsistent session: %+v", s)
	}

	h.auth.assertNoCall(t)

	assertRecord(t, h.store, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "pasted",
		TokenOwnerBaseURL: baseA,
	})
}

func TestPastedTokenWinsOverInFlightSignIn(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.auth.ignoreCancel = true
	h.start(t, 1)

	inFlight := h.auth.next(t)

	h.ctrl.SetToken("pasted")

	inFlight.reply <- result{err: auth.ErrAuthentication}
	h.done.Wait()

	if s := h.ctrl.Snapshot(); s.Status != StatusReady || s.Token != "pasted" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestClearingTokenSignsInAgain(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "token-a",
		TokenOwnerBaseURL: baseA,
	})
	h.start(t, 1)

	h.ctrl.SetToken("")

	if s := h.ctrl.Snapshot(); s.Status != StatusAuthenticating || s.HasToken() {
		t.Fatalf("unexpected session: %+v", s)
	}

	c := h.auth.next(t)
	if c.stored.Token != "" {
		t.Fatalf("persisted token not cleared: %+v", c.stored)
	}

	c.reply <- result{token: "fresh"}

	if s := h.await(t); s.Token != "fresh" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestLogoutSuppressesSignIn(t *testing.T) {
	h := newHarness(t, store.Record{
		SelectedBaseURL:   baseA,
		Token:             "token-a",
		TokenOwnerBaseURL: baseA,
	})
	h.start(t, 1)

	h.ctrl.Logout()

	s := h.ctrl.Snapshot()
	if s.Status != StatusSignedOut || s.HasToken() {
		t.Fatalf("unexpected session: %+v", s)
	}

	h.auth.assertNoCall(t)

	assertRecord(t, h.store, store.Record{SelectedBaseURL: baseA})

	h.ctrl.SetToken("")

	if s := h.ctrl.Snapshot(); s.Status != StatusSignedOut {
		t.Fatalf("clearing an absent token must not sign in: %+v", s)
	}

	h.auth.assertNoCall(t)

	if !h.ctrl.Retry() {
		t.Fatal("expected retry to start a sign-in")
	}

	h.auth.next(t).reply <- result{token: "again"}

	if s := h.await(t); s.Status != StatusReady || s.Token != "again" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestIdleWithoutEnvironment(t *testing.T) {
	st := store.NewMemory(store.Record{})
	fa := newFakeAuth(st)

	ctrl := New(st, fa, testCreds, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer ctrl.Close()

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	if s := ctrl.Snapshot(); s.Status != StatusIdle {
		t.Fatalf("expected idle, got %s", s.Status)
	}

	fa.assertNoCall(t)
}

func TestObserveWakesOnTransition(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 1)

	s, changed := h.ctrl.Observe()
	if s.Status != StatusAuthenticating {
		t.Fatalf("unexpected session: %+v", s)
	}

	h.auth.next(t).reply <- result{token: "abc"}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("observer was not woken")
	}
}

func TestAwaitHonoursContext(t *testing.T) {
	h := newHarness(t, store.Record{})
	h.start(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s, err := h.ctrl.Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if s.Status != StatusAuthenticating {
		t.Fatalf("unexpected session: %+v", s)
	}
}
