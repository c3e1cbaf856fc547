// Package api is the client for the wellness and task endpoints of a backend
// environment.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	pathCheckIn       = "/api/wellness/check-in"
	pathTasks         = "/api/tasks"
	pathSuggestions   = "/brain-dump/suggestions"
	pathAddToCalendar = "/brain-dump/add-to-calendar"

	headerRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// Options controls client construction.
type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithTransport provides the base transport under the bearer transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *Options) { o.Transport = rt }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Client calls a single backend environment with a single bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New returns a Client for baseURL that authenticates every request with
// token.
func New(baseURL, token string, opts ...Option) *Client {
	o := Options{Timeout: 30 * time.Second}

	for _, opt := range opts {
		opt(&o)
	}

	if o.Transport == nil {
		o.Transport = http.DefaultTransport
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: o.Timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   o.Transport,
			},
		},
		logger: o.Logger.With("base_url", baseURL),
	}
}

// BaseURL returns the environment the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckIn returns the stored wellness check-in. ErrNotFound means none has
// been stored yet.
func (c *Client) CheckIn(ctx context.Context) (*WellnessWindow, error) {
	var w WellnessWindow

	if err := c.do(ctx, http.MethodGet, pathCheckIn, nil, nil, &w); err != nil {
		return nil, err
	}

	return &w, nil
}

// Tasks returns the tasks scheduled on date.
func (c *Client) Tasks(ctx context.Context, date time.Time) ([]Task, error) {
	q := url.Values{}
	q.Set("date", NewDate(date).String())

	var tasks []Task

	if err := c.do(ctx, http.MethodGet, pathTasks, q, nil, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Suggestions submits a brain dump for AI suggestions.
func (c *Client) Suggestions(
	ctx context.Context,
	req BrainDumpRequest,
) (*SuggestionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out SuggestionResponse

	err := c.do(ctx, http.MethodPost, pathSuggestions, nil, req, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// AddToCalendar schedules a suggestion and returns the created task.
func (c *Client) AddToCalendar(
	ctx context.Context,
	req AddToCalendarRequest,
) (*Task, error) {
	if strings.TrimSpace(req.EntryID) == "" {
		return nil, errEmptyEntryID
	}

	var out AddToCalendarResponse

	err := c.do(ctx, http.MethodPost, pathAddToCalendar, nil, req, &out)
	if err != nil {
		return nil, err
	}

	return &out.Task, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) (err error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	requestID := uuid.NewString()

	logger := c.logger.With(
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	start := time.Now()

	defer func() {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "request failed", "error", err)
			return
		}

		logger.DebugContext(ctx, "request finished", "elapsed", time.Since(start))
	}()

	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return ErrNetwork.Wrap(err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return ErrNetwork.Wrap(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return ErrRequest.Fmt(
			method,
			path,
			resp.StatusCode,
			strings.TrimSpace(string(b)),
		)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return errDecode.Fmt(path).Wrap(err)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.DebugContext(ctx, "response payload", "body", spew.Sdump(out))
	}

	return nil
}
