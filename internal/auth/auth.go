// Package auth performs the sign-in exchange against a backend environment
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayoisaiah/wellcon/internal/apperr"
)

const (
	signInPath   = "/api/users/signin"
	maxErrorBody = 64 << 10
)

var (
	// ErrAuthentication reports a rejected sign-in or a response without a
	// token.
	ErrAuthentication = &apperr.Error{
		Message: "authentication failed",
	}

	// ErrNetwork reports a sign-in request that could not complete.
	ErrNetwork = &apperr.Error{
		Message: "sign-in request failed",
	}

	errMissingToken = ErrAuthentication.Wrap(
		errors.New("response did not include an access token"),
	)
)

// Credentials is the fixed identity used to sign in.
type Credentials struct {
	UserNameOrEmail string `json:"userNameOrEmail"`
	Password        string `json:"password"`
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	// SignIn returns a token for baseURL. A cancelled ctx yields an error
	// matching context.Canceled, which callers treat as no outcome.
	SignIn(ctx context.Context, baseURL string, creds Credentials) (string, error)
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

// Client signs in over HTTP.
type Client struct {
	http   *http.Client
	logger *slog.Logger
}

// NewClient returns a Client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{http: httpClient, logger: logger}
}

// SignIn posts creds to the sign-in endpoint of baseURL.
func (c *Client) SignIn(
	ctx context.Context,
	baseURL string,
	creds Credentials,
) (token string, err error) {
	logger := c.logger.With(
		"operation", "SignIn",
		"base_url", baseURL,
		"user", creds.UserNameOrEmail,
	)

	defer func() {
		switch {
		case err == nil:
			logger.InfoContext(ctx, "sign-in succeeded")
		case errors.Is(err, context.Canceled):
			logger.DebugContext(ctx, "sign-in cancelled")
		default:
			logger.ErrorContext(ctx, "sign-in failed", "error", err)
		}
	}()

	body, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		strings.TrimRight(baseURL, "/")+signInPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", ErrNetwork.Wrap(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		return "", ErrNetwork.Wrap(err)
	}

	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		return "", ErrNetwork.Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(b))
		if detail == "" {
			detail = fmt.Sprintf("sign-in failed with status %d", resp.StatusCode)
		}

		return "", ErrAuthentication.Wrap(errors.New(detail))
	}

	var out signInResponse

	if err = json.Unmarshal(b, &out); err != nil || out.AccessToken == "" {
		return "", errMissingToken
	}

	return out.AccessToken, nil
}
