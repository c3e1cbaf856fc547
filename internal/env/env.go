// Package env holds the fixed set of backend environments the console can
// target and their canonical base URLs
package env

import (
	"fmt"
	"net/url"
	"strings"
)

// Name identifies a backend environment.
type Name string

const (
	Local Name = "local"
	Dev   Name = "dev"
	Prod  Name = "prod"
)

// Names lists every environment in display order.
var Names = []Name{Local, Dev, Prod}

const (
	localURL = "https://localhost:7046"
	devDocs  = "https://wellness-api-dev.azurewebsites.net/swagger/index.html"
	prodDocs = "https://wellness-api.azurewebsites.net/swagger/index.html"
)

// Registry maps environment names to canonical base URLs. It is immutable
// once built.
type Registry struct {
	urls map[Name]string
}

// Origin reduces a URL to scheme://host[:port], dropping any path, query,
// fragment and trailing slash.
func Origin(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid url %q: scheme and host are required", raw)
	}

	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), nil
}

func mustOrigin(raw string) string {
	o, err := Origin(raw)
	if err != nil {
		panic(err)
	}

	return o
}

// NewRegistry returns the built-in registry with the provided overrides
// applied. Overrides for names outside the enumeration are rejected.
func NewRegistry(overrides map[string]string) (*Registry, error) {
	r := &Registry{
		urls: map[Name]string{
			Local: mustOrigin(localURL),
			Dev:   mustOrigin(devDocs),
			Prod:  mustOrigin(prodDocs),
		},
	}

	for k, v := range overrides {
		name := Name(strings.ToLower(strings.TrimSpace(k)))
		if _, ok := r.urls[name]; !ok {
			return nil, fmt.Errorf("unknown environment %q", k)
		}

		o, err := Origin(v)
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", name, err)
		}

		r.urls[name] = o
	}

	return r, nil
}

// Default returns the registry without overrides.
func Default() *Registry {
	r, _ := NewRegistry(nil)
	return r
}

// BaseURL returns the base URL for name. Asking for a name outside the
// enumeration is a programming error.
func (r *Registry) BaseURL(name Name) string {
	u, ok := r.urls[name]
	if !ok {
		panic(fmt.Sprintf("env: unknown environment %q", name))
	}

	return u
}

// Lookup resolves operator input to a base URL.
func (r *Registry) Lookup(name string) (string, bool) {
	u, ok := r.urls[Name(strings.ToLower(strings.TrimSpace(name)))]
	return u, ok
}

// NameOf returns the environment whose base URL equals baseURL.
func (r *Registry) NameOf(baseURL string) (Name, bool) {
	for _, n := range Names {
		if r.urls[n] == baseURL {
			return n, true
		}
	}

	return "", false
}

// Next returns the environment after the one owning baseURL, wrapping
// around. Unknown base URLs start from the first environment.
func (r *Registry) Next(baseURL string) Name {
	current, ok := r.NameOf(baseURL)
	if !ok {
		return Names[0]
	}

	for i, n := range Names {
		if n == current {
			return Names[(i+1)%len(Names)]
		}
	}

	return Names[0]
}
