// Package http provides an HTTP-based implementation of gleaner.Fetcher
// for probing and fetching content from sites that don't require
// JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gleanerhq/gleaner"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultRenderTimeout's navigation phase.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements gleaner.Fetcher at compile time.
var _ gleaner.Fetcher = (*Fetcher)(nil)

// defaultHeaders make requests look like an ordinary browser session.
var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"DNT":             "1",
	"Connection":      "keep-alive",
}

// Fetcher retrieves content from URLs using plain HTTP requests.
// Unlike rod.Renderer this does not execute JavaScript and is suitable
// for static pages and feed documents only.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents gleaner.UserAgentProvider
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents sets the provider used to stamp the User-Agent header
// on every request.
func WithUserAgents(p gleaner.UserAgentProvider) Option {
	return func(f *Fetcher) {
		f.userAgents = p
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchWithHeaders(ctx, url, nil)
}

// FetchWithHeaders retrieves the body of the given URL with extra
// request headers applied on top of the defaults.
func (f *Fetcher) FetchWithHeaders(ctx context.Context, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	f.setHeaders(req)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Head issues a HEAD request and returns the lowercased Content-Type,
// without any parameters stripped. Non-2xx responses are errors so
// callers can fall back to a body probe.
func (f *Fetcher) Head(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return strings.ToLower(resp.Header.Get("Content-Type")), nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	if f.userAgents != nil {
		req.Header.Set("User-Agent", f.userAgents.UserAgent())
	}
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
