// Package rod provides a Chrome-based implementation of
// gleaner.Renderer for pages that only produce their content after
// executing JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gleanerhq/gleaner"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds a single render, navigation included.
const DefaultRenderTimeout = 30 * time.Second

// DefaultMaxPages is the number of rendered pages before the browser
// is recycled. Chrome accumulates memory over time and the baseline
// never returns to initial levels even with proper page cleanup.
const DefaultMaxPages = 75

// Ensure Renderer implements gleaner.Renderer at compile time.
var _ gleaner.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled after maxPages
// renders. Renderer is safe for concurrent use.
type Renderer struct {
	timeout  time.Duration
	maxPages int64

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	closed    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout bounds each render. Defaults to
// DefaultRenderTimeout (30s).
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithMaxPages sets the number of renders before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// NewRenderer creates a Renderer backed by a headless Chrome browser.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		timeout:  DefaultRenderTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.launchBrowser(); err != nil {
		return nil, err
	}

	return r, nil
}

// Render navigates to the URL, waits for the page to load plus
// whatever opts ask for, and returns the rendered HTML.
//
// A failed WaitSelector lookup is not an error: pages missing the
// expected element still render whatever they have.
func (r *Renderer) Render(ctx context.Context, url string, opts gleaner.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := r.acquireBrowser()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if opts.WaitSelector != "" {
		timeout := opts.SelectorTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		// Missing elements are tolerated: not every page variant
		// carries the selector.
		if _, err := page.Timeout(timeout).Element(opts.WaitSelector); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	}

	if opts.SettleDelay > 0 {
		select {
		case <-time.After(opts.SettleDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	r.notePageRendered()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple
// times.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.closeBrowser()
}

// acquireBrowser returns the current browser, recycling first when the
// render count has reached maxPages.
func (r *Renderer) acquireBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("renderer is closed")
	}
	if r.pageCount >= r.maxPages {
		r.recycleBrowser()
	}
	return r.browser, nil
}

func (r *Renderer) notePageRendered() {
	r.mu.Lock()
	r.pageCount++
	r.mu.Unlock()
}

// launchBrowser starts a new browser instance with stability flags.
// Must be called with mu held (or before the Renderer is shared).
func (r *Renderer) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (r *Renderer) closeBrowser() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If
// launching the replacement fails the old browser is kept.
// Must be called with mu held.
func (r *Renderer) recycleBrowser() {
	oldBrowser := r.browser
	oldLauncher := r.launcher
	r.browser = nil
	r.launcher = nil

	if err := r.launchBrowser(); err != nil {
		r.browser = oldBrowser
		r.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	r.pageCount = 0
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.launcher == nil {
		return 0
	}
	return r.launcher.PID()
}
