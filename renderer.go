package gleaner

import (
	"context"
	"time"
)

// RenderOptions tune a single render pass.
type RenderOptions struct {
	// SettleDelay is an additional fixed wait after the page loads, for
	// sites that keep hydrating after the load event.
	SettleDelay time.Duration

	// WaitSelector, when non-empty, is a CSS selector to wait for after
	// navigation. Failure to find it within SelectorTimeout is
	// non-fatal.
	WaitSelector string

	// SelectorTimeout bounds the WaitSelector wait.
	SelectorTimeout time.Duration
}

// Renderer retrieves fully rendered HTML from URLs using a headless
// browser, including content produced by client-side script execution.
//
// The browser is a scarce resource: implementations own one page per
// in-flight render and must release it on every exit path.
type Renderer interface {
	// Render navigates to the URL, waits for the page to finish
	// loading, and returns the rendered markup.
	Render(ctx context.Context, url string, opts RenderOptions) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
