package gleaner

import "context"

// Fetcher retrieves content from URLs over plain HTTP. It does not
// execute JavaScript; dynamically rendered sources go through Renderer.
type Fetcher interface {
	// Fetch retrieves the response body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Head issues a header-only request and returns the response's
	// Content-Type (lowercased, possibly empty).
	Head(ctx context.Context, url string) (contentType string, err error)

	// Close releases client resources.
	Close() error
}
