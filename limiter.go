package gleaner

import "context"

// HostLimiter throttles outbound requests per network host. It is the
// sole serialization point between concurrent scrapes: callers hitting
// different hosts never block each other.
type HostLimiter interface {
	// Wait blocks until the limiter allows a request to the URL's host.
	// Returns an error only if the context is canceled first.
	Wait(ctx context.Context, url string) error

	// Reset atomically clears all per-host state.
	Reset()
}

// UserAgentProvider supplies client identity strings for outbound
// requests.
type UserAgentProvider interface {
	// UserAgent returns a realistic browser identity string.
	UserAgent() string
}
