package scrape

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gleanerhq/gleaner"
	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between same-host requests when
// no requests-per-minute ceiling is configured.
const DefaultInterval = 2 * time.Second

var _ gleaner.HostLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1, so concurrent
// requests to different hosts never block each other while requests
// within one host are spaced by the configured minimum interval.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter from a requests-per-minute
// ceiling. A ceiling of zero or less falls back to DefaultInterval
// between requests.
func NewHostLimiter(requestsPerMinute int) *HostLimiter {
	limit := rate.Every(DefaultInterval)
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the URL's host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := hostKey(rawURL)

	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(h.limit, 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

// Reset atomically clears all per-host state.
func (h *HostLimiter) Reset() {
	h.mu.Lock()
	h.limiters = make(map[string]*rate.Limiter)
	h.mu.Unlock()
}

// hostKey extracts the host for per-host tracking. Unparsable input
// falls back to the raw string so throttling still applies.
func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
