package scrape

import (
	"math/rand/v2"

	"github.com/gleanerhq/gleaner"
)

var _ gleaner.UserAgentProvider = (*UserAgents)(nil)

// defaultUserAgents is a curated pool of current browser identities.
var defaultUserAgents = []string{
	// Chrome on Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	// Chrome on macOS
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	// Firefox on Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
	// Firefox on macOS
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
	// Safari on macOS
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	// Edge on Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
}

// UserAgents supplies rotating browser identity strings. A custom
// identity disables rotation.
type UserAgents struct {
	custom string
	pool   []string
}

// UserAgentsOption configures a UserAgents provider.
type UserAgentsOption func(*UserAgents)

// WithCustomUserAgent pins the provider to a single identity string.
func WithCustomUserAgent(ua string) UserAgentsOption {
	return func(u *UserAgents) {
		u.custom = ua
	}
}

// NewUserAgents creates a provider backed by the default identity pool.
func NewUserAgents(opts ...UserAgentsOption) *UserAgents {
	u := &UserAgents{pool: defaultUserAgents}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UserAgent returns a client identity string, random from the pool
// unless a custom identity is configured.
func (u *UserAgents) UserAgent() string {
	if u.custom != "" {
		return u.custom
	}
	return u.pool[rand.IntN(len(u.pool))]
}
