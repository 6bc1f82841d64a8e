package mock

import (
	"context"

	"github.com/gleanerhq/gleaner"
)

var _ gleaner.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of gleaner.HostLimiter.
// The zero value is a limiter that never waits.
type HostLimiter struct {
	WaitFn  func(ctx context.Context, url string) error
	ResetFn func()
}

func (l *HostLimiter) Wait(ctx context.Context, url string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, url)
}

func (l *HostLimiter) Reset() {
	if l.ResetFn != nil {
		l.ResetFn()
	}
}

var _ gleaner.UserAgentProvider = (*UserAgentProvider)(nil)

// UserAgentProvider is a mock implementation of gleaner.UserAgentProvider.
type UserAgentProvider struct {
	UserAgentFn func() string
}

func (p *UserAgentProvider) UserAgent() string {
	return p.UserAgentFn()
}
