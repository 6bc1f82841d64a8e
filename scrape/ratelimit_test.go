package scrape_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements gleaner.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ gleaner.HostLimiter = scrape.NewHostLimiter(60)
	})

	t.Run("allows the first request immediately", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(60)

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://example.com/a")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces same-host requests by sixty over rate", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(60) // 60 req/min = 1s between requests

		require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://example.com/b")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond, "second request should wait out the interval")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(60)

		require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://other.com/a")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(30) // 2s between requests

		require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "https://example.com/b")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("reset clears per-host state", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(30) // 2s between requests

		require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))
		limiter.Reset()

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://example.com/b")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "reset should allow an immediate request")
	})

	t.Run("falls back to the default interval for non-positive rates", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(0)

		require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))

		// The second call would have to wait DefaultInterval; a short
		// context must therefore expire first.
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "https://example.com/b")
		assert.Error(t, err)
	})

	t.Run("throttles unparsable URLs under a shared key", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(30)

		require.NoError(t, limiter.Wait(context.Background(), "not a url"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "not a url")
		assert.Error(t, err, "same raw key should still be throttled")
	})

	t.Run("serializes concurrent same-host callers", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(6000) // 10ms between requests

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "https://example.com/a"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}
