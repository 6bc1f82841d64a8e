package scrape

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gleanerhq/gleaner"
)

// Render tuning for Reddit pages, which keep hydrating well after the
// load event.
const (
	redditSettleDelay     = 3 * time.Second
	redditPostSelector    = "shreddit-post"
	redditSelectorTimeout = 5 * time.Second
)

// defaultChallengeMarkers identify bot-verification interstitials in
// rendered markup. The set is host-specific and fragile, hence
// configurable data rather than logic.
var defaultChallengeMarkers = []string{
	"Checking if the site connection is secure",
	"Verification",
	"Access Denied",
}

var _ gleaner.Extractor = (*Dynamic)(nil)

// Dynamic extracts content from JavaScript-rendered pages by delegating
// to a headless-browser Renderer, then running the same
// boilerplate-stripping extraction as the static strategy against the
// rendered markup.
type Dynamic struct {
	renderer  gleaner.Renderer
	extractor gleaner.ContentExtractor
	logger    *slog.Logger
	markers   []string
}

// DynamicOption configures a Dynamic strategy.
type DynamicOption func(*Dynamic)

// WithChallengeMarkers replaces the substrings used to recognize
// bot-challenge pages.
func WithChallengeMarkers(markers []string) DynamicOption {
	return func(d *Dynamic) {
		d.markers = markers
	}
}

// NewDynamic creates the dynamic-HTML strategy. A nil renderer is
// allowed at construction; extraction then fails with EUNAVAILABLE,
// since no fallback exists for JavaScript-rendered sources.
func NewDynamic(renderer gleaner.Renderer, extractor gleaner.ContentExtractor, logger *slog.Logger, opts ...DynamicOption) *Dynamic {
	d := &Dynamic{
		renderer:  renderer,
		extractor: extractor,
		logger:    logger,
		markers:   defaultChallengeMarkers,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CanHandle targets known JavaScript-heavy platforms.
func (d *Dynamic) CanHandle(url string) bool {
	for _, platform := range []string{"reddit.com", "stackoverflow.com", "instagram.com", "twitter.com", "x.com"} {
		if strings.Contains(url, platform) {
			return true
		}
	}
	return false
}

// Extract renders the page and strips boilerplate from the result.
// Bot-challenge pages and empty renders are soft misses; navigation
// timeouts and other browser failures are extraction errors carrying
// the URL.
func (d *Dynamic) Extract(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
	if d.renderer == nil {
		return nil, gleaner.Errorf(gleaner.EUNAVAILABLE, "headless browser unavailable, cannot render %s", config.URL)
	}

	opts := gleaner.RenderOptions{}
	if strings.Contains(config.URL, "reddit.com") {
		opts.SettleDelay = redditSettleDelay
		opts.WaitSelector = redditPostSelector
		opts.SelectorTimeout = redditSelectorTimeout
	}

	html, err := d.renderer.Render(ctx, config.URL, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || gleaner.ErrorCode(err) == gleaner.ETIMEOUT {
			return nil, gleaner.Errorf(gleaner.ETIMEOUT, "page load timed out for %s: the site may be slow or blocking headless browsers", config.URL)
		}
		return nil, gleaner.Errorf(gleaner.EINTERNAL, "render failed for %s: %v", config.URL, err)
	}

	if html == "" {
		d.logger.Warn("renderer returned an empty page", "url", config.URL)
		return nil, nil
	}

	for _, marker := range d.markers {
		if strings.Contains(html, marker) {
			d.logger.Warn("bot challenge page detected", "url", config.URL, "marker", marker)
			return nil, nil
		}
	}

	result, err := d.extractor.Extract(html, config.URL)
	if err != nil || result == nil || result.Text == "" {
		d.logger.Warn("no content found in rendered markup", "url", config.URL, "err", err)
		return nil, nil
	}

	item := contentItem(config, result, gleaner.SourceTypeDynamicHTML)
	return []gleaner.ContentItem{item}, nil
}
