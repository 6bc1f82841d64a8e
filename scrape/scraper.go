// Package scrape provides source-type detection and extraction routing:
// given an arbitrary URL it decides which extraction strategy applies,
// paces requests per host, and normalizes whatever the strategy
// produces, degrading per-URL failures to empty results.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gleanerhq/gleaner"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxItems caps items per source when the caller does not say
// otherwise.
const DefaultMaxItems = 10

// Scraper routes URLs to extraction strategies and aggregates
// normalized records across many sources.
type Scraper struct {
	Detector   gleaner.Detector
	Limiter    gleaner.HostLimiter
	Strategies map[gleaner.SourceType]gleaner.Extractor

	// Fallback handles every source type without a registered strategy.
	// Conventionally the static-HTML strategy.
	Fallback gleaner.Extractor

	Logger *slog.Logger

	// Concurrency bounds ScrapeAll's parallelism across URLs. Zero or
	// less means sequential, matching the reference behavior.
	Concurrency int

	// OnResult, when set, receives one ExtractionResult per attempt.
	// With Concurrency > 1 it must be safe for concurrent use.
	OnResult func(gleaner.ExtractionResult)

	// Now returns the current time. Defaults to time.Now; overridable
	// for tests.
	Now func() time.Time
}

// Scrape fetches a single URL and returns normalized records.
//
// Validation failures (malformed URL, maxItems < 1) are reported
// synchronously with EINVALID before any network action. Strategy
// failures are downgraded: the error is logged and an empty slice
// returned, so callers observe failure only as zero records.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, maxItems int, name string) ([]gleaner.Record, error) {
	config := &gleaner.SourceConfig{
		URL:      strings.TrimSpace(rawURL),
		Name:     name,
		MaxItems: maxItems,
		Enabled:  true,
	}
	return s.ScrapeSource(ctx, config)
}

// ScrapeSource scrapes one configured source. Disabled sources are
// skipped silently. The config is not mutated; rewrites and detection
// operate on a copy.
func (s *Scraper) ScrapeSource(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.Record, error) {
	if !config.Enabled {
		s.logger().Debug("source disabled, skipping", "url", config.URL)
		return nil, nil
	}

	if err := config.Validate(); err != nil {
		s.logger().Error("invalid source rejected", "url", config.URL, "err", err)
		return nil, err
	}
	if !wellFormedURL(config.URL) {
		err := gleaner.Errorf(gleaner.EINVALID, "malformed URL: %q", config.URL)
		s.logger().Error("invalid source rejected", "url", config.URL, "err", err)
		return nil, err
	}

	cfg := *config
	cfg.URL, cfg.Type = s.resolve(ctx, &cfg)
	s.logger().Info("routing source", "url", cfg.URL, "type", cfg.Type)

	if err := s.Limiter.Wait(ctx, cfg.URL); err != nil {
		return nil, err
	}

	strategy, ok := s.Strategies[cfg.Type]
	if !ok {
		strategy = s.Fallback
	}

	begin := time.Now()
	items, err := strategy.Extract(ctx, &cfg)

	if s.OnResult != nil {
		result := gleaner.ExtractionResult{
			Config:    cfg,
			Items:     items,
			Success:   err == nil,
			Elapsed:   time.Since(begin),
			ItemCount: len(items),
		}
		if err != nil {
			result.Err = err.Error()
		}
		s.OnResult(result)
	}

	if err != nil {
		s.logger().Error("extraction failed", "url", cfg.URL, "err", err)
		return nil, nil
	}

	records := make([]gleaner.Record, 0, len(items))
	for _, item := range items {
		records = append(records, s.record(item, cfg.URL, config.Name, cfg.Type))
	}
	return records, nil
}

// ScrapeAll scrapes many URLs and concatenates their records in input
// order. Per-URL failures (including invalid URLs) are logged and
// skipped; the batch never aborts. Returns an error only if the
// context is canceled.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, maxItems int) ([]gleaner.Record, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([][]gleaner.Record, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rawURL := range urls {
		rawURL := strings.TrimSpace(rawURL)
		if rawURL == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := s.Scrape(gctx, rawURL, maxItems, "")
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				s.logger().Error("skipping URL", "url", rawURL, "err", err)
				return nil
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []gleaner.Record
	for _, records := range results {
		all = append(all, records...)
	}
	return all, nil
}

// resolve determines the effective URL and source type for a config:
// explicit overrides win, then platform rewrites, then detection.
func (s *Scraper) resolve(ctx context.Context, cfg *gleaner.SourceConfig) (string, gleaner.SourceType) {
	if cfg.ForceRender {
		return cfg.URL, gleaner.SourceTypeDynamicHTML
	}
	if cfg.Type != "" && cfg.Type != gleaner.SourceTypeUnknown {
		return cfg.URL, cfg.Type
	}

	if rewritten, forced, ok := rewriteURL(cfg.URL); ok {
		if rewritten != cfg.URL {
			s.logger().Info("platform rewrite", "url", cfg.URL, "rewritten", rewritten)
		}
		return rewritten, forced
	}

	return cfg.URL, s.Detector.Detect(ctx, cfg.URL)
}

// record converts a ContentItem to the external normalized shape.
func (s *Scraper) record(item gleaner.ContentItem, effectiveURL, callerName string, st gleaner.SourceType) gleaner.Record {
	date := s.now()
	if item.PublishedAt != nil {
		date = *item.PublishedAt
	}

	source := callerName
	if source == "" {
		if meta := item.Metadata[gleaner.MetadataSourceName]; meta != "" && meta != st.String() {
			source = meta
		}
	}
	if source == "" {
		source = domainName(effectiveURL)
	}

	return gleaner.Record{
		Title:   item.Title,
		Link:    item.SourceURL,
		Content: item.Content,
		Date:    date.Format("2006-01-02"),
		Source:  source,
	}
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Scraper) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// wellFormedURL reports whether the URL parses as absolute with a host.
func wellFormedURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// domainName derives a bare domain from a URL, with the leading www.
// stripped. Example: https://www.reddit.com/r/golang → reddit.com.
func domainName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
