package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gleanerhq/gleaner"
)

var _ gleaner.Extractor = (*Static)(nil)

// Static extracts content from standard HTML pages: it downloads the
// page and runs boilerplate-stripping extraction, producing exactly one
// item for the whole page.
type Static struct {
	fetcher   gleaner.Fetcher
	extractor gleaner.ContentExtractor
	logger    *slog.Logger
}

// NewStatic creates the static-HTML strategy.
func NewStatic(fetcher gleaner.Fetcher, extractor gleaner.ContentExtractor, logger *slog.Logger) *Static {
	return &Static{fetcher: fetcher, extractor: extractor, logger: logger}
}

// CanHandle accepts any absolute http(s) URL; Static is the fallback
// strategy for most of the web.
func (s *Static) CanHandle(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// Extract downloads the page and strips boilerplate. Download failure
// and "no meaningful content" are both soft misses yielding an empty
// slice; only unexpected internal failures return an error.
func (s *Static) Extract(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
	body, err := s.fetcher.Fetch(ctx, config.URL)
	if err != nil {
		s.logger.Warn("download failed", "url", config.URL, "err", err)
		return nil, nil
	}

	result, err := s.extractor.Extract(body, config.URL)
	if err != nil || result == nil || result.Text == "" {
		s.logger.Warn("no meaningful content found", "url", config.URL, "err", err)
		return nil, nil
	}

	item := contentItem(config, result, gleaner.SourceTypeStaticHTML)
	return []gleaner.ContentItem{item}, nil
}

// contentItem builds the single ContentItem for a whole-page
// extraction.
func contentItem(config *gleaner.SourceConfig, result *gleaner.ExtractResult, st gleaner.SourceType) gleaner.ContentItem {
	title := result.Title
	if title == "" {
		title = "No Title"
	}

	return gleaner.ContentItem{
		SourceURL:   config.URL,
		SourceType:  st,
		Title:       title,
		Content:     result.Text,
		PublishedAt: parsePublished(result.Date),
		Author:      result.Author,
		Metadata:    map[string]string{gleaner.MetadataSourceName: config.Name},
	}
}

// parsePublished parses an ISO-ish date string. It fails open: a
// missing or unparsable date yields nil, never an error.
func parsePublished(date string) *time.Time {
	if date == "" {
		return nil
	}
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return nil
	}
	return &t
}
