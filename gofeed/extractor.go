// Package gofeed implements the feed extraction strategy on top of the
// gofeed RSS/Atom parser. One feed entry becomes one content item.
package gofeed

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gleanerhq/gleaner"
	"github.com/mmcdole/gofeed"
)

// Ensure Extractor implements gleaner.Extractor at compile time.
var _ gleaner.Extractor = (*Extractor)(nil)

// feedURLPattern matches URL shapes that conventionally serve feeds.
var feedURLPattern = regexp.MustCompile(`(?i)(/feed/?$|/rss/?$|/atom/?$|\.xml$|\.rss$)`)

// headerFetcher attaches per-request headers. Implemented by
// http.Fetcher; plain fetchers fall back to Fetch.
type headerFetcher interface {
	FetchWithHeaders(ctx context.Context, url string, headers map[string]string) (string, error)
}

// Extractor downloads a feed document and converts its entries into
// content items.
type Extractor struct {
	fetcher gleaner.Fetcher
	logger  *slog.Logger
}

// NewExtractor creates a feed Extractor using the given fetcher.
func NewExtractor(fetcher gleaner.Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{fetcher: fetcher, logger: logger}
}

// CanHandle reports whether the URL looks like a feed endpoint.
func (e *Extractor) CanHandle(rawURL string) bool {
	return feedURLPattern.MatchString(rawURL)
}

// Extract downloads and parses the feed at config.URL.
//
// A download failure is an extraction error naming the URL. A document
// that downloads but does not parse as a feed is a soft miss: logged
// and reported as zero items.
func (e *Extractor) Extract(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
	body, err := e.fetch(ctx, config)
	if err != nil {
		return nil, gleaner.Errorf(gleaner.EUNAVAILABLE, "feed download failed for %s: %v", config.URL, err)
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		e.logger.Warn("document is not a parsable feed", "url", config.URL, "err", err)
		return nil, nil
	}

	sourceName := config.Name
	if sourceName == "" {
		sourceName = strings.TrimSpace(feed.Title)
	}

	items := make([]gleaner.ContentItem, 0, min(len(feed.Items), config.MaxItems))
	for _, entry := range feed.Items {
		if len(items) >= config.MaxItems {
			break
		}
		items = append(items, e.item(entry, config, sourceName))
	}

	e.logger.Debug("feed parsed", "url", config.URL, "entries", len(feed.Items), "kept", len(items))
	return items, nil
}

// fetch applies per-source headers when both the config and the
// fetcher support them.
func (e *Extractor) fetch(ctx context.Context, config *gleaner.SourceConfig) (string, error) {
	if len(config.Headers) > 0 {
		if hf, ok := e.fetcher.(headerFetcher); ok {
			return hf.FetchWithHeaders(ctx, config.URL, config.Headers)
		}
	}
	return e.fetcher.Fetch(ctx, config.URL)
}

func (e *Extractor) item(entry *gofeed.Item, config *gleaner.SourceConfig, sourceName string) gleaner.ContentItem {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = "No Title"
	}

	content := strings.TrimSpace(entry.Description)
	if content == "" {
		content = strings.TrimSpace(entry.Content)
	}

	item := gleaner.ContentItem{
		SourceURL:   resolveLink(config.URL, entry.Link),
		SourceType:  gleaner.SourceTypeFeed,
		Title:       title,
		Content:     content,
		PublishedAt: publishedAt(entry),
		Author:      author(entry),
	}
	if sourceName != "" {
		item.Metadata = map[string]string{gleaner.MetadataSourceName: sourceName}
	}
	return item
}

// publishedAt prefers the published timestamp over updated, falling
// back to lenient parsing of the raw strings. Unparsable dates yield
// nil so downstream can substitute the current day.
func publishedAt(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed
	}
	for _, raw := range []string{entry.Published, entry.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return &t
		}
	}
	return nil
}

func author(entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	for _, a := range entry.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

// resolveLink makes relative entry links absolute against the feed URL.
func resolveLink(feedURL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return feedURL
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	if ref.IsAbs() {
		return link
	}
	base, err := url.Parse(feedURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
