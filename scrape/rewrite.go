package scrape

import (
	"strings"

	"github.com/gleanerhq/gleaner"
)

// stackOverflowFeedURL is the platform's aggregate feed endpoint, far
// more reliable than scraping question listings.
const stackOverflowFeedURL = "https://stackoverflow.com/feeds"

// rewriteURL applies platform-specific rewrites that change the
// effective URL and force a source type, bypassing detection.
//
// Reddit subreddit and user pages have first-class RSS endpoints, so
// they are rewritten to their .rss form and routed to the feed
// strategy; comment threads have no feed equivalent and go to the
// platform (dynamic) strategy. StackOverflow question listings are
// redirected to the aggregate feed endpoint.
func rewriteURL(rawURL string) (string, gleaner.SourceType, bool) {
	if strings.Contains(rawURL, "reddit.com/r/") || strings.Contains(rawURL, "reddit.com/user/") {
		if strings.Contains(rawURL, "/comments/") {
			return rawURL, gleaner.SourceTypeReddit, true
		}
		if strings.HasSuffix(rawURL, ".rss") {
			return rawURL, gleaner.SourceTypeFeed, true
		}
		rewritten := strings.TrimRight(strings.TrimSpace(rawURL), "/") + ".rss"
		return rewritten, gleaner.SourceTypeFeed, true
	}

	if strings.Contains(rawURL, "stackoverflow.com") &&
		strings.Contains(rawURL, "/questions") &&
		!strings.HasSuffix(rawURL, ".rss") {
		return stackOverflowFeedURL, gleaner.SourceTypeFeed, true
	}

	return rawURL, gleaner.SourceTypeUnknown, false
}
