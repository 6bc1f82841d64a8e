package gleaner

import "context"

// ExtractResult holds the boilerplate-free content of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Author is the page author, if discoverable.
	Author string

	// Date is the publication date as found in the page metadata,
	// ISO-ish and unvalidated. Empty when unknown.
	Date string

	// Text is the main text with boilerplate (nav, footer, sidebar,
	// ads) removed. Empty means no meaningful content was found.
	Text string
}

// ContentExtractor extracts main content from HTML pages, removing
// boilerplate. The page URL helps metadata extraction and may be empty.
type ContentExtractor interface {
	Extract(html, pageURL string) (*ExtractResult, error)
}

// Extractor is an extraction strategy: it turns one validated source
// configuration into zero or more content items.
//
// Extract returns an error only for unrecoverable technical failure
// (download, network or render infrastructure); "found nothing" is a
// soft miss and yields an empty slice. Errors must name the source URL.
type Extractor interface {
	// CanHandle reports whether this strategy applies to the URL.
	CanHandle(url string) bool

	// Extract produces up to config.MaxItems content items.
	Extract(ctx context.Context, config *SourceConfig) ([]ContentItem, error)
}
