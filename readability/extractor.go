// Package readability strips boilerplate from HTML using
// go-readability, as an alternative to the trafilatura extractor.
package readability

import (
	"net/url"
	"strings"

	"github.com/gleanerhq/gleaner"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements gleaner.ContentExtractor at compile time.
var _ gleaner.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Readability
// does not recover publication dates, so Date is always empty.
func (e *Extractor) Extract(rawHTML, pageURL string) (*gleaner.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, gleaner.Errorf(gleaner.EINVALID, "empty HTML input")
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return nil, err
	}

	return &gleaner.ExtractResult{
		Title:  strings.TrimSpace(article.Title),
		Author: strings.TrimSpace(article.Byline),
		Text:   strings.TrimSpace(article.TextContent),
	}, nil
}
