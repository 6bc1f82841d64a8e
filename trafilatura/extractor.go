// Package trafilatura strips boilerplate from HTML using go-trafilatura,
// returning the main article text plus whatever metadata the page
// declares.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/gleanerhq/gleaner"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements gleaner.ContentExtractor at compile time.
var _ gleaner.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The page
// URL, when parsable, improves trafilatura's metadata extraction.
func (e *Extractor) Extract(rawHTML, pageURL string) (*gleaner.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, gleaner.Errorf(gleaner.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var date string
	if !result.Metadata.Date.IsZero() {
		date = result.Metadata.Date.Format("2006-01-02")
	}

	return &gleaner.ExtractResult{
		Title:  result.Metadata.Title,
		Author: result.Metadata.Author,
		Date:   date,
		Text:   strings.TrimSpace(result.ContentText),
	}, nil
}
