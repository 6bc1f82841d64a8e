package mock

import (
	"context"

	"github.com/gleanerhq/gleaner"
)

var _ gleaner.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of gleaner.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html, pageURL string) (*gleaner.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html, pageURL string) (*gleaner.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

var _ gleaner.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of the gleaner.Extractor strategy.
type Extractor struct {
	CanHandleFn  func(url string) bool
	ExtractCfgFn func(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error)
}

func (e *Extractor) CanHandle(url string) bool {
	return e.CanHandleFn(url)
}

func (e *Extractor) Extract(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
	return e.ExtractCfgFn(ctx, config)
}
