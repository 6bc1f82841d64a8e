package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gleanerhq/gleaner"
)

// Ensure LoggingExtractor implements gleaner.Extractor.
var _ gleaner.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an extraction strategy with duration and
// outcome logging.
type LoggingExtractor struct {
	next   gleaner.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next gleaner.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// CanHandle delegates to the wrapped strategy.
func (e *LoggingExtractor) CanHandle(url string) bool {
	return e.next.CanHandle(url)
}

// Extract delegates to the wrapped strategy and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, config *gleaner.SourceConfig) (items []gleaner.ContentItem, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extraction",
			"url", config.URL,
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, config)
}
