// Package slog provides logging decorators for the core gleaner
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gleanerhq/gleaner"
)

// Ensure LoggingDetector implements gleaner.Detector.
var _ gleaner.Detector = (*LoggingDetector)(nil)

// LoggingDetector wraps a Detector with outcome logging.
type LoggingDetector struct {
	next   gleaner.Detector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next gleaner.Detector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the decision.
func (d *LoggingDetector) Detect(ctx context.Context, url string) gleaner.SourceType {
	begin := time.Now()
	st := d.next.Detect(ctx, url)
	d.logger.Info("source type detection",
		"url", url,
		"type", st.String(),
		"duration", time.Since(begin),
	)
	return st
}

// IsSupported delegates to the wrapped detector.
func (d *LoggingDetector) IsSupported(url string) bool {
	return d.next.IsSupported(url)
}
