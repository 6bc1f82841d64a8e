package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/mock"
	gleanerslog "github.com/gleanerhq/gleaner/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	config := &gleaner.SourceConfig{
		URL:      "https://example.com/feed",
		MaxItems: 5,
		Enabled:  true,
	}

	t.Run("logs item count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractCfgFn: func(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
				return []gleaner.ContentItem{
					{Title: "a"},
					{Title: "b"},
				}, nil
			},
		}

		e := gleanerslog.NewLoggingExtractor(inner, logger)
		items, err := e.Extract(context.Background(), config)

		require.NoError(t, err)
		assert.Len(t, items, 2)
		output := buf.String()
		assert.Contains(t, output, "extraction")
		assert.Contains(t, output, "url=https://example.com/feed")
		assert.Contains(t, output, "items=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractCfgFn: func(ctx context.Context, config *gleaner.SourceConfig) ([]gleaner.ContentItem, error) {
				return nil, errors.New("connection failed")
			},
		}

		e := gleanerslog.NewLoggingExtractor(inner, logger)
		_, err := e.Extract(context.Background(), config)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "extraction")
		assert.Contains(t, output, "err=\"connection failed\"")
	})

	t.Run("CanHandle delegates without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			CanHandleFn: func(url string) bool { return true },
		}

		e := gleanerslog.NewLoggingExtractor(inner, logger)

		assert.True(t, e.CanHandle("https://example.com"))
		assert.Empty(t, buf.String())
	})
}
