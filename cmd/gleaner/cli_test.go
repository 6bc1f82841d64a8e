package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/gleanerhq/gleaner/cmd/gleaner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "gleaner")
	assert.Contains(t, stdout.String(), "--sources")
}

func TestCLI_RejectsUnknownFlags(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--definitely-not-a-flag"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestCLI_RejectsUnknownExtractor(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--extractor", "regex", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extractor")
}
