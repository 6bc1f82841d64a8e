package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("parses sources with defaults applied", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
sources:
  - url: https://blog.example.com/feed
    name: Example Blog
  - url: https://forum.example.com/t/42
    type: dynamic_html
    max_items: 3
    force_render: true
    headers:
      Authorization: Bearer token
`)

		loader := yaml.NewLoader()
		configs, err := loader.Load(path)

		require.NoError(t, err)
		require.Len(t, configs, 2)

		assert.Equal(t, "https://blog.example.com/feed", configs[0].URL)
		assert.Equal(t, "Example Blog", configs[0].Name)
		assert.Equal(t, 8, configs[0].MaxItems, "max_items should default")
		assert.True(t, configs[0].Enabled, "sources default to enabled")
		assert.Empty(t, configs[0].Type)

		assert.Equal(t, gleaner.SourceTypeDynamicHTML, configs[1].Type)
		assert.Equal(t, 3, configs[1].MaxItems)
		assert.True(t, configs[1].ForceRender)
		assert.Equal(t, "Bearer token", configs[1].Headers["Authorization"])
	})

	t.Run("explicit enabled false survives", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
sources:
  - url: https://blog.example.com/feed
    enabled: false
`)

		loader := yaml.NewLoader()
		configs, err := loader.Load(path)

		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.False(t, configs[0].Enabled)
	})

	t.Run("rejects unknown source types", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
sources:
  - url: https://blog.example.com/feed
    type: carrier_pigeon
`)

		loader := yaml.NewLoader()
		_, err := loader.Load(path)

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("rejects invalid source URLs", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
sources:
  - url: ftp://example.com/feed
`)

		loader := yaml.NewLoader()
		_, err := loader.Load(path)

		require.Error(t, err)
	})

	t.Run("rejects empty source lists", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `sources: []`)

		loader := yaml.NewLoader()
		_, err := loader.Load(path)

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sources: [unclosed")

		loader := yaml.NewLoader()
		_, err := loader.Load(path)

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		loader := yaml.NewLoader()
		_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
	})
}

func TestDefaultSources(t *testing.T) {
	t.Parallel()

	sources := yaml.DefaultSources()

	require.Len(t, sources, 3)
	for _, s := range sources {
		assert.NoError(t, s.Validate())
		assert.True(t, s.Enabled)
		assert.Equal(t, gleaner.SourceTypeFeed, s.Type)
	}
	assert.Equal(t, "TechCrunch", sources[0].Name)
}
