package trafilatura_test

import (
	"testing"

	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements gleaner.ContentExtractor at compile time.
var _ gleaner.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and article text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Rate Limiting Explained - Engineering Blog</title>
<meta property="og:title" content="Rate Limiting Explained">
</head>
<body>
<nav>Navigation here</nav>
<article>
<h1>Rate Limiting Explained</h1>
<p>Token buckets remain the most practical approach for pacing outbound requests.</p>
<p>This article walks through a production implementation.</p>
</article>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://blog.example.com/rate-limiting")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.Text, "Token buckets remain the most practical approach")
	})

	t.Run("strips navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
<li><a href="/archive">Archive</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com/post")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "actual content we want")
		assert.NotContains(t, result.Text, "main-nav")
	})

	t.Run("picks up author and date metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Post</title>
<meta name="author" content="Jo Author">
<meta property="article:published_time" content="2024-03-01T09:00:00Z">
</head>
<body>
<article>
<h1>Post</h1>
<p>A substantive paragraph with enough words to count as real content.</p>
</article>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "Jo Author", result.Author)
		assert.Equal(t, "2024-03-01", result.Date)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "https://example.com")

		require.Error(t, err)
		assert.Equal(t, gleaner.EINVALID, gleaner.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "https://example.com")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Simple content")
	})

	t.Run("tolerates unparsable page URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>Content without a usable origin.</p></article></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html, "::not-a-url::")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Content without a usable origin")
	})
}
