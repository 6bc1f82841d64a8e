package gleaner

import (
	"context"
	"strings"
)

// SourceType classifies a source's content delivery shape. The set is
// closed: detector output and routing tables only ever use these values.
type SourceType string

// Supported source types.
const (
	SourceTypeFeed          SourceType = "feed"
	SourceTypeStaticHTML    SourceType = "static_html"
	SourceTypeDynamicHTML   SourceType = "dynamic_html"
	SourceTypeReddit        SourceType = "reddit"
	SourceTypeStackOverflow SourceType = "stackoverflow"
	SourceTypeGenericForum  SourceType = "generic_forum"
	SourceTypeUnsupported   SourceType = "unsupported"
	SourceTypeUnknown       SourceType = "unknown"
)

// String returns the type's tag.
func (t SourceType) String() string { return string(t) }

// Valid reports whether t is one of the closed set of source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeFeed, SourceTypeStaticHTML, SourceTypeDynamicHTML,
		SourceTypeReddit, SourceTypeStackOverflow, SourceTypeGenericForum,
		SourceTypeUnsupported, SourceTypeUnknown:
		return true
	}
	return false
}

// SourceConfig describes a single source to scrape. It is created once
// per scrape request and must not be mutated afterwards.
type SourceConfig struct {
	// Absolute http(s) URL of the source.
	URL string

	// Human-readable display name, used for the normalized record's
	// source field.
	Name string

	// Optional source type override. Empty means auto-detect.
	Type SourceType

	// Maximum number of items a strategy may return. Must be >= 1.
	MaxItems int

	// Optional custom request headers.
	Headers map[string]string

	// Enabled sources are scraped; disabled ones are skipped.
	Enabled bool

	// ForceRender routes the source to the dynamic strategy regardless
	// of detection.
	ForceRender bool
}

// Validate returns an error if the config contains invalid fields.
func (c *SourceConfig) Validate() error {
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return Errorf(EINVALID, "source URL must be absolute http(s): %q", c.URL)
	}
	if c.MaxItems < 1 {
		return Errorf(EINVALID, "max items must be at least 1")
	}
	return nil
}

// Detector classifies a URL into a source type.
type Detector interface {
	// Detect returns the source type for a URL. It never fails: on any
	// internal error it returns SourceTypeStaticHTML as the safe
	// default. Network probes it issues are bounded by the context and
	// an internal timeout.
	Detect(ctx context.Context, url string) SourceType

	// IsSupported reports whether the URL is syntactically scrapeable
	// (absolute, with scheme and host). It performs no classification.
	IsSupported(url string) bool
}

// SourceLoader reads source configurations from a file.
type SourceLoader interface {
	Load(path string) ([]SourceConfig, error)
}
