// Package yaml loads source lists from YAML files.
package yaml

import (
	"fmt"
	"os"

	"github.com/gleanerhq/gleaner"
	"gopkg.in/yaml.v3"
)

// defaultMaxItems applies to sources that don't set max_items.
const defaultMaxItems = 8

// Ensure Loader implements gleaner.SourceLoader at compile time.
var _ gleaner.SourceLoader = (*Loader)(nil)

// sourceEntry is the on-disk shape of one source.
type sourceEntry struct {
	URL         string            `yaml:"url"`
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	MaxItems    int               `yaml:"max_items"`
	Headers     map[string]string `yaml:"headers"`
	Enabled     *bool             `yaml:"enabled"`
	ForceRender bool              `yaml:"force_render"`
}

// sourceFile is the on-disk shape of a source list.
type sourceFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

// Loader reads source configurations from a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the YAML file at path and returns validated source
// configurations. Sources default to enabled with defaultMaxItems.
func (l *Loader) Load(path string) ([]gleaner.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	var file sourceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "parsing source file %s: %v", path, err)
	}
	if len(file.Sources) == 0 {
		return nil, gleaner.Errorf(gleaner.EINVALID, "source file %s lists no sources", path)
	}

	configs := make([]gleaner.SourceConfig, 0, len(file.Sources))
	for i, entry := range file.Sources {
		config := gleaner.SourceConfig{
			URL:         entry.URL,
			Name:        entry.Name,
			Type:        gleaner.SourceType(entry.Type),
			MaxItems:    entry.MaxItems,
			Headers:     entry.Headers,
			Enabled:     true,
			ForceRender: entry.ForceRender,
		}
		if entry.Enabled != nil {
			config.Enabled = *entry.Enabled
		}
		if config.MaxItems == 0 {
			config.MaxItems = defaultMaxItems
		}
		if config.Type != "" && !config.Type.Valid() {
			return nil, gleaner.Errorf(gleaner.EINVALID, "source %d: unknown type %q", i, entry.Type)
		}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// DefaultSources is the source list used when no file is given,
// preserving the system's original feed lineup.
func DefaultSources() []gleaner.SourceConfig {
	return []gleaner.SourceConfig{
		{
			URL:      "https://techcrunch.com/tag/artificial-intelligence/feed/",
			Name:     "TechCrunch",
			Type:     gleaner.SourceTypeFeed,
			MaxItems: defaultMaxItems,
			Enabled:  true,
		},
		{
			URL:      "https://www.technologyreview.com/feed/",
			Name:     "MIT Technology Review",
			Type:     gleaner.SourceTypeFeed,
			MaxItems: defaultMaxItems,
			Enabled:  true,
		},
		{
			URL:      "https://analyticsindiamag.com/feed/",
			Name:     "Analytics India Magazine",
			Type:     gleaner.SourceTypeFeed,
			MaxItems: defaultMaxItems,
			Enabled:  true,
		},
	}
}
