package gleaner

import "time"

// MetadataSourceName is the metadata key under which strategies record
// the configured display name of the source that produced an item.
const MetadataSourceName = "source_name"

// ContentItem is the unified item model every extraction strategy
// produces. Ownership transfers to the orchestrator, which converts it
// to a Record; items are not mutated after creation.
type ContentItem struct {
	SourceURL   string
	SourceType  SourceType
	Title       string
	Content     string
	PublishedAt *time.Time
	Author      string
	Metadata    map[string]string
}

// Record is the normalized external output shape consumed by downstream
// export.
type Record struct {
	Title   string
	Link    string
	Content string
	Date    string // YYYY-MM-DD
	Source  string
}

// ExtractionResult records the outcome of a single extraction attempt.
// It exists for observability only; correctness never depends on it.
type ExtractionResult struct {
	Config    SourceConfig
	Items     []ContentItem
	Success   bool
	Err       string
	Elapsed   time.Duration
	ItemCount int
}

// RecordWriter persists normalized records to a file.
type RecordWriter interface {
	Write(path string, records []Record) error
}
