package mock

import (
	"github.com/gleanerhq/gleaner"
)

var _ gleaner.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of gleaner.SourceLoader.
type SourceLoader struct {
	LoadFn func(path string) ([]gleaner.SourceConfig, error)
}

func (l *SourceLoader) Load(path string) ([]gleaner.SourceConfig, error) {
	return l.LoadFn(path)
}

var _ gleaner.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of gleaner.RecordWriter.
type RecordWriter struct {
	WriteFn func(path string, records []gleaner.Record) error
}

func (w *RecordWriter) Write(path string, records []gleaner.Record) error {
	return w.WriteFn(path, records)
}
