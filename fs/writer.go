// Package fs provides file-based export of scraped records.
package fs

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/gleanerhq/gleaner"
)

// csvHeader is the column order of exported files.
var csvHeader = []string{"Title", "Date", "Source", "Link", "Content"}

// Ensure Writer implements gleaner.RecordWriter at compile time.
var _ gleaner.RecordWriter = (*Writer)(nil)

// Writer exports records as a CSV file, one row per record.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write creates the file at path (parent directories included) and
// writes a header row followed by one row per record.
func (w *Writer) Write(path string, records []gleaner.Record) error {
	if path == "" {
		return gleaner.Errorf(gleaner.EINVALID, "output path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Title, r.Date, r.Source, r.Link, r.Content}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return f.Close()
}
