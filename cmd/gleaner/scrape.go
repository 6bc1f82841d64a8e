package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/scrape"
	"github.com/gleanerhq/gleaner/yaml"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Scraper *scrape.Scraper
	Loader  gleaner.SourceLoader
	Writer  gleaner.RecordWriter
}

// ScrapeCmd collects records from the given URLs or source list.
type ScrapeCmd struct {
	URLs    []string
	Limit   int
	Sources string
	Output  string
}

// Run executes the scrape command. Explicit URLs win over --sources;
// with neither, the built-in default source list is used.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	records, err := c.collect(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if err := deps.Writer.Write(c.Output, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", len(records), c.Output)
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\t%s\n", r.Date, r.Source, r.Title, r.Link)
	}
	fmt.Fprintf(deps.Stdout, "%d records\n", len(records))
	return nil
}

func (c *ScrapeCmd) collect(deps *Dependencies) ([]gleaner.Record, error) {
	if len(c.URLs) > 0 {
		return deps.Scraper.ScrapeAll(deps.Ctx, c.URLs, c.Limit)
	}

	configs := yaml.DefaultSources()
	if c.Sources != "" {
		loaded, err := deps.Loader.Load(c.Sources)
		if err != nil {
			return nil, err
		}
		configs = loaded
	}

	var all []gleaner.Record
	for i := range configs {
		config := configs[i]
		if c.Limit > 0 {
			config.MaxItems = c.Limit
		}
		records, err := deps.Scraper.ScrapeSource(deps.Ctx, &config)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return nil, err
			}
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", config.URL, gleaner.ErrorMessage(err))
			continue
		}
		all = append(all, records...)
	}
	return all, nil
}
