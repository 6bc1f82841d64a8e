package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gleanerhq/gleaner"
	"github.com/gleanerhq/gleaner/fs"
	"github.com/gleanerhq/gleaner/gofeed"
	gleanerhttp "github.com/gleanerhq/gleaner/http"
	"github.com/gleanerhq/gleaner/readability"
	"github.com/gleanerhq/gleaner/rod"
	"github.com/gleanerhq/gleaner/scrape"
	gleanerslog "github.com/gleanerhq/gleaner/slog"
	"github.com/gleanerhq/gleaner/trafilatura"
	"github.com/gleanerhq/gleaner/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string `arg:"" optional:"" help:"Source URLs to scrape (omit to use the default or --sources list)"`
	Limit       int      `short:"l" default:"8" help:"Maximum items per source"`
	Sources     string   `short:"s" help:"YAML file with source configurations"`
	Output      string   `short:"o" help:"Write records to this CSV file instead of stdout"`
	RPM         int      `default:"30" help:"Requests per minute per host"`
	Extractor   string   `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction engine"`
	Concurrency int      `short:"c" default:"1" help:"Concurrent source limit"`
	NoBrowser   bool     `help:"Disable headless browser rendering"`
	Verbose     bool     `short:"v" help:"Enable debug logging"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gleaner"),
		kong.Description("Scrape feeds, articles and forum threads into normalized records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	userAgents := scrape.NewUserAgents()
	fetcher := gleanerhttp.NewFetcher(gleanerhttp.WithUserAgents(userAgents))
	defer fetcher.Close()

	var renderer gleaner.Renderer
	if !cli.NoBrowser {
		r, err := rod.NewRenderer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: install Chrome or Chromium, or pass --no-browser")
			fmt.Fprintf(stderr, "continuing without browser rendering: %v\n", err)
		} else {
			renderer = rod.NewLoggingRenderer(r, logger)
			defer r.Close()
		}
	}

	var extractor gleaner.ContentExtractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	static := scrape.NewStatic(fetcher, extractor, logger)
	dynamic := scrape.NewDynamic(renderer, extractor, logger)
	feed := gofeed.NewExtractor(fetcher, logger)

	scraper := &scrape.Scraper{
		Detector: gleanerslog.NewLoggingDetector(scrape.NewDetector(fetcher, logger), logger),
		Limiter:  scrape.NewHostLimiter(cli.RPM),
		Strategies: map[gleaner.SourceType]gleaner.Extractor{
			gleaner.SourceTypeFeed:          feed,
			gleaner.SourceTypeStaticHTML:    static,
			gleaner.SourceTypeDynamicHTML:   dynamic,
			gleaner.SourceTypeReddit:        dynamic,
			gleaner.SourceTypeStackOverflow: dynamic,
			gleaner.SourceTypeGenericForum:  dynamic,
		},
		Fallback:    static,
		Logger:      logger,
		Concurrency: cli.Concurrency,
		OnResult: func(r gleaner.ExtractionResult) {
			status := "ok"
			if !r.Success {
				status = "failed"
			}
			fmt.Fprintf(stderr, "%s %s items=%d elapsed=%s\n", status, r.Config.URL, r.ItemCount, r.Elapsed.Round(time.Millisecond))
		},
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Scraper: scraper,
		Loader:  yaml.NewLoader(),
		Writer:  fs.NewWriter(),
	}

	cmd := &ScrapeCmd{
		URLs:    cli.URLs,
		Limit:   cli.Limit,
		Sources: cli.Sources,
		Output:  cli.Output,
	}

	return cmd.Run(deps)
}
