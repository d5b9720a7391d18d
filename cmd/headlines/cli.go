package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/scrape"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL          string        `xor:"mode" placeholder:"URL" help:"Scrape a single news site"`
	All          bool          `xor:"mode" help:"Scrape every built-in news source"`
	Sentiment    bool          `short:"s" help:"Score headline sentiment and print the overall mean"`
	Scorer       string        `enum:"vader,gemini" default:"vader" env:"HEADLINES_SCORER" help:"Sentiment scorer (${enum})"`
	Browser      bool          `help:"Render pages in headless Chrome"`
	Timeout      time.Duration `env:"HEADLINES_TIMEOUT" help:"Fetch timeout per page (0 means no timeout)"`
	StrictStatus bool          `help:"Treat non-2xx HTTP responses as network errors"`
	Concurrency  int           `short:"c" default:"1" help:"Sources fetched at once with --all"`
	Interval     time.Duration `help:"Minimum time between requests to the same host"`
	SkipFailed   bool          `help:"With --all, skip sources that fail instead of aborting"`
	Verbose      bool          `short:"v" help:"Log diagnostics to stderr"`
}

// Validate requires exactly one of --url and --all.
func (c *CLI) Validate() error {
	if c.URL == "" && !c.All {
		return fmt.Errorf("one of --url or --all is required")
	}
	if c.URL != "" && c.All {
		return fmt.Errorf("--url and --all can't be used together")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	return nil
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Scraper *scrape.Scraper
	Scorer  headlines.Scorer
}

// HeadlinesCmd scrapes one site or every source and prints the result.
type HeadlinesCmd struct {
	URL       string
	All       bool
	Sources   []headlines.Source
	Sentiment bool
}

// Run executes the command.
func (c *HeadlinesCmd) Run(deps *Dependencies) error {
	hs, err := c.scrape(deps)
	if err != nil {
		return err
	}

	if !c.Sentiment {
		_, err := io.WriteString(deps.Stdout, headlines.FormatHeadlines(hs))
		return err
	}

	report, err := headlines.Aggregate(deps.Ctx, deps.Scorer, hs)
	if err != nil {
		return err
	}
	_, err = io.WriteString(deps.Stdout, headlines.FormatReport(report))
	return err
}

func (c *HeadlinesCmd) scrape(deps *Dependencies) ([]string, error) {
	if !c.All {
		return deps.Scraper.Scrape(deps.Ctx, c.URL)
	}

	return deps.Scraper.ScrapeAll(deps.Ctx, c.Sources, func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressCompleted:
			deps.Logger.Info("source done",
				"source", e.Source.Name,
				"headlines", e.Headlines,
				"progress", fmt.Sprintf("%d/%d", e.Completed, e.Total),
			)
		case scrape.ProgressFailed:
			deps.Logger.Warn("source failed",
				"source", e.Source.Name,
				"err", e.Error,
			)
			if deps.Scraper.SkipFailed {
				fmt.Fprintf(deps.Stderr, "warning: skipped %s: %s\n", e.Source.Name, errorMessage(e.Error))
			}
		}
	})
}
