package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/gemini"
	"github.com/fwojciec/headlines/goquery"
	hhttp "github.com/fwojciec/headlines/http"
	"github.com/fwojciec/headlines/rod"
	"github.com/fwojciec/headlines/scrape"
	hslog "github.com/fwojciec/headlines/slog"
	"github.com/fwojciec/headlines/vader"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Sources scraped by --all. Defaults to headlines.DefaultSources().
	Sources []headlines.Source

	// Overrides for end-to-end testing.
	Fetcher headlines.Fetcher
	Scorer  headlines.Scorer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Sources: headlines.DefaultSources(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("headlines"),
		kong.Description("Scrape news front pages for headlines and optionally score their sentiment"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.Validate(); err != nil {
		return err
	}

	logger := newLogger(cli.Verbose, stderr).With("run", uuid.NewString())

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	fetcher, err := m.fetcher(cli, stderr)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	deps.Scraper = &scrape.Scraper{
		Fetcher:     hslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   hslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Concurrency: cli.Concurrency,
		SkipFailed:  cli.SkipFailed,
	}
	if cli.Interval > 0 {
		deps.Scraper.RateLimiter = scrape.NewHostLimiter(cli.Interval)
	}

	if cli.Sentiment {
		scorer, err := m.scorer(ctx, cli, stderr)
		if err != nil {
			return err
		}
		deps.Scorer = hslog.NewLoggingScorer(scorer, logger)
	}

	cmd := &HeadlinesCmd{
		URL:       cli.URL,
		All:       cli.All,
		Sources:   m.Sources,
		Sentiment: cli.Sentiment,
	}

	return cmd.Run(deps)
}

func (m *Main) fetcher(cli *CLI, stderr io.Writer) (headlines.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}

	opts := []hhttp.Option{hhttp.WithTimeout(cli.Timeout)}
	if cli.StrictStatus {
		opts = append(opts, hhttp.WithStatusCheck())
	}
	return hhttp.NewFetcher(opts...), nil
}

func (m *Main) scorer(ctx context.Context, cli *CLI, stderr io.Writer) (headlines.Scorer, error) {
	if m.Scorer != nil {
		return m.Scorer, nil
	}

	switch cli.Scorer {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "Hint: get an API key at https://aistudio.google.com/apikey")
			return nil, headlines.Errorf(headlines.EINVALID, "GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewScorer(client), nil
	default:
		return vader.NewScorer(), nil
	}
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// errorMessage returns the user-facing text for err: headlines.ErrorMessage
// for domain errors, and the error text for usage and setup errors that
// carry no code.
func errorMessage(err error) string {
	var e *headlines.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return headlines.ErrorMessage(err)
}
