// Package scrape provides headline scraping orchestration.
// It coordinates rule resolution, fetching, extraction and filtering for a
// single URL or for a list of news sources.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fwojciec/headlines"
	"golang.org/x/sync/errgroup"
)

// Scraper runs the headline pipeline. The zero value needs only a Fetcher
// and an Extractor; Rules and DenyList default to the built-in tables.
type Scraper struct {
	Fetcher     headlines.Fetcher
	Extractor   headlines.Extractor
	Rules       headlines.RuleResolver
	DenyList    headlines.DenyList
	RateLimiter headlines.DomainLimiter

	// Concurrency bounds the number of sources fetched at once by ScrapeAll.
	// Values below 1 mean sequential.
	Concurrency int

	// SkipFailed makes ScrapeAll drop sources that fail instead of
	// aborting the run.
	SkipFailed bool
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCompleted ProgressType = iota
	ProgressFailed
)

// ProgressEvent reports the outcome of one source in ScrapeAll.
type ProgressEvent struct {
	Type      ProgressType
	Source    headlines.Source
	Headlines int
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is a callback for reporting scrape progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// Scrape fetches url and returns its filtered headlines in document order.
// The rule is resolved before any request is made, so unsupported sites
// fail with EUNSUPPORTED without touching the network.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) ([]string, error) {
	rule, err := s.rules().Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, domainOf(rawURL)); err != nil {
			return nil, err
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Extractor.Extract(html, rule)
	if err != nil {
		return nil, err
	}

	return headlines.Filter(candidates, s.denyList()), nil
}

// ScrapeAll scrapes every source and concatenates their headlines in
// source order, regardless of the order in which fetches complete.
//
// Unless SkipFailed is set, the first failure cancels outstanding work and
// is returned. With SkipFailed, failed sources contribute no headlines and
// are reported only through progress.
func (s *Scraper) ScrapeAll(ctx context.Context, sources []headlines.Source, progress ProgressFunc) ([]string, error) {
	concurrency := s.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([][]string, len(sources))

	var mu sync.Mutex
	completed := 0
	notify := func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		if progress == nil {
			return
		}
		event.Completed = completed
		event.Total = len(sources)
		progress(event)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			hs, err := s.Scrape(gctx, src.URL)
			if err != nil {
				// Siblings canceled by an earlier failure are not reported.
				if !s.SkipFailed && gctx.Err() != nil {
					return err
				}
				notify(ProgressEvent{Type: ProgressFailed, Source: src, Error: err})
				if s.SkipFailed {
					return nil
				}
				return fmt.Errorf("scrape %s: %w", src.Name, err)
			}

			results[i] = hs
			notify(ProgressEvent{Type: ProgressCompleted, Source: src, Headlines: len(hs)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := make([]string, 0)
	for _, hs := range results {
		all = append(all, hs...)
	}
	return all, nil
}

func (s *Scraper) rules() headlines.RuleResolver {
	if s.Rules == nil {
		return headlines.DefaultSiteRules()
	}
	return s.Rules
}

func (s *Scraper) denyList() headlines.DenyList {
	if s.DenyList == nil {
		return headlines.DefaultDenyList()
	}
	return s.DenyList
}

// domainOf returns the host of rawURL, or rawURL itself if it has none.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
