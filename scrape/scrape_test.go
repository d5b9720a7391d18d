package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/goquery"
	headlineshttp "github.com/fwojciec/headlines/http"
	"github.com/fwojciec/headlines/mock"
	"github.com/fwojciec/headlines/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages returns a fetcher serving html by URL and failing for unknown URLs.
func pages(byURL map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := byURL[url]
			if !ok {
				return "", headlines.Errorf(headlines.ENETWORK, "connection refused: %s", url)
			}
			return html, nil
		},
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("returns filtered headlines for a supported site", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: pages(map[string]string{
				"https://www.nytimes.com/": `<p class="indicate-hover css-abc">Big Win For Team</p><p class="indicate-hover css-x">Ok</p><p class="other">Spelling Bee</p>`,
			}),
			Extractor: goquery.NewExtractor(),
		}

		got, err := s.Scrape(context.Background(), "https://www.nytimes.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"Big Win For Team"}, got)
	})

	t.Run("returns EUNSUPPORTED without fetching", func(t *testing.T) {
		t.Parallel()

		fetched := false
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = true
					return "", nil
				},
			},
			Extractor: goquery.NewExtractor(),
		}

		_, err := s.Scrape(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, headlines.EUNSUPPORTED, headlines.ErrorCode(err))
		assert.False(t, fetched)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher:   pages(nil),
			Extractor: goquery.NewExtractor(),
		}

		_, err := s.Scrape(context.Background(), "https://www.bbc.com/")

		require.Error(t, err)
		assert.Equal(t, headlines.ENETWORK, headlines.ErrorCode(err))
	})

	t.Run("propagates selector errors", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: pages(map[string]string{"https://broken.example/": "<p>Some Text Here</p>"}),
			Rules: headlines.SiteRules{
				{Name: "broken", Domain: "broken.example", Rule: headlines.ExtractionRule{Selector: "p["}},
			},
			Extractor: goquery.NewExtractor(),
		}

		_, err := s.Scrape(context.Background(), "https://broken.example/")

		require.Error(t, err)
		assert.Equal(t, headlines.ESELECTOR, headlines.ErrorCode(err))
	})

	t.Run("uses the configured deny list", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: pages(map[string]string{
				"https://www.nature.com/": `<a class="c-card__link">Sponsored Content Here</a><a class="c-card__link">Spelling Bee</a>`,
			}),
			Extractor: goquery.NewExtractor(),
			DenyList:  headlines.NewDenyList("Sponsored Content Here"),
		}

		got, err := s.Scrape(context.Background(), "https://www.nature.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"Spelling Bee"}, got)
	})

	t.Run("passes the resolved rule to the extractor", func(t *testing.T) {
		t.Parallel()

		rule := headlines.ExtractionRule{Selector: "h3", Source: headlines.AttributeValue{Name: "title"}}
		var got headlines.ExtractionRule
		s := &scrape.Scraper{
			Fetcher: pages(map[string]string{"https://news.example/": "<h3>x</h3>"}),
			Rules: &mock.RuleResolver{
				ResolveFn: func(url string) (headlines.ExtractionRule, error) {
					return rule, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string, r headlines.ExtractionRule) ([]string, error) {
					got = r
					return []string{"  Rain Due Tomorrow  ", "Rain"}, nil
				},
			},
		}

		hs, err := s.Scrape(context.Background(), "https://news.example/")

		require.NoError(t, err)
		assert.Equal(t, rule, got)
		assert.Equal(t, []string{"Rain Due Tomorrow"}, hs)
	})

	t.Run("extracts headlines from a page served with an error status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<p class="indicate-hover css-a">Big Win For Team</p>`))
		}))
		defer server.Close()

		s := &scrape.Scraper{
			Fetcher: headlineshttp.NewFetcher(),
			Rules: headlines.SiteRules{
				{Name: "local", Domain: "127.0.0.1", Rule: headlines.ExtractionRule{Selector: "p.indicate-hover"}},
			},
			Extractor: goquery.NewExtractor(),
		}

		got, err := s.Scrape(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{"Big Win For Team"}, got)
	})

	t.Run("waits on the rate limiter with the URL host", func(t *testing.T) {
		t.Parallel()

		var host string
		s := &scrape.Scraper{
			Fetcher:   pages(map[string]string{"https://www.economist.com/": ""}),
			Extractor: goquery.NewExtractor(),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					host = domain
					return nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), "https://www.economist.com/")

		require.NoError(t, err)
		assert.Equal(t, "www.economist.com", host)
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	sources := headlines.DefaultSources()

	frontPages := map[string]string{
		"https://www.nytimes.com/":     `<p class="indicate-hover">Senate Passes Budget Bill</p><p class="indicate-hover">The Crossword</p>`,
		"https://www.theguardian.com/": `<a class="dcr-lv2v9o" aria-label="Market Crash Fears Grow">x</a>`,
		"https://www.bbc.com/":         `<h2 data-testid="card-headline">Floods Sweep North</h2>`,
		"https://www.nature.com/":      `<a class="c-card__link">Cells Talk To Each Other</a>`,
		"https://www.economist.com/":   `<a data-analytics="a">Read full edition</a><a data-analytics="b">Rates Hold Steady</a>`,
	}

	t.Run("concatenates headlines in source order", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{Fetcher: pages(frontPages), Extractor: goquery.NewExtractor()}

		got, err := s.ScrapeAll(context.Background(), sources, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Senate Passes Budget Bill",
			"Market Crash Fears Grow",
			"Floods Sweep North",
			"Cells Talk To Each Other",
			"Rates Hold Steady",
		}, got)
	})

	t.Run("preserves source order with concurrent fetches", func(t *testing.T) {
		t.Parallel()

		inner := pages(frontPages)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				// Earlier sources finish last.
				if strings.Contains(url, "nytimes") {
					time.Sleep(40 * time.Millisecond)
				}
				if strings.Contains(url, "theguardian") {
					time.Sleep(20 * time.Millisecond)
				}
				return inner.Fetch(ctx, url)
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Extractor: goquery.NewExtractor(), Concurrency: 5}

		got, err := s.ScrapeAll(context.Background(), sources, nil)

		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "Senate Passes Budget Bill", got[0])
		assert.Equal(t, "Market Crash Fears Grow", got[1])
		assert.Equal(t, "Rates Hold Steady", got[4])
	})

	t.Run("fetches sequentially by default", func(t *testing.T) {
		t.Parallel()

		var inFlight, maxInFlight atomic.Int32
		inner := pages(frontPages)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					m := maxInFlight.Load()
					if n <= m || maxInFlight.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				return inner.Fetch(ctx, url)
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Extractor: goquery.NewExtractor()}

		_, err := s.ScrapeAll(context.Background(), sources, nil)

		require.NoError(t, err)
		assert.Equal(t, int32(1), maxInFlight.Load())
	})

	t.Run("aborts on first failure by default", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetched []string
		broken := map[string]string{}
		for k, v := range frontPages {
			if !strings.Contains(k, "theguardian") {
				broken[k] = v
			}
		}
		inner := pages(broken)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				mu.Lock()
				fetched = append(fetched, url)
				mu.Unlock()
				return inner.Fetch(ctx, url)
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Extractor: goquery.NewExtractor()}

		got, err := s.ScrapeAll(context.Background(), sources, nil)

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, headlines.ENETWORK, headlines.ErrorCode(err))
		assert.Contains(t, err.Error(), "scrape theguardian")
		assert.Equal(t, []string{"https://www.nytimes.com/", "https://www.theguardian.com/"}, fetched)
	})

	t.Run("skips failed sources when configured", func(t *testing.T) {
		t.Parallel()

		broken := map[string]string{}
		for k, v := range frontPages {
			if !strings.Contains(k, "bbc") {
				broken[k] = v
			}
		}
		var events []scrape.ProgressEvent
		s := &scrape.Scraper{Fetcher: pages(broken), Extractor: goquery.NewExtractor(), SkipFailed: true}

		got, err := s.ScrapeAll(context.Background(), sources, func(e scrape.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Senate Passes Budget Bill",
			"Market Crash Fears Grow",
			"Cells Talk To Each Other",
			"Rates Hold Steady",
		}, got)

		require.Len(t, events, 5)
		var failed []scrape.ProgressEvent
		for _, e := range events {
			assert.Equal(t, 5, e.Total)
			if e.Type == scrape.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, "bbc", failed[0].Source.Name)
		assert.Equal(t, headlines.ENETWORK, headlines.ErrorCode(failed[0].Error))
		assert.Equal(t, 5, events[4].Completed)
	})

	t.Run("returns empty sequence when every page is empty", func(t *testing.T) {
		t.Parallel()

		empty := map[string]string{}
		for k := range frontPages {
			empty[k] = "<html><body></body></html>"
		}
		s := &scrape.Scraper{Fetcher: pages(empty), Extractor: goquery.NewExtractor()}

		got, err := s.ScrapeAll(context.Background(), sources, nil)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("returns empty sequence for no sources", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{Fetcher: pages(nil), Extractor: goquery.NewExtractor()}

		got, err := s.ScrapeAll(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := &scrape.Scraper{Fetcher: pages(frontPages), Extractor: goquery.NewExtractor(), SkipFailed: true}

		_, err := s.ScrapeAll(ctx, sources, nil)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reports headline counts in progress", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{}
		s := &scrape.Scraper{Fetcher: pages(frontPages), Extractor: goquery.NewExtractor()}

		_, err := s.ScrapeAll(context.Background(), sources, func(e scrape.ProgressEvent) {
			counts[e.Source.Name] = e.Headlines
		})

		require.NoError(t, err)
		assert.Equal(t, 1, counts["nytimes"])
		assert.Equal(t, 1, counts["economist"])
	})
}
