// Package http provides an HTTP-based implementation of headlines.Fetcher
// for fetching news front pages that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/headlines"
)

// Ensure Fetcher implements headlines.Fetcher at compile time.
var _ headlines.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs with a single GET request.
// No headers are added and no retries are made.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	checkStatus bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Zero, the default, leaves requests bounded only by the context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. Its Timeout is overridden
// only when WithTimeout is also given.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithStatusCheck makes non-2xx responses fail with ENETWORK. By default
// the body is returned whatever the status.
func WithStatusCheck() Option {
	return func(f *Fetcher) {
		f.checkStatus = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.timeout > 0 {
		c := *f.client
		c.Timeout = f.timeout
		f.client = &c
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Transport and body-read failures are reported as ENETWORK. The status
// code is only checked when WithStatusCheck is set.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", headlines.Errorf(headlines.ENETWORK, "invalid request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", headlines.Errorf(headlines.ENETWORK, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if f.checkStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return "", headlines.Errorf(headlines.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", headlines.Errorf(headlines.ENETWORK, "failed to read response from %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
