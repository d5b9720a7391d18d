package scrape

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/headlines"
	"golang.org/x/time/rate"
)

var _ headlines.DomainLimiter = (*HostLimiter)(nil)

// HostLimiter spaces requests to the same host by at least a fixed interval.
// Hosts are tracked independently; a zero interval disables limiting.
type HostLimiter struct {
	interval time.Duration

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewHostLimiter creates a HostLimiter allowing one request per interval per host.
func NewHostLimiter(interval time.Duration) *HostLimiter {
	return &HostLimiter{
		interval: interval,
		hosts:    make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.interval <= 0 {
		return ctx.Err()
	}
	return l.limiter(host).Wait(ctx)
}

func (l *HostLimiter) limiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.hosts[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.interval), 1)
		l.hosts[host] = lim
	}
	return lim
}
