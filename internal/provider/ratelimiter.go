package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces outbound API calls with a token bucket so bursts of
// dashboard builds cannot trip an upstream's free-tier quota.
type RateLimiter struct {
	mu       sync.Mutex
	tokens   int
	burst    int
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewRateLimiter allows burst calls immediately, then one more per interval.
func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	l := &RateLimiter{
		tokens:   burst,
		burst:    burst,
		interval: interval,
		now:      time.Now,
	}
	l.last = l.now()
	return l
}

// Wait blocks until a token is available or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		if l.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

func (l *RateLimiter) take() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := l.now().Sub(l.last)
	if refilled := int(elapsed / l.interval); refilled > 0 {
		l.tokens += refilled
		if l.tokens > l.burst {
			l.tokens = l.burst
		}
		l.last = l.last.Add(time.Duration(refilled) * l.interval)
	}

	if l.tokens == 0 {
		return false
	}
	l.tokens--
	return true
}
