package fetcher

import (
	"context"
	"sync"
	"time"
)

// RateLimiter caps requests inside a sliding time window. Check and record
// happen under one lock, so concurrent fetchers cannot oversubscribe the
// window. Requests over the limit are delayed, never dropped.
type RateLimiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests []time.Time
	nowFn    func() time.Time
}

// NewRateLimiter creates a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make([]time.Time, 0, maxRequests),
		nowFn:       time.Now,
	}
}

// CanMakeRequest reports whether a request is admissible right now and
// records it if so.
func (r *RateLimiter) CanMakeRequest() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFn()
	r.prune(now)

	if len(r.requests) >= r.maxRequests {
		return false
	}
	r.requests = append(r.requests, now)
	return true
}

// WaitTime returns how long until the next request becomes admissible,
// zero if one can be made immediately.
func (r *RateLimiter) WaitTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFn()
	r.prune(now)

	if len(r.requests) < r.maxRequests {
		return 0
	}
	if wait := r.requests[0].Add(r.window).Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Wait blocks until a request slot is admitted and recorded, or until ctx
// is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.CanMakeRequest() {
			return nil
		}
		wait := r.WaitTime()
		if wait <= 0 {
			wait = 10 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// prune drops requests that aged out of the window. A request exactly at
// the boundary no longer counts. Caller must hold the lock.
func (r *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	idx := 0
	for idx < len(r.requests) && !r.requests[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		r.requests = append(r.requests[:0], r.requests[idx:]...)
	}
}
