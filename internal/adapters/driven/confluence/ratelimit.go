package confluence

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is sent with 429 responses (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// RateLimiter paces requests to the remote API.
//
// A token bucket spaces out calls proactively. When the remote answers 429
// with Retry-After, later calls wait until that deadline has passed. The
// throttled request itself is not repeated.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	retryAfter time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	until := r.retryAfter
	r.mu.Unlock()

	if d := time.Until(until); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Observe records throttling information from a response and returns the
// Retry-After delay, or zero if the response was not throttled.
func (r *RateLimiter) Observe(resp *http.Response) time.Duration {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return 0
	}

	d := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), time.Now())
	if d > 0 {
		r.mu.Lock()
		r.retryAfter = time.Now().Add(d)
		r.mu.Unlock()
	}
	return d
}

// retryAt returns the time before which no request will be sent.
func (r *RateLimiter) retryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter
}

func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
