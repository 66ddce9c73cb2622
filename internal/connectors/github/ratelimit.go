package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/confrep/internal/logger"
)

const (
	// requestsPerSecond paces listing calls well under the hourly quota.
	requestsPerSecond = 1.2

	// burst lets a single report table page through a few results at once.
	burst = 5

	// reserve is the quota left untouched for other tools sharing the token.
	reserve = 100

	// hourlyQuota is assumed until the first response reports the real one.
	hourlyQuota = 5000
)

// Quota is the request allowance GitHub last reported for the token.
type Quota struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// throttle paces requests and holds back once the reported quota drops
// below the reserve, until the quota resets.
type throttle struct {
	bucket *rate.Limiter

	mu    sync.Mutex
	quota Quota
}

func newThrottle() *throttle {
	return &throttle{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		quota:  Quota{Limit: hourlyQuota, Remaining: hourlyQuota},
	}
}

func (t *throttle) wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	q := t.snapshot()
	if q.Remaining >= reserve || !time.Now().Before(q.Reset) {
		return nil
	}

	logger.Warn("GitHub quota low (%d left), waiting until %s", q.Remaining, q.Reset.Local().Format(time.Kitchen))
	timer := time.NewTimer(time.Until(q.Reset))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// observe records the quota go-github parsed from the response headers.
func (t *throttle) observe(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.quota = Quota{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Time,
	}
}

func (t *throttle) snapshot() Quota {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quota
}
