package google

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/confrep/internal/logger"
)

const (
	// readsPerSecond matches the per-user Sheets read quota of 60 a minute.
	readsPerSecond = 1.0

	// readBurst covers a report with a handful of sheet tables.
	readBurst = 5

	// fallbackBackoff applies when a 429 carries no Retry-After header.
	fallbackBackoff = 60 * time.Second
)

// pacer spaces out Sheets reads and pauses after the API reports it is
// over quota.
type pacer struct {
	bucket *rate.Limiter

	mu    sync.Mutex
	until time.Time
}

func newPacer() *pacer {
	return &pacer{bucket: rate.NewLimiter(rate.Limit(readsPerSecond), readBurst)}
}

func (p *pacer) wait(ctx context.Context) error {
	if d := time.Until(p.pausedUntil()); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return p.bucket.Wait(ctx)
}

// backoff pauses reads after a 429, for as long as the response asks.
func (p *pacer) backoff(err error) {
	if !IsRateLimited(err) {
		return
	}

	d := fallbackBackoff
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Header != nil {
		if secs, perr := strconv.Atoi(gerr.Header.Get("Retry-After")); perr == nil && secs > 0 {
			d = time.Duration(secs) * time.Second
		}
	}
	logger.Warn("Sheets quota exceeded, pausing reads for %s", d)

	p.mu.Lock()
	p.until = time.Now().Add(d)
	p.mu.Unlock()
}

func (p *pacer) pausedUntil() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.until
}
