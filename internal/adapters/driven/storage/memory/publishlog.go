package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
)

// Ensure PublishLog implements the interface.
var _ driven.PublishLog = (*PublishLog)(nil)

// PublishLog is an in-memory implementation of driven.PublishLog.
type PublishLog struct {
	mu      sync.RWMutex
	records []domain.PublishRecord
}

// NewPublishLog creates a new in-memory publish log.
func NewPublishLog() *PublishLog {
	return &PublishLog{}
}

// Record stores one entry.
func (l *PublishLog) Record(_ context.Context, record domain.PublishRecord) error {
	if record.ID == "" || record.PageID == "" {
		return fmt.Errorf("%w: record id and page id are required", domain.ErrInvalidInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

// List returns the most recent entries first, at most limit.
func (l *PublishLog) List(_ context.Context, limit int) ([]domain.PublishRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := l.newestFirst(func(domain.PublishRecord) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByPage returns entries for a single page, most recent first.
func (l *PublishLog) ListByPage(_ context.Context, pageID string) ([]domain.PublishRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.newestFirst(func(r domain.PublishRecord) bool { return r.PageID == pageID }), nil
}

// newestFirst copies matching records in reverse insertion order, then
// stable-sorts by timestamp. Caller must hold the lock.
func (l *PublishLog) newestFirst(keep func(domain.PublishRecord) bool) []domain.PublishRecord {
	var out []domain.PublishRecord
	for i := len(l.records) - 1; i >= 0; i-- {
		if keep(l.records[i]) {
			out = append(out, l.records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
