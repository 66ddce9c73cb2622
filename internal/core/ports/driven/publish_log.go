package driven

import (
	"context"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// PublishLog persists a local history of successful page writes.
type PublishLog interface {
	// Record stores one entry.
	Record(ctx context.Context, record domain.PublishRecord) error

	// List returns the most recent entries first, at most limit. A
	// non-positive limit returns every entry.
	List(ctx context.Context, limit int) ([]domain.PublishRecord, error)

	// ListByPage returns entries for a single page, most recent first.
	ListByPage(ctx context.Context, pageID string) ([]domain.PublishRecord, error)
}
