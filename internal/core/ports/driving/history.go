package driving

import (
	"context"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// HistoryService exposes the local publish history.
type HistoryService interface {
	// Recent returns the latest records, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error)

	// ForPage returns records for one page, most recent first.
	ForPage(ctx context.Context, pageID string) ([]domain.PublishRecord, error)
}
