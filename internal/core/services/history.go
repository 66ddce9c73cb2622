package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when a non-positive limit is requested.
const DefaultHistoryLimit = 20

// HistoryService reads the local publish history.
type HistoryService struct {
	publishLog driven.PublishLog
}

// NewHistoryService creates a new history service.
func NewHistoryService(publishLog driven.PublishLog) *HistoryService {
	return &HistoryService{publishLog: publishLog}
}

// Recent returns the latest records, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	if s.publishLog == nil {
		return nil, domain.ErrNotConfigured
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.publishLog.List(ctx, limit)
}

// ForPage returns records for one page, most recent first.
func (s *HistoryService) ForPage(ctx context.Context, pageID string) ([]domain.PublishRecord, error) {
	if s.publishLog == nil {
		return nil, domain.ErrNotConfigured
	}
	if pageID == "" {
		return nil, fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	return s.publishLog.ListByPage(ctx, pageID)
}
