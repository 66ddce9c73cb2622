package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/confrep/internal/core/domain"
)

func TestHistoryService_Recent(t *testing.T) {
	log := memory.NewPublishLog()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		require.NoError(t, log.Record(ctx, domain.PublishRecord{
			ID: string(rune('a' + i)), PageID: "p", PublishedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	svc := NewHistoryService(log)

	records, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, DefaultHistoryLimit)

	records, err = svc.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.True(t, records[0].PublishedAt.After(records[1].PublishedAt))
}

func TestHistoryService_ForPage(t *testing.T) {
	log := memory.NewPublishLog()
	ctx := context.Background()
	require.NoError(t, log.Record(ctx, domain.PublishRecord{ID: "1", PageID: "a"}))
	require.NoError(t, log.Record(ctx, domain.PublishRecord{ID: "2", PageID: "b"}))

	svc := NewHistoryService(log)
	records, err := svc.ForPage(ctx, "a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)

	_, err = svc.ForPage(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_NotConfigured(t *testing.T) {
	svc := NewHistoryService(nil)
	_, err := svc.Recent(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
