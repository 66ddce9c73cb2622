package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/services"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history [page-id]", historyCmd.Use)
}

func TestHistory_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := runCLI(t, "", "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}

func TestHistory_Empty(t *testing.T) {
	SetServices(Services{History: services.NewHistoryService(memory.NewPublishLog())})
	defer SetServices(Services{})

	out, err := runCLI(t, "", "history", "--limit", "20")

	require.NoError(t, err)
	assert.Contains(t, out, "No publishes recorded.")
}

func TestHistory_ListsRecords(t *testing.T) {
	ctx := context.Background()
	log := memory.NewPublishLog()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, domain.PublishRecord{
		ID: "a", PageID: "7", SpaceKey: "OPS", Title: "Weekly", Version: 1,
		Outcome: domain.OutcomeCreated, PublishedAt: at,
	}))
	require.NoError(t, log.Record(ctx, domain.PublishRecord{
		ID: "b", PageID: "8", SpaceKey: "OPS", Title: "Monthly", Version: 3,
		Outcome: domain.OutcomeUpdated, PublishedAt: at.Add(time.Hour),
	}))
	SetServices(Services{History: services.NewHistoryService(log)})
	defer SetServices(Services{})

	out, err := runCLI(t, "", "history", "--limit", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "Weekly")
	assert.Contains(t, out, "Monthly")
	assert.Contains(t, out, "updated")

	out, err = runCLI(t, "", "history", "8", "--limit", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly")
	assert.NotContains(t, out, "Weekly")

	out, err = runCLI(t, "", "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly")
	assert.NotContains(t, out, "Weekly")
}
