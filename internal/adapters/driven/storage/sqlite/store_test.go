package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func record(id, pageID string, version int, at time.Time) domain.PublishRecord {
	return domain.PublishRecord{
		ID:          id,
		PageID:      pageID,
		SpaceKey:    "ENG",
		Title:       "Weekly " + pageID,
		Version:     version,
		Outcome:     domain.OutcomeUpdated,
		PublishedAt: at,
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM publish_history").Scan(&count))
	assert.Zero(t, count)
	assert.Contains(t, store.Path(), "history.db")
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.PublishLog().Record(context.Background(), record("r1", "p1", 1, time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	records, err := second.PublishLog().List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPublishLog_RecordAndList(t *testing.T) {
	store := setupTestStore(t)
	log := store.PublishLog()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, record("r1", "p1", 1, base)))
	require.NoError(t, log.Record(ctx, record("r2", "p2", 4, base.Add(time.Hour))))
	require.NoError(t, log.Record(ctx, record("r3", "p1", 2, base.Add(2*time.Hour))))

	records, err := log.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r3", records[0].ID)
	assert.Equal(t, "r2", records[1].ID)

	got := records[0]
	assert.Equal(t, "p1", got.PageID)
	assert.Equal(t, "ENG", got.SpaceKey)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, domain.OutcomeUpdated, got.Outcome)
	assert.True(t, got.PublishedAt.Equal(base.Add(2*time.Hour)))
}

func TestPublishLog_ListWithoutLimitReturnsAll(t *testing.T) {
	store := setupTestStore(t)
	log := store.PublishLog()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, record("r1", "p1", 1, base)))
	require.NoError(t, log.Record(ctx, record("r2", "p2", 1, base.Add(time.Hour))))
	require.NoError(t, log.Record(ctx, record("r3", "p3", 1, base.Add(2*time.Hour))))

	for _, limit := range []int{0, -5} {
		records, err := log.List(ctx, limit)
		require.NoError(t, err)
		require.Len(t, records, 3, "limit %d", limit)
		assert.Equal(t, "r3", records[0].ID)
		assert.Equal(t, "r1", records[2].ID)
	}
}

func TestPublishLog_ListByPage(t *testing.T) {
	store := setupTestStore(t)
	log := store.PublishLog()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, record("r1", "p1", 1, base)))
	require.NoError(t, log.Record(ctx, record("r2", "p2", 1, base.Add(time.Minute))))
	require.NoError(t, log.Record(ctx, record("r3", "p1", 2, base.Add(2*time.Minute))))

	records, err := log.ListByPage(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"r3", "r1"}, []string{records[0].ID, records[1].ID})

	none, err := log.ListByPage(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPublishLog_RecordValidation(t *testing.T) {
	store := setupTestStore(t)

	err := store.PublishLog().Record(context.Background(), domain.PublishRecord{ID: "r1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPublishLog_DuplicateID(t *testing.T) {
	store := setupTestStore(t)
	log := store.PublishLog()
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, record("r1", "p1", 1, time.Now())))
	assert.Error(t, log.Record(ctx, record("r1", "p1", 2, time.Now())))
}
