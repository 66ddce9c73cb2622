package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "history.db"

// Store is a SQLite database holding the publish history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the store in dataDir.
// If dataDir is empty, defaults to ~/.confrep/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".confrep", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PublishLog returns a PublishLog backed by this store.
func (s *Store) PublishLog() driven.PublishLog {
	return &publishLog{store: s}
}

// migrate applies every NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Publish Log ====================

// publishLog implements driven.PublishLog.
type publishLog struct {
	store *Store
}

var _ driven.PublishLog = (*publishLog)(nil)

// Record stores one entry.
func (l *publishLog) Record(ctx context.Context, r domain.PublishRecord) error {
	if r.ID == "" || r.PageID == "" {
		return fmt.Errorf("%w: record id and page id are required", domain.ErrInvalidInput)
	}
	if r.PublishedAt.IsZero() {
		r.PublishedAt = time.Now()
	}

	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO publish_history (id, page_id, space_key, title, version, outcome, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.PageID, r.SpaceKey, r.Title, r.Version, string(r.Outcome), r.PublishedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving publish record: %w", err)
	}
	return nil
}

// List returns the most recent entries first, at most limit. A
// non-positive limit returns every entry.
func (l *publishLog) List(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, page_id, space_key, title, version, outcome, published_at
		FROM publish_history
		ORDER BY published_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing publish records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByPage returns entries for a single page, most recent first.
func (l *publishLog) ListByPage(ctx context.Context, pageID string) ([]domain.PublishRecord, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, page_id, space_key, title, version, outcome, published_at
		FROM publish_history
		WHERE page_id = ?
		ORDER BY published_at DESC, rowid DESC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("listing publish records for page %s: %w", pageID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]domain.PublishRecord, error) {
	var records []domain.PublishRecord
	for rows.Next() {
		var r domain.PublishRecord
		var outcome string
		if err := rows.Scan(&r.ID, &r.PageID, &r.SpaceKey, &r.Title, &r.Version, &outcome, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("scanning publish record: %w", err)
		}
		r.Outcome = domain.Outcome(outcome)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publish records: %w", err)
	}
	return records, nil
}
