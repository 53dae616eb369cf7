// Package sqlite persists templates and checklists in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/logger"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS template_steps (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	order_index INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_template_steps_template ON template_steps(template_id, order_index);
CREATE TABLE IF NOT EXISTS checklists (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
	template_name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checklists_template ON checklists(template_id);
CREATE TABLE IF NOT EXISTS checklist_tasks (
	id TEXT PRIMARY KEY,
	checklist_id TEXT NOT NULL REFERENCES checklists(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at INTEGER,
	order_index INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checklist_tasks_checklist ON checklist_tasks(checklist_id, order_index);
`

var (
	_ domain.TemplateRepository  = (*Store)(nil)
	_ domain.ChecklistRepository = (*Store)(nil)
)

// Store implements the template and checklist repositories.
type Store struct {
	db    *sql.DB
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// Option customises a Store.
type Option func(*Store)

// WithLogger attaches a logger for write operations.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens or creates the database at path and applies the schema.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open checklist db: %w", err)
	}
	// pragmas below are per connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize checklist schema: %w", err)
	}

	s := &Store{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) stamp() int64 {
	return s.now().UTC().UnixNano()
}

func fromStamp(v int64) time.Time {
	return time.Unix(0, v).UTC()
}
