package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different owner. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("record not found")

// Store persists projects, their files and the revision conversation log
// in an embedded sqlite database. Every operation is scoped by an owner
// identifier; no query ever crosses owners.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path. ":memory:"
// gives a throwaway in-process store, used by the test suite.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=10000", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer, avoids lock contention

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks database liveness, used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		prompt TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL,
		status TEXT NOT NULL,
		app_type TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_files (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		file_path TEXT NOT NULL,
		content TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ai_conversations (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		message_type TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, updated_at);
	CREATE INDEX IF NOT EXISTS idx_files_project ON project_files(project_id, user_id, file_path);
	CREATE INDEX IF NOT EXISTS idx_conversations_project ON ai_conversations(project_id, user_id, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// newID builds a prefixed record identifier (proj_..., file_..., conv_...).
func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

func nowUnix() int64 {
	return time.Now().UTC().UnixMilli()
}

func fromUnix(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
