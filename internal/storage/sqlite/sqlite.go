// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The document lives in a single row of a key/value table, so the persisted
// value is byte-for-byte the same JSON the export format carries.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	key string

	// mu serializes Update so that read-modify-write cycles never interleave.
	mu sync.Mutex
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithKey overrides the row key the document is stored under.
func WithKey(key string) Option {
	return func(s *SQLiteStore) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &SQLiteStore{db: db, key: storage.DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the document. A missing row yields the empty default; an
// unreadable one is logged and also yields the empty default.
func (s *SQLiteStore) Load(ctx context.Context) models.AppData {
	data, err := s.load(ctx, s.db)
	if err != nil {
		slog.Error("Failed to load stored data, using empty default", "key", s.key, "error", err)
	}
	return data
}

// Save writes the document, logging any failure.
func (s *SQLiteStore) Save(ctx context.Context, data models.AppData) {
	if err := s.save(ctx, s.db, data); err != nil {
		slog.Error("Failed to save data", "key", s.key, "error", err)
	}
}

// Update runs fn against the current document inside a transaction and writes
// the result back. Only fn's error is returned; storage failures are logged.
func (s *SQLiteStore) Update(ctx context.Context, fn func(*models.AppData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Failed to begin transaction, falling back to unguarded update", "error", err)
		data := s.Load(ctx)
		if err := fn(&data); err != nil {
			return err
		}
		s.Save(ctx, data)
		return nil
	}
	defer tx.Rollback()

	data, err := s.load(ctx, tx)
	if err != nil {
		slog.Error("Failed to load stored data, using empty default", "key", s.key, "error", err)
	}
	if err := fn(&data); err != nil {
		return err
	}

	if err := s.save(ctx, tx, data); err != nil {
		slog.Error("Failed to save data", "key", s.key, "error", err)
		return nil
	}
	if err := tx.Commit(); err != nil {
		slog.Error("Failed to commit transaction", "key", s.key, "error", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) load(ctx context.Context, q querier) (models.AppData, error) {
	var blob string
	err := q.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", s.key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewAppData(), nil
	}
	if err != nil {
		return models.NewAppData(), fmt.Errorf("failed to read app state: %w", err)
	}
	return storage.Decode([]byte(blob))
}

func (s *SQLiteStore) save(ctx context.Context, q querier, data models.AppData) error {
	blob, err := storage.Encode(data)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(blob), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write app state: %w", err)
	}
	return nil
}
