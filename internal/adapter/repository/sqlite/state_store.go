// Package sqlite stores the application state in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/iho/hosteltracker/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	selectStateSQL = `SELECT data FROM app_state WHERE key = ?`

	upsertStateSQL = `
INSERT INTO app_state (key, data) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE
SET data = excluded.data,
    revision = app_state.revision + 1,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

	selectRevisionSQL = `SELECT revision FROM app_state WHERE key = ?`
)

// StateStore implements usecase.StateStore on a single SQLite row.
type StateStore struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the database at path and applies the
// schema migrations.
func Open(ctx context.Context, path, key string) (*StateStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db, key: key}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// m.Close would close db as well.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load returns the stored document or domain.ErrStateNotFound.
func (s *StateStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectStateSQL, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return data, nil
}

// Save replaces the stored document.
func (s *StateStore) Save(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertStateSQL, s.key, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Revision returns how many times the document has been saved.
func (s *StateStore) Revision(ctx context.Context) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, selectRevisionSQL, s.key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return rev, err
}

// Ping reports whether the database is usable.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *StateStore) Close() error {
	return s.db.Close()
}
