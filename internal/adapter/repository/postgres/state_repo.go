package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/hosteltracker/internal/domain"
)

const (
	selectStateSQL = `SELECT data FROM app_state WHERE key = $1`

	upsertStateSQL = `
INSERT INTO app_state (key, data, revision, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (key) DO UPDATE
SET data = EXCLUDED.data,
    revision = app_state.revision + 1,
    updated_at = now()`
)

type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StateRepository implements usecase.StateStore on a single app_state row.
type StateRepository struct {
	pool    pgxPool
	key     string
	retrier *Retrier
}

// NewStateRepository creates a repository storing the document under key.
func NewStateRepository(pool pgxPool, key string, retrier *Retrier) *StateRepository {
	return &StateRepository{
		pool:    pool,
		key:     key,
		retrier: retrier,
	}
}

// Load returns the stored document or domain.ErrStateNotFound.
func (r *StateRepository) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, selectStateSQL, r.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return data, nil
}

// Save upserts the document, retrying transient failures.
func (r *StateRepository) Save(ctx context.Context, data []byte) error {
	return r.retrier.Retry(ctx, func() error {
		return r.save(ctx, data)
	})
}

func (r *StateRepository) save(ctx context.Context, data []byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, upsertStateSQL, r.key, data); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to save state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *StateRepository) Ping(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "SELECT 1")
	return err
}
