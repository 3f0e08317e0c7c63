package usecase

import (
	"context"
	"time"

	"github.com/iho/hosteltracker/internal/domain"
)

// StateStore persists the serialized application state as one blob.
type StateStore interface {
	// Load returns domain.ErrStateNotFound when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Ledger owns the current state and applies actions to it.
type Ledger interface {
	Snapshot() domain.State
	Apply(ctx context.Context, action domain.Action) (domain.State, error)
}

// EventPublisher hands state change events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Suggester turns free text into a transaction guess.
type Suggester interface {
	Name() string
	Suggest(ctx context.Context, text string, categories []string) (*domain.Suggestion, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time in the configured location.
type Clock interface {
	Now() time.Time
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a pending claim so the request can be retried.
	Release(ctx context.Context, key string) error
}
