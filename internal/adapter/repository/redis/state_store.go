package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/hosteltracker/internal/domain"
)

// StateStore implements usecase.StateStore using a single Redis key.
type StateStore struct {
	client *redis.Client
	key    string
}

// NewStateStore creates a store keeping the document under state:<key>.
func NewStateStore(client *redis.Client, key string) *StateStore {
	return &StateStore{
		client: client,
		key:    "state:" + key,
	}
}

// Load returns the stored document or domain.ErrStateNotFound.
func (s *StateStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return data, nil
}

// Save replaces the stored document. It never expires.
func (s *StateStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
