// Package memory keeps the application state in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/iho/hosteltracker/internal/domain"
)

// StateStore implements usecase.StateStore without persistence.
type StateStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewStateStore creates an empty store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load returns a copy of the last saved document.
func (s *StateStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// Save keeps a copy of data.
func (s *StateStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	return nil
}

// Ping always succeeds.
func (s *StateStore) Ping(ctx context.Context) error {
	return nil
}
