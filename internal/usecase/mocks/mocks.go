package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/hosteltracker/internal/domain"
)

// FakeStateStore is an in-memory StateStore whose behaviour can be
// overridden per method.
type FakeStateStore struct {
	mu    sync.Mutex
	data  []byte
	saves int

	LoadFunc func(ctx context.Context) ([]byte, error)
	SaveFunc func(ctx context.Context, data []byte) error
}

// NewFakeStateStore creates a store holding data. nil means nothing saved.
func NewFakeStateStore(data []byte) *FakeStateStore {
	return &FakeStateStore{data: data}
}

func (f *FakeStateStore) Load(ctx context.Context) ([]byte, error) {
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), f.data...), nil
}

func (f *FakeStateStore) Save(ctx context.Context, data []byte) error {
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, data)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append([]byte(nil), data...)
	f.saves++
	return nil
}

// Data returns the last saved document.
func (f *FakeStateStore) Data() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.data...)
}

// Saves returns how many times Save succeeded.
func (f *FakeStateStore) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// SequenceIDGenerator returns id-1, id-2, ... unless GenerateFunc is set.
type SequenceIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("id-%d", g.counter)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event

	PublishFunc func(ctx context.Context, event domain.Event) error
}

func (p *RecordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, event)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns the published events in order.
func (p *RecordingPublisher) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Event(nil), p.events...)
}
