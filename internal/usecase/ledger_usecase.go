package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// LedgerUseCase owns the current application state. Reads see a snapshot;
// writes run reduce, save and swap under one lock so a read after a
// successful write always observes it.
type LedgerUseCase struct {
	mu    sync.RWMutex
	state domain.State

	store     StateStore
	publisher EventPublisher
	idGen     IDGenerator
	clock     Clock
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewLedgerUseCase creates a LedgerUseCase holding the default state.
// Call Load to read the persisted state. publisher and m may be nil.
func NewLedgerUseCase(
	store StateStore,
	publisher EventPublisher,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		state:     domain.DefaultState(),
		store:     store,
		publisher: publisher,
		idGen:     idGen,
		clock:     clock,
		logger:    logger,
		metrics:   m,
	}
}

// Load reads the persisted state. A missing or unreadable document leaves
// the default state in place; only a store failure is returned.
func (uc *LedgerUseCase) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	start := time.Now()
	data, err := uc.store.Load(ctx)
	uc.observePersist("load", start, err)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch {
	case errors.Is(err, domain.ErrStateNotFound):
		uc.logger.Info().Msg("no saved state, starting from defaults")
		uc.state = domain.DefaultState()
		return nil
	case err != nil:
		return fmt.Errorf("load state: %w", err)
	}

	state, decodeErr := domain.LoadOrDefault(data, uc.clock.Now().Location())
	if decodeErr != nil {
		uc.logger.Warn().Err(decodeErr).Int("bytes", len(data)).Msg("saved state is unreadable, falling back to defaults")
		if uc.metrics != nil {
			uc.metrics.StateLoadFallbacks.Inc()
		}
	}
	uc.state = state

	uc.logger.Info().
		Int("transactions", len(state.Transactions)).
		Int("categories", len(state.Categories)).
		Msg("state loaded")

	return nil
}

// Snapshot returns the current state. Callers must treat it as read-only.
func (uc *LedgerUseCase) Snapshot() domain.State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state
}

// Apply reduces action over the current state, persists the result and
// makes it current. On any error the current state is unchanged.
func (uc *LedgerUseCase) Apply(ctx context.Context, action domain.Action) (domain.State, error) {
	eventType := action.EventType()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, err := domain.Reduce(uc.state, action)
	if err != nil {
		uc.countError(eventType, "reduce")
		return uc.state, err
	}

	data, err := domain.EncodeState(next)
	if err != nil {
		uc.countError(eventType, "encode")
		return uc.state, fmt.Errorf("encode state: %w", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	start := time.Now()
	err = uc.store.Save(saveCtx, data)
	uc.observePersist("save", start, err)
	if err != nil {
		uc.countError(eventType, "save")
		return uc.state, fmt.Errorf("save state: %w", err)
	}

	uc.state = next

	if uc.metrics != nil {
		uc.metrics.StateUpdates.WithLabelValues(eventType).Inc()
	}

	uc.publish(ctx, action, next)

	return next, nil
}

func (uc *LedgerUseCase) publish(ctx context.Context, action domain.Action, next domain.State) {
	if uc.publisher == nil {
		return
	}

	event := domain.EventFromAction(uc.idGen.Generate(), action, next, uc.clock.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn().Err(err).Str("event_type", event.Type).Msg("failed to publish event")
		if uc.metrics != nil {
			uc.metrics.EventsPublished.WithLabelValues("dropped").Inc()
		}
		return
	}

	if uc.metrics != nil {
		uc.metrics.EventsPublished.WithLabelValues("queued").Inc()
	}
}

func (uc *LedgerUseCase) observePersist(op string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.PersistDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrStateNotFound) {
		uc.metrics.PersistErrors.WithLabelValues(op).Inc()
	}
}

func (uc *LedgerUseCase) countError(eventType, stage string) {
	if uc.metrics != nil {
		uc.metrics.StateUpdateErrors.WithLabelValues(eventType, stage).Inc()
	}
}
