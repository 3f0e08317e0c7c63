package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// ErrQueueFull is returned when the dispatcher cannot accept more events.
var ErrQueueFull = errors.New("event queue is full")

// Publisher delivers events to an external system.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Envelope is the wire form of an event.
type Envelope struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id,omitempty"`
	At          time.Time      `json:"at"`
	Payload     map[string]any `json:"payload"`
}

// Encode serializes event as an Envelope.
func Encode(event domain.Event) ([]byte, error) {
	return json.Marshal(Envelope{
		ID:          event.ID,
		Type:        event.Type,
		AggregateID: event.AggregateID,
		At:          event.At.UTC(),
		Payload:     event.Payload,
	})
}

// Dispatcher queues events and forwards them to a Publisher from a single
// worker goroutine, so callers never wait on the broker.
type Dispatcher struct {
	publisher      Publisher
	queue          chan domain.Event
	logger         zerolog.Logger
	metrics        *metrics.Metrics
	publishTimeout time.Duration
}

// Config for Dispatcher.
type Config struct {
	Publisher      Publisher
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	QueueSize      int           // Buffered events before Publish fails
	PublishTimeout time.Duration // Per-event delivery bound
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}

	return &Dispatcher{
		publisher:      cfg.Publisher,
		queue:          make(chan domain.Event, cfg.QueueSize),
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		publishTimeout: cfg.PublishTimeout,
	}
}

// Publish enqueues event without blocking.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) error {
	select {
	case d.queue <- event:
		return nil
	default:
		d.count("dropped")
		return ErrQueueFull
	}
}

// Start delivers queued events until ctx is cancelled, then drains what is
// left in the queue.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info().Int("queue_size", cap(d.queue)).Msg("event dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.drain()
			d.logger.Info().Msg("event dispatcher shutting down")
			return ctx.Err()
		case event := <-d.queue:
			d.deliver(context.Background(), event)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event domain.Event) {
	ctx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.count("failed")
		d.logger.Error().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", event.Type).
			Msg("failed to publish event")
		return
	}

	d.count("published")
	d.logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Msg("event published")
}

func (d *Dispatcher) count(status string) {
	if d.metrics != nil {
		d.metrics.EventsPublished.WithLabelValues(status).Inc()
	}
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("event")

	return nil
}
