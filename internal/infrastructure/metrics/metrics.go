package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsAdded   *prometheus.CounterVec
	TransactionsDeleted prometheus.Counter
	TransactionAmount   *prometheus.HistogramVec

	// State metrics
	StateUpdates       *prometheus.CounterVec
	StateUpdateErrors  *prometheus.CounterVec
	StateLoadFallbacks prometheus.Counter
	Imports            *prometheus.CounterVec

	// Persistence metrics
	PersistDuration *prometheus.HistogramVec
	PersistErrors   *prometheus.CounterVec

	// Parser metrics
	ParserRequests *prometheus.CounterVec
	ParserDuration *prometheus.HistogramVec

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_transactions_added_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type"},
		),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hosteltracker_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hosteltracker_transaction_amount",
				Help:    "Recorded transaction amounts",
				Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"type"},
		),

		StateUpdates: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_state_updates_total",
				Help: "Total successful state updates",
			},
			[]string{"event"},
		),
		StateUpdateErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_state_update_errors_total",
				Help: "Total rejected or failed state updates",
			},
			[]string{"event", "stage"},
		),
		StateLoadFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hosteltracker_state_load_fallbacks_total",
			Help: "Times the persisted state could not be read and defaults were used",
		}),
		Imports: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_imports_total",
				Help: "Total backup imports",
			},
			[]string{"status"},
		),

		PersistDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hosteltracker_persist_duration_seconds",
				Help:    "Duration of state store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		PersistErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_persist_errors_total",
				Help: "Total state store errors",
			},
			[]string{"operation"},
		),

		ParserRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_parser_requests_total",
				Help: "Total natural-language parse requests",
			},
			[]string{"provider", "outcome"},
		),
		ParserDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hosteltracker_parser_duration_seconds",
				Help:    "Natural-language parse duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_events_published_total",
				Help: "Total state change events handed to the publisher",
			},
			[]string{"status"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosteltracker_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		RateLimitHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hosteltracker_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}
