package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/adapter/http/handler"
	"github.com/iho/hosteltracker/internal/adapter/http/middleware"
	"github.com/iho/hosteltracker/internal/infrastructure/auth"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
	"github.com/iho/hosteltracker/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	HealthHandler      *handler.HealthHandler
	LedgerHandler      *handler.LedgerHandler
	InsightsHandler    *handler.InsightsHandler
	TransactionHandler *handler.TransactionHandler
	CategoryHandler    *handler.CategoryHandler
	DebtHandler        *handler.DebtHandler
	GoalHandler        *handler.GoalHandler
	SettingsHandler    *handler.SettingsHandler
	BackupHandler      *handler.BackupHandler
	AuthHandler        *handler.AuthHandler

	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	JWTManager       *auth.JWTManager
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.DeviceAuth(cfg.JWTManager, cfg.Metrics))
			r.Use(middleware.RequireWrite)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.JWTManager != nil {
			r.Get("/auth/me", cfg.AuthHandler.Me)
		}

		r.Get("/state", cfg.LedgerHandler.State)
		r.Get("/dashboard", cfg.InsightsHandler.Dashboard)
		r.Get("/analytics", cfg.InsightsHandler.Analytics)
		r.Get("/charts/weekly.png", cfg.InsightsHandler.WeeklyChart)
		r.Get("/charts/categories.png", cfg.InsightsHandler.CategoryChart)

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Post("/", cfg.TransactionHandler.Create)
			r.Post("/parse", cfg.TransactionHandler.Parse)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Create)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", cfg.DebtHandler.List)
			r.Post("/", cfg.DebtHandler.Create)
			r.Delete("/{id}", cfg.DebtHandler.Delete)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", cfg.GoalHandler.List)
			r.Post("/", cfg.GoalHandler.Create)
			r.Delete("/{id}", cfg.GoalHandler.Delete)
			r.Post("/{id}/contribute", cfg.GoalHandler.Contribute)
		})

		// Budget and preferences
		r.Get("/budget", cfg.SettingsHandler.GetBudget)
		r.Put("/budget", cfg.SettingsHandler.SetBudget)
		r.Get("/settings", cfg.SettingsHandler.GetSettings)
		r.Patch("/settings", cfg.SettingsHandler.UpdateSettings)
		r.Get("/catalog", cfg.SettingsHandler.Catalog)

		// Backup
		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", cfg.BackupHandler.Export)
			r.Post("/import", cfg.BackupHandler.Import)
			r.Post("/reset", cfg.BackupHandler.Reset)
		})
	})

	return r
}
