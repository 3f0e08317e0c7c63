package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/hosteltracker/internal/adapter/http"
	"github.com/iho/hosteltracker/internal/adapter/http/handler"
	"github.com/iho/hosteltracker/internal/adapter/http/middleware"
	"github.com/iho/hosteltracker/internal/infrastructure/auth"
	"github.com/iho/hosteltracker/internal/infrastructure/config"
	"github.com/iho/hosteltracker/internal/infrastructure/eventpublisher"
	"github.com/iho/hosteltracker/internal/infrastructure/idgen"
	"github.com/iho/hosteltracker/internal/infrastructure/logger"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
	"github.com/iho/hosteltracker/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = l
	zerolog.DefaultContextLogger = &l

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l, metrics.New()); err != nil {
		l.Fatal().Err(err).Msg("server failed")
	}

	l.Info().Msg("server stopped")
}

// app is the wired server before anything is started.
type app struct {
	handler     http.Handler
	ledger      *usecase.LedgerUseCase
	dispatcher  *eventpublisher.Dispatcher
	rateLimiter *middleware.RateLimiter
	closers     []func() error
}

func (a *app) close(l zerolog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			l.Warn().Err(err).Msg("failed to close resource")
		}
	}
}

// buildApp connects to the configured backends, loads the ledger and wires
// the HTTP stack. m may be nil.
func buildApp(ctx context.Context, cfg *config.Config, l zerolog.Logger, m *metrics.Metrics) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close(l)
		}
	}()

	deps, err := openBackends(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, deps.closers...)

	publisher, closePublisher, err := newPublisher(cfg, l)
	if err != nil {
		return nil, err
	}
	if closePublisher != nil {
		a.closers = append(a.closers, closePublisher)
	}
	a.dispatcher = eventpublisher.NewDispatcher(eventpublisher.Config{
		Publisher: publisher,
		Logger:    l,
		Metrics:   m,
		QueueSize: cfg.EventQueueSize,
	})

	clock := usecase.NewSystemClock(loc)
	idGen := idgen.NewULIDGenerator()

	a.ledger = usecase.NewLedgerUseCase(deps.store, a.dispatcher, idGen, clock, l, m)
	if err := a.ledger.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	l.Info().
		Str("store", cfg.StoreBackend).
		Int("transactions", len(a.ledger.Snapshot().Transactions)).
		Msg("state loaded")

	// Use cases
	transactionUC := usecase.NewTransactionUseCase(a.ledger, idGen, clock, m)
	parseUC := usecase.NewParseUseCase(a.ledger, newSuggester(cfg, deps.redis, l), l, m)
	categoryUC := usecase.NewCategoryUseCase(a.ledger, idGen)
	debtUC := usecase.NewDebtUseCase(a.ledger, idGen)
	goalUC := usecase.NewGoalUseCase(a.ledger, idGen)
	settingsUC := usecase.NewSettingsUseCase(a.ledger, clock)
	insightsUC := usecase.NewInsightsUseCase(a.ledger, clock)
	backupUC := usecase.NewBackupUseCase(a.ledger, clock, m)

	routerCfg := httpAdapter.RouterConfig{
		HealthHandler:      handler.NewHealthHandler(deps.checks),
		LedgerHandler:      handler.NewLedgerHandler(a.ledger),
		InsightsHandler:    handler.NewInsightsHandler(insightsUC, a.ledger),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, parseUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		DebtHandler:        handler.NewDebtHandler(debtUC),
		GoalHandler:        handler.NewGoalHandler(goalUC),
		SettingsHandler:    handler.NewSettingsHandler(settingsUC),
		BackupHandler:      handler.NewBackupHandler(backupUC),
		AuthHandler:        handler.NewAuthHandler(),
		Logger:             l,
		Metrics:            m,
		IdempotencyStore:   deps.idempotency,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		routerCfg.RateLimiter = a.rateLimiter
	}

	if cfg.AuthEnabled {
		routerCfg.JWTManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		l.Info().Msg("device token authentication enabled")
	}

	a.handler = httpAdapter.NewRouter(routerCfg)
	ok = true
	return a, nil
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, l zerolog.Logger, m *metrics.Metrics) error {
	a, err := buildApp(ctx, cfg, l, m)
	if err != nil {
		return err
	}
	defer a.close(l)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.dispatcher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if a.rateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := a.rateLimiter.CleanupLimiters(limiterMaxIdle); n > 0 {
						l.Debug().Int("removed", n).Msg("rate limiters cleaned up")
					}
				}
			}
		})
	}

	g.Go(func() error {
		l.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
