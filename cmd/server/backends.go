package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/adapter/http/handler"
	"github.com/iho/hosteltracker/internal/adapter/parser"
	"github.com/iho/hosteltracker/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/hosteltracker/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/hosteltracker/internal/adapter/repository/redis"
	"github.com/iho/hosteltracker/internal/adapter/repository/sqlite"
	"github.com/iho/hosteltracker/internal/infrastructure/config"
	"github.com/iho/hosteltracker/internal/infrastructure/eventpublisher"
	"github.com/iho/hosteltracker/internal/infrastructure/postgres"
	"github.com/iho/hosteltracker/internal/infrastructure/redis"
	"github.com/iho/hosteltracker/internal/usecase"
)

const parserCachePrefix = "parser:"

type storeWithPing interface {
	usecase.StateStore
	handler.Pinger
}

// backends are the connections opened for one server run.
type backends struct {
	store       usecase.StateStore
	redis       *goredis.Client
	idempotency usecase.IdempotencyStore
	checks      map[string]handler.Pinger
	closers     []func() error
}

// openBackends opens the state store and, when REDIS_URL is set, the Redis
// client shared by the idempotency store and the parser cache.
func openBackends(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*backends, error) {
	b := &backends{checks: make(map[string]handler.Pinger)}
	fail := func(err error) (*backends, error) {
		for i := len(b.closers) - 1; i >= 0; i-- {
			b.closers[i]()
		}
		return nil, err
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.StoreTimeout)
		if err != nil {
			return fail(fmt.Errorf("failed to connect to redis: %w", err))
		}
		b.redis = client
		b.closers = append(b.closers, client.Close)
		b.idempotency = redisRepo.NewIdempotencyStore(client)
		b.checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		l.Info().Msg("connected to redis")
	}

	var store storeWithPing
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.StorageKey)
		if err != nil {
			return fail(err)
		}
		b.closers = append(b.closers, s.Close)
		store = s
		l.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite store")

	case config.StorePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, l); err != nil {
			return fail(err)
		}
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			return fail(fmt.Errorf("failed to connect to postgres: %w", err))
		}
		b.closers = append(b.closers, func() error {
			pool.Close()
			return nil
		})
		store = postgresRepo.NewStateRepository(pool, cfg.StorageKey, postgresRepo.NewRetrier(l))
		l.Info().Msg("connected to postgres")

	case config.StoreRedis:
		store = redisRepo.NewStateStore(b.redis, cfg.StorageKey)

	case config.StoreMemory:
		store = memory.NewStateStore()
		l.Warn().Msg("using in-memory store, state is lost on exit")

	default:
		return fail(fmt.Errorf("unknown store backend %q", cfg.StoreBackend))
	}

	b.store = store
	b.checks["store"] = store
	return b, nil
}

// newSuggester builds the parser chain for cfg. The rules parser always
// runs last; results are cached in Redis when it is available.
func newSuggester(cfg *config.Config, client *goredis.Client, l zerolog.Logger) usecase.Suggester {
	var providers []usecase.Suggester

	switch cfg.ParserProvider {
	case config.ParserNone:
		return nil
	case config.ParserOpenAI:
		providers = append(providers, parser.NewOpenAIParser(parser.OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			MaxRetries: cfg.OpenAIMaxRetries,
			Timeout:    cfg.OpenAIHTTPTimeout,
		}, l))
	}
	providers = append(providers, parser.NewRulesParser())

	var s usecase.Suggester = parser.NewChain(l, providers...)
	if client != nil && cfg.ParserCacheTTL > 0 {
		s = parser.NewCached(s, redisRepo.NewCache(client, parserCachePrefix), cfg.ParserCacheTTL, l)
	}
	return s
}

// newPublisher returns the AMQP publisher when AMQP_URL is set and the log
// publisher otherwise. The returned close func may be nil.
func newPublisher(cfg *config.Config, l zerolog.Logger) (eventpublisher.Publisher, func() error, error) {
	if cfg.AMQPURL == "" {
		return eventpublisher.NewLogPublisher(l), nil, nil
	}

	p, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to amqp: %w", err)
	}
	l.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing events to amqp")
	return p, p.Close, nil
}
