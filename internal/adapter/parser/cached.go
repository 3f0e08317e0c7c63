package parser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// Cache stores raw bytes with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cached remembers suggestions so repeated notes skip the provider.
type Cached struct {
	next   usecase.Suggester
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCached wraps next with cache.
func NewCached(next usecase.Suggester, cache Cache, ttl time.Duration, logger zerolog.Logger) *Cached {
	return &Cached{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Name reports the wrapped provider's name.
func (c *Cached) Name() string { return c.next.Name() }

type cachedSuggestion struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
	Source   string          `json:"source"`
}

// Suggest serves from the cache when possible. Cache failures are logged
// and bypassed.
func (c *Cached) Suggest(ctx context.Context, text string, categories []string) (*domain.Suggestion, error) {
	key := cacheKey(text, categories)

	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn().Err(err).Msg("suggestion cache read failed")
	} else if ok {
		var cs cachedSuggestion
		if err := json.Unmarshal(raw, &cs); err == nil {
			return &domain.Suggestion{
				Amount:   cs.Amount,
				Type:     domain.TransactionType(cs.Type),
				Category: cs.Category,
				Notes:    cs.Notes,
				Source:   cs.Source,
			}, nil
		}
	}

	s, err := c.next.Suggest(ctx, text, categories)
	if err != nil || s == nil {
		return s, err
	}

	raw, err := json.Marshal(cachedSuggestion{
		Amount:   s.Amount,
		Type:     string(s.Type),
		Category: s.Category,
		Notes:    s.Notes,
		Source:   s.Source,
	})
	if err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Warn().Err(err).Msg("suggestion cache write failed")
		}
	}

	return s, nil
}

func cacheKey(text string, categories []string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(normalize(text))))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(categories, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}
