package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// MaxParseTextLength caps the text sent to a parser.
const MaxParseTextLength = 500

// ParseHint is shown when no suggestion could be produced.
const ParseHint = "Could not understand that. Please enter the transaction manually."

// ParseUseCase turns free text into a pre-filled transaction.
type ParseUseCase struct {
	ledger    Ledger
	suggester Suggester
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewParseUseCase creates a new ParseUseCase.
func NewParseUseCase(ledger Ledger, suggester Suggester, logger zerolog.Logger, m *metrics.Metrics) *ParseUseCase {
	return &ParseUseCase{
		ledger:    ledger,
		suggester: suggester,
		logger:    logger,
		metrics:   m,
	}
}

// ParseResult carries either a suggestion or a hint, never both.
type ParseResult struct {
	Suggestion *domain.Suggestion
	Hint       string
}

// Parse asks the configured parser for a suggestion. Parser failures are
// reported through the hint, not as an error.
func (uc *ParseUseCase) Parse(ctx context.Context, text string) (*ParseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	if len(text) > MaxParseTextLength {
		return nil, fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidInput, MaxParseTextLength)
	}

	if uc.suggester == nil {
		return &ParseResult{Hint: ParseHint}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultParseTimeout)
	defer cancel()

	names := domain.CategoryNames(uc.ledger.Snapshot().Categories)
	provider := uc.suggester.Name()

	start := time.Now()
	suggestion, err := uc.suggester.Suggest(ctx, text, names)
	if uc.metrics != nil {
		uc.metrics.ParserDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	}

	if err != nil || suggestion == nil {
		uc.logger.Info().Err(err).Str("provider", provider).Msg("parser returned no suggestion")
		uc.countParse(provider, "miss")
		return &ParseResult{Hint: ParseHint}, nil
	}

	sanitized := suggestion.Sanitize(names, domain.FallbackCategory(names))
	uc.countParse(provider, "hit")

	return &ParseResult{Suggestion: &sanitized}, nil
}

func (uc *ParseUseCase) countParse(provider, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ParserRequests.WithLabelValues(provider, outcome).Inc()
	}
}
