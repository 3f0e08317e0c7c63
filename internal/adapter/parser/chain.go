package parser

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// Chain asks each provider in turn and returns the first suggestion.
type Chain struct {
	providers []usecase.Suggester
	logger    zerolog.Logger
}

// NewChain creates a chain. Put the offline rules parser last.
func NewChain(logger zerolog.Logger, providers ...usecase.Suggester) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

// Name lists the providers in order, e.g. "openai>rules".
func (c *Chain) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, ">")
}

// Suggest returns the first provider's suggestion. When every provider
// fails the errors are joined.
func (c *Chain) Suggest(ctx context.Context, text string, categories []string) (*domain.Suggestion, error) {
	var errs []error

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		s, err := p.Suggest(ctx, text, categories)
		if err == nil && s != nil {
			if s.Source == "" {
				s.Source = p.Name()
			}
			return s, nil
		}
		if err == nil {
			err = domain.ErrNoSuggestion
		}

		c.logger.Debug().Err(err).Str("provider", p.Name()).Msg("provider gave no suggestion")
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, domain.ErrNoSuggestion
	}
	return nil, errors.Join(errs...)
}
