package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
)

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries uint64
	Timeout    time.Duration
}

// OpenAIParser asks a chat model to extract a transaction as JSON.
type OpenAIParser struct {
	client     *openai.Client
	model      string
	maxRetries uint64
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewOpenAIParser creates a parser for cfg.
func NewOpenAIParser(cfg OpenAIConfig, logger zerolog.Logger) *OpenAIParser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIParser{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// Name identifies the provider in logs and metrics.
func (p *OpenAIParser) Name() string { return "openai" }

type completionPayload struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
}

// Suggest sends text to the model, retrying server-side failures.
func (p *OpenAIParser) Suggest(ctx context.Context, text string, categories []string) (*domain.Suggestion, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(categories)},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Parse this spending note into a JSON transaction: %q", text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var resp openai.ChatCompletionResponse
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		resp, err = p.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return nil
		}
		if !isRetryableAPIError(err) {
			return backoff.Permanent(err)
		}
		p.logger.Warn().Err(err).Int("attempt", attempt).Msg("chat completion failed, retrying")
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, domain.ErrNoSuggestion
	}

	return decodeCompletion(resp.Choices[0].Message.Content, p.Name())
}

func decodeCompletion(content, source string) (*domain.Suggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload completionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSuggestion, err)
	}
	if !payload.Amount.IsPositive() {
		return nil, domain.ErrNoSuggestion
	}

	typ := domain.TransactionTypeExpense
	if parsed, err := domain.ParseTransactionType(payload.Type); err == nil {
		typ = parsed
	}

	return &domain.Suggestion{
		Amount:   payload.Amount,
		Type:     typ,
		Category: payload.Category,
		Notes:    strings.TrimSpace(payload.Notes),
		Source:   source,
	}, nil
}

func systemPrompt(categories []string) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	return fmt.Sprintf(`You are a financial assistant for a student.
Analyze the input and reply with a JSON object with these keys:
- amount (number)
- type (either "Income" or "Expense")
- category (must be one of: %s)
- notes (string)

Default to Expense if not clear. Default to "%s" if the category is not obvious.`,
		strings.Join(quoted, ", "), domain.FallbackCategory(categories))
}

func isRetryableAPIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	// Network errors carry no status.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
