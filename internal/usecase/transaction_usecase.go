package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// TransactionUseCase records, deletes and searches transactions.
type TransactionUseCase struct {
	ledger  Ledger
	idGen   IDGenerator
	clock   Clock
	metrics *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(ledger Ledger, idGen IDGenerator, clock Clock, m *metrics.Metrics) *TransactionUseCase {
	return &TransactionUseCase{
		ledger:  ledger,
		idGen:   idGen,
		clock:   clock,
		metrics: m,
	}
}

// AddTransactionInput represents input for recording a transaction.
type AddTransactionInput struct {
	Amount   decimal.Decimal
	Type     domain.TransactionType
	Category string
	Notes    string
	// Date defaults to now.
	Date *time.Time
}

// AddTransaction validates and records a transaction.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	date := uc.clock.Now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	tx := domain.Transaction{
		ID:       uc.idGen.Generate(),
		Amount:   input.Amount,
		Type:     input.Type,
		Category: strings.TrimSpace(input.Category),
		Notes:    strings.TrimSpace(input.Notes),
		Date:     date,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ledger.Apply(ctx, domain.AddTransaction{Transaction: tx}); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsAdded.WithLabelValues(string(tx.Type)).Inc()
		uc.metrics.TransactionAmount.WithLabelValues(string(tx.Type)).Observe(tx.Amount.InexactFloat64())
	}

	return &tx, nil
}

// GetTransaction returns a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, ok := uc.ledger.Snapshot().FindTransaction(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := uc.ledger.Apply(ctx, domain.DeleteTransaction{ID: id}); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// SearchTransactionsInput represents the history filters.
type SearchTransactionsInput struct {
	Query    string
	Category string
	// Type is "income", "expense" or empty for both.
	Type string
}

// TransactionHistory is a filtered history grouped by calendar day.
type TransactionHistory struct {
	Groups []domain.DayGroup
	Count  int
}

// SearchTransactions filters the history and groups it by day.
func (uc *TransactionUseCase) SearchTransactions(ctx context.Context, input SearchTransactionsInput) (*TransactionHistory, error) {
	filter := domain.Filter{
		Query:    input.Query,
		Category: input.Category,
	}

	if input.Type != "" && !strings.EqualFold(input.Type, "all") {
		typ, err := domain.ParseTransactionType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = typ
	}

	matched := domain.Search(uc.ledger.Snapshot().Transactions, filter)

	return &TransactionHistory{
		Groups: domain.GroupByDay(matched, uc.clock.Now().Location()),
		Count:  len(matched),
	}, nil
}
