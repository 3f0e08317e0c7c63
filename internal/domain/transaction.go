package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// ParseTransactionType accepts "income"/"expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// Transaction is a single income or expense record. Once created it is
// never edited, only deleted.
type Transaction struct {
	Date     time.Time
	ID       string
	Category string
	Notes    string
	Type     TransactionType
	Amount   decimal.Decimal
}

// Validate checks the invariants enforced when a transaction is recorded.
// Aggregation tolerates records that would fail here.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, t.Type)
	}

	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	return nil
}

// HasDate reports whether the timestamp could be parsed.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome reports whether the transaction is an income.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}
