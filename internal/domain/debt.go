package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DebtType is the direction of an informal debt ("udhaar").
type DebtType string

const (
	// DebtTypeOwe means the user owes the person.
	DebtTypeOwe DebtType = "owe"
	// DebtTypeOwed means the person owes the user.
	DebtTypeOwed DebtType = "owed"
)

// Debt is an IOU between the user and a named person. It is not linked
// to any transaction.
type Debt struct {
	ID     string
	Person string
	Note   string
	Type   DebtType
	Amount decimal.Decimal
}

// Validate validates a new debt.
func (d *Debt) Validate() error {
	if strings.TrimSpace(d.Person) == "" {
		return fmt.Errorf("%w: person is required", ErrInvalidInput)
	}
	if d.Type != DebtTypeOwe && d.Type != DebtTypeOwed {
		return fmt.Errorf("%w: %q", ErrInvalidDebtType, d.Type)
	}
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// DebtSummary totals debts in each direction.
type DebtSummary struct {
	TotalOwe  decimal.Decimal
	TotalOwed decimal.Decimal
	// Net is positive when others owe the user more than the user owes.
	Net decimal.Decimal
}

// SummarizeDebts computes totals over debts.
func SummarizeDebts(debts []Debt) DebtSummary {
	var s DebtSummary
	for _, d := range debts {
		switch d.Type {
		case DebtTypeOwe:
			s.TotalOwe = s.TotalOwe.Add(d.Amount)
		case DebtTypeOwed:
			s.TotalOwed = s.TotalOwed.Add(d.Amount)
		}
	}
	s.Net = s.TotalOwed.Sub(s.TotalOwe)
	return s
}
