package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
)

// DebtUseCase manages informal debts between the user and other people.
type DebtUseCase struct {
	ledger Ledger
	idGen  IDGenerator
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(ledger Ledger, idGen IDGenerator) *DebtUseCase {
	return &DebtUseCase{
		ledger: ledger,
		idGen:  idGen,
	}
}

// AddDebtInput represents input for recording a debt.
type AddDebtInput struct {
	Person string
	Amount decimal.Decimal
	Type   domain.DebtType
	Note   string
}

// DebtList is every debt plus its totals.
type DebtList struct {
	Debts   []domain.Debt
	Summary domain.DebtSummary
}

// ListDebts returns all debts and their summary.
func (uc *DebtUseCase) ListDebts(ctx context.Context) *DebtList {
	debts := uc.ledger.Snapshot().Debts
	return &DebtList{
		Debts:   debts,
		Summary: domain.SummarizeDebts(debts),
	}
}

// AddDebt records a debt.
func (uc *DebtUseCase) AddDebt(ctx context.Context, input AddDebtInput) (*domain.Debt, error) {
	if err := domain.ValidateNotes(input.Note); err != nil {
		return nil, err
	}

	debt := domain.Debt{
		ID:     uc.idGen.Generate(),
		Person: strings.TrimSpace(input.Person),
		Amount: input.Amount,
		Type:   input.Type,
		Note:   strings.TrimSpace(input.Note),
	}

	if err := debt.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ledger.Apply(ctx, domain.AddDebt{Debt: debt}); err != nil {
		return nil, err
	}

	return &debt, nil
}

// DeleteDebt removes a debt, typically once it has been settled.
func (uc *DebtUseCase) DeleteDebt(ctx context.Context, id string) error {
	_, err := uc.ledger.Apply(ctx, domain.DeleteDebt{ID: id})
	return err
}
