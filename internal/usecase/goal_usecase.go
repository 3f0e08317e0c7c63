package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
)

// GoalUseCase manages savings goals.
type GoalUseCase struct {
	ledger Ledger
	idGen  IDGenerator
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(ledger Ledger, idGen IDGenerator) *GoalUseCase {
	return &GoalUseCase{
		ledger: ledger,
		idGen:  idGen,
	}
}

// AddGoalInput represents input for creating a goal.
type AddGoalInput struct {
	Name   string
	Target decimal.Decimal
}

// ListGoals returns all goals.
func (uc *GoalUseCase) ListGoals(ctx context.Context) []domain.Goal {
	return uc.ledger.Snapshot().Goals
}

// AddGoal creates a goal with nothing saved yet.
func (uc *GoalUseCase) AddGoal(ctx context.Context, input AddGoalInput) (*domain.Goal, error) {
	goal := domain.Goal{
		ID:      uc.idGen.Generate(),
		Name:    strings.TrimSpace(input.Name),
		Target:  input.Target,
		Current: decimal.Zero,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ledger.Apply(ctx, domain.AddGoal{Goal: goal}); err != nil {
		return nil, err
	}

	return &goal, nil
}

// DeleteGoal removes a goal.
func (uc *GoalUseCase) DeleteGoal(ctx context.Context, id string) error {
	_, err := uc.ledger.Apply(ctx, domain.DeleteGoal{ID: id})
	return err
}

// Contribute adds amount to a goal's saved total.
func (uc *GoalUseCase) Contribute(ctx context.Context, id string, amount decimal.Decimal) (*domain.Goal, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	next, err := uc.ledger.Apply(ctx, domain.ContributeGoal{ID: id, Amount: amount})
	if err != nil {
		return nil, err
	}

	goal, ok := next.FindGoal(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, id)
	}
	return &goal, nil
}
