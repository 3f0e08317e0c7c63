package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Action is a state change request handled by Reduce.
type Action interface {
	// EventType names the event emitted once the action is applied.
	EventType() string
}

type (
	AddTransaction    struct{ Transaction Transaction }
	DeleteTransaction struct{ ID string }
	AddCategory       struct{ Category CategoryInfo }
	DeleteCategory    struct{ ID string }
	AddDebt           struct{ Debt Debt }
	DeleteDebt        struct{ ID string }
	AddGoal           struct{ Goal Goal }
	DeleteGoal        struct{ ID string }

	ContributeGoal struct {
		ID     string
		Amount decimal.Decimal
	}

	SetBudget struct{ Amount decimal.Decimal }

	// UpdateSettings changes only the non-nil fields.
	UpdateSettings struct {
		Currency *string
		Language *string
		Theme    *Theme
	}

	// ReplaceState swaps in an imported state wholesale.
	ReplaceState struct{ State State }

	// ResetState restores DefaultState.
	ResetState struct{}
)

func (AddTransaction) EventType() string    { return EventTypeTransactionAdded }
func (DeleteTransaction) EventType() string { return EventTypeTransactionDeleted }
func (AddCategory) EventType() string       { return EventTypeCategoryAdded }
func (DeleteCategory) EventType() string    { return EventTypeCategoryDeleted }
func (AddDebt) EventType() string           { return EventTypeDebtAdded }
func (DeleteDebt) EventType() string        { return EventTypeDebtDeleted }
func (AddGoal) EventType() string           { return EventTypeGoalAdded }
func (DeleteGoal) EventType() string        { return EventTypeGoalDeleted }
func (ContributeGoal) EventType() string    { return EventTypeGoalContributed }
func (SetBudget) EventType() string         { return EventTypeBudgetSet }
func (UpdateSettings) EventType() string    { return EventTypeSettingsUpdated }
func (ReplaceState) EventType() string      { return EventTypeStateImported }
func (ResetState) EventType() string        { return EventTypeStateReset }

// Reduce applies action to s and returns the new state. s is never
// modified; the returned state shares no slices with it.
func Reduce(s State, action Action) (State, error) {
	next := s.Clone()

	switch a := action.(type) {
	case AddTransaction:
		next.Transactions = append([]Transaction{a.Transaction}, next.Transactions...)

	case DeleteTransaction:
		txs, ok := removeByID(next.Transactions, a.ID, func(t Transaction) string { return t.ID })
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrTransactionNotFound, a.ID)
		}
		next.Transactions = txs

	case AddCategory:
		next.Categories = append(next.Categories, a.Category)

	case DeleteCategory:
		if len(next.Categories) <= 1 {
			return s, ErrLastCategory
		}
		cats, ok := removeByID(next.Categories, a.ID, func(c CategoryInfo) string { return c.ID })
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrCategoryNotFound, a.ID)
		}
		next.Categories = cats

	case AddDebt:
		next.Debts = append(next.Debts, a.Debt)

	case DeleteDebt:
		debts, ok := removeByID(next.Debts, a.ID, func(d Debt) string { return d.ID })
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrDebtNotFound, a.ID)
		}
		next.Debts = debts

	case AddGoal:
		next.Goals = append(next.Goals, a.Goal)

	case DeleteGoal:
		goals, ok := removeByID(next.Goals, a.ID, func(g Goal) string { return g.ID })
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrGoalNotFound, a.ID)
		}
		next.Goals = goals

	case ContributeGoal:
		if !a.Amount.IsPositive() {
			return s, ErrInvalidAmount
		}
		found := false
		for i := range next.Goals {
			if next.Goals[i].ID == a.ID {
				next.Goals[i].Current = next.Goals[i].Current.Add(a.Amount)
				found = true
				break
			}
		}
		if !found {
			return s, fmt.Errorf("%w: %s", ErrGoalNotFound, a.ID)
		}

	case SetBudget:
		if a.Amount.IsNegative() {
			return s, fmt.Errorf("%w: budget cannot be negative", ErrInvalidAmount)
		}
		next.Budget = a.Amount

	case UpdateSettings:
		if a.Currency != nil {
			next.Currency = *a.Currency
		}
		if a.Language != nil {
			next.Language = *a.Language
		}
		if a.Theme != nil {
			next.Theme = *a.Theme
		}

	case ReplaceState:
		next = Normalize(a.State).Clone()

	case ResetState:
		next = DefaultState()

	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	return next, nil
}

// Normalize fills the gaps an imported or persisted state may have.
func Normalize(s State) State {
	def := DefaultState()
	if s.Transactions == nil {
		s.Transactions = def.Transactions
	}
	if s.Debts == nil {
		s.Debts = def.Debts
	}
	if s.Goals == nil {
		s.Goals = def.Goals
	}
	if len(s.Categories) == 0 {
		s.Categories = def.Categories
	}
	if s.Currency == "" {
		s.Currency = def.Currency
	}
	if s.Language == "" {
		s.Language = def.Language
	}
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	return s
}

func removeByID[T any](items []T, id string, key func(T) string) ([]T, bool) {
	for i, item := range items {
		if key(item) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}
