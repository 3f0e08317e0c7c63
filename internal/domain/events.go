package domain

import "time"

// Event types
const (
	EventTypeTransactionAdded   = "transaction.added"
	EventTypeTransactionDeleted = "transaction.deleted"
	EventTypeCategoryAdded      = "category.added"
	EventTypeCategoryDeleted    = "category.deleted"
	EventTypeDebtAdded          = "debt.added"
	EventTypeDebtDeleted        = "debt.deleted"
	EventTypeGoalAdded          = "goal.added"
	EventTypeGoalDeleted        = "goal.deleted"
	EventTypeGoalContributed    = "goal.contributed"
	EventTypeBudgetSet          = "budget.set"
	EventTypeSettingsUpdated    = "settings.updated"
	EventTypeStateImported      = "state.imported"
	EventTypeStateReset         = "state.reset"
)

// Event records a state change that was applied and persisted.
type Event struct {
	At          time.Time
	Payload     map[string]any
	ID          string
	Type        string
	AggregateID string
}

// EventFromAction builds the event describing an applied action. next is
// the state after the action.
func EventFromAction(id string, action Action, next State, at time.Time) Event {
	e := Event{
		ID:      id,
		Type:    action.EventType(),
		At:      at,
		Payload: map[string]any{},
	}

	switch a := action.(type) {
	case AddTransaction:
		e.AggregateID = a.Transaction.ID
		e.Payload["amount"] = a.Transaction.Amount.String()
		e.Payload["type"] = string(a.Transaction.Type)
		e.Payload["category"] = a.Transaction.Category
	case DeleteTransaction:
		e.AggregateID = a.ID
	case AddCategory:
		e.AggregateID = a.Category.ID
		e.Payload["name"] = a.Category.Name
	case DeleteCategory:
		e.AggregateID = a.ID
	case AddDebt:
		e.AggregateID = a.Debt.ID
		e.Payload["person"] = a.Debt.Person
		e.Payload["amount"] = a.Debt.Amount.String()
		e.Payload["type"] = string(a.Debt.Type)
	case DeleteDebt:
		e.AggregateID = a.ID
	case AddGoal:
		e.AggregateID = a.Goal.ID
		e.Payload["name"] = a.Goal.Name
		e.Payload["target"] = a.Goal.Target.String()
	case DeleteGoal:
		e.AggregateID = a.ID
	case ContributeGoal:
		e.AggregateID = a.ID
		e.Payload["amount"] = a.Amount.String()
		if g, ok := next.FindGoal(a.ID); ok {
			e.Payload["current"] = g.Current.String()
		}
	case SetBudget:
		e.Payload["budget"] = a.Amount.String()
	case UpdateSettings:
		e.Payload["currency"] = next.Currency
		e.Payload["language"] = next.Language
		e.Payload["theme"] = string(next.Theme)
	case ReplaceState, ResetState:
		e.Payload["transactions"] = len(next.Transactions)
		e.Payload["categories"] = len(next.Categories)
	}

	return e
}
