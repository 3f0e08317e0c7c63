package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
)

// SettingsUseCase manages the budget and user preferences.
type SettingsUseCase struct {
	ledger Ledger
	clock  Clock
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(ledger Ledger, clock Clock) *SettingsUseCase {
	return &SettingsUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// BudgetOverview is the budget screen.
type BudgetOverview struct {
	Budget          decimal.Decimal
	MonthlyExpense  decimal.Decimal
	RemainingBudget decimal.Decimal
	DailySafeSpend  decimal.Decimal
	DaysLeft        int
	Progress        domain.BudgetProgress
}

// GetBudget returns the budget and this month's progress against it.
func (uc *SettingsUseCase) GetBudget(ctx context.Context) *BudgetOverview {
	return budgetOverview(uc.ledger.Snapshot(), uc.clock.Now())
}

// SetBudget replaces the monthly budget. Zero is allowed.
func (uc *SettingsUseCase) SetBudget(ctx context.Context, amount decimal.Decimal) (*BudgetOverview, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget cannot be negative", domain.ErrInvalidAmount)
	}
	if !amount.IsZero() {
		if err := domain.ValidateAmount(amount); err != nil {
			return nil, err
		}
	}

	next, err := uc.ledger.Apply(ctx, domain.SetBudget{Amount: amount})
	if err != nil {
		return nil, err
	}

	return budgetOverview(next, uc.clock.Now()), nil
}

// GetSettings returns the user preferences.
func (uc *SettingsUseCase) GetSettings(ctx context.Context) domain.Settings {
	return uc.ledger.Snapshot().Settings()
}

// UpdateSettingsInput carries the preferences to change. Nil fields are
// left alone.
type UpdateSettingsInput struct {
	Currency *string
	Language *string
	Theme    *string
}

// UpdateSettings validates and applies preference changes.
func (uc *SettingsUseCase) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (domain.Settings, error) {
	action := domain.UpdateSettings{}

	if input.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if err := domain.ValidateCurrency(code); err != nil {
			return domain.Settings{}, err
		}
		action.Currency = &code
	}

	if input.Language != nil {
		code := strings.ToLower(strings.TrimSpace(*input.Language))
		if err := domain.ValidateLanguage(code); err != nil {
			return domain.Settings{}, err
		}
		action.Language = &code
	}

	if input.Theme != nil {
		if err := domain.ValidateTheme(*input.Theme); err != nil {
			return domain.Settings{}, err
		}
		theme := domain.Theme(*input.Theme)
		action.Theme = &theme
	}

	next, err := uc.ledger.Apply(ctx, action)
	if err != nil {
		return domain.Settings{}, err
	}

	return next.Settings(), nil
}

// Catalog lists the values a client may pick from.
type Catalog struct {
	Currencies []domain.Currency
	Languages  []domain.Language
	Icons      []domain.Icon
}

// GetCatalog returns the supported currencies, languages and icons.
func (uc *SettingsUseCase) GetCatalog(ctx context.Context) *Catalog {
	return &Catalog{
		Currencies: domain.Currencies(),
		Languages:  domain.Languages(),
		Icons:      domain.Icons(),
	}
}

func budgetOverview(s domain.State, now time.Time) *BudgetOverview {
	monthly := domain.MonthlyExpense(s.Transactions, now)
	return &BudgetOverview{
		Budget:          s.Budget,
		MonthlyExpense:  monthly,
		RemainingBudget: domain.RemainingBudget(s.Budget, monthly),
		DailySafeSpend:  domain.DailySafeSpend(s.Budget, monthly, now),
		DaysLeft:        domain.DaysLeftInMonth(now),
		Progress:        domain.ComputeBudgetProgress(monthly, s.Budget),
	}
}
