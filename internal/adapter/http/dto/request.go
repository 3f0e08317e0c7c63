package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// AddTransactionRequest represents a request to record a transaction.
// Amounts are accepted as JSON numbers or numeric strings.
type AddTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
	Date     *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTransactionRequest) ToUseCaseInput() (usecase.AddTransactionInput, error) {
	typ, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	return usecase.AddTransactionInput{
		Amount:   r.Amount,
		Type:     typ,
		Category: r.Category,
		Notes:    r.Notes,
		Date:     r.Date,
	}, nil
}

// ParseRequest carries free text to turn into a transaction guess.
type ParseRequest struct {
	Text string `json:"text"`
}

// AddCategoryRequest represents a request to create a category.
type AddCategoryRequest struct {
	Name     string `json:"name"`
	IconName string `json:"iconName"`
}

// ToUseCaseInput converts to use case input.
func (r *AddCategoryRequest) ToUseCaseInput() usecase.AddCategoryInput {
	return usecase.AddCategoryInput{
		Name:     r.Name,
		IconName: r.IconName,
	}
}

// AddDebtRequest represents a request to record a debt.
type AddDebtRequest struct {
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
	Note   string          `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *AddDebtRequest) ToUseCaseInput() usecase.AddDebtInput {
	return usecase.AddDebtInput{
		Person: r.Person,
		Amount: r.Amount,
		Type:   domain.DebtType(strings.ToLower(strings.TrimSpace(r.Type))),
		Note:   r.Note,
	}
}

// AddGoalRequest represents a request to create a savings goal.
type AddGoalRequest struct {
	Name   string          `json:"name"`
	Target decimal.Decimal `json:"target"`
}

// ToUseCaseInput converts to use case input.
func (r *AddGoalRequest) ToUseCaseInput() usecase.AddGoalInput {
	return usecase.AddGoalInput{
		Name:   r.Name,
		Target: r.Target,
	}
}

// AmountRequest carries a single amount, used for goal contributions and
// the budget.
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// Value returns the amount or an error when it is missing.
func (r *AmountRequest) Value() (decimal.Decimal, error) {
	if r.Amount == nil {
		return decimal.Zero, fmt.Errorf("%w: amount is required", domain.ErrInvalidInput)
	}
	return *r.Amount, nil
}

// UpdateSettingsRequest changes preferences. Omitted fields are kept.
type UpdateSettingsRequest struct {
	Currency *string `json:"currency,omitempty"`
	Language *string `json:"language,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSettingsRequest) ToUseCaseInput() usecase.UpdateSettingsInput {
	return usecase.UpdateSettingsInput{
		Currency: r.Currency,
		Language: r.Language,
		Theme:    r.Theme,
	}
}
