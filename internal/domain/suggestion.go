package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Suggestion is a best-effort guess at a transaction from free text. It is
// only used to pre-fill an entry form and is never recorded as is.
type Suggestion struct {
	Amount   decimal.Decimal
	Type     TransactionType
	Category string
	Notes    string
	// Source names the provider that produced the guess.
	Source string
}

// Sanitize coerces the guess onto known values: unknown types become
// Expense and unknown categories become the fallback category.
func (s Suggestion) Sanitize(categories []string, fallback string) Suggestion {
	if s.Type != TransactionTypeIncome {
		s.Type = TransactionTypeExpense
	}

	matched := false
	for _, c := range categories {
		if strings.EqualFold(c, s.Category) {
			s.Category = c
			matched = true
			break
		}
	}
	if !matched {
		s.Category = fallback
	}

	if s.Amount.IsNegative() {
		s.Amount = s.Amount.Abs()
	}

	return s
}

// FallbackCategory picks the category used when a guess matches nothing:
// "Misc" when present, otherwise the last category.
func FallbackCategory(categories []string) string {
	for _, c := range categories {
		if strings.EqualFold(c, "Misc") {
			return c
		}
	}
	if len(categories) == 0 {
		return "Misc"
	}
	return categories[len(categories)-1]
}

// CategoryNames lists the names of categories in order.
func CategoryNames(categories []CategoryInfo) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
