package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency = errors.New("unsupported currency code")
	ErrInvalidLanguage = errors.New("unsupported language code")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrNotesTooLong    = errors.New("notes too long")
)

// Validation constants
const (
	MaxNameLength  = 64
	MaxNotesLength = 500
	MaxAmount      = "1000000000000" // 1 trillion
)

// ValidateAmount validates a user-entered amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateNotes validates free-text notes.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrNotesTooLong, MaxNotesLength)
	}
	return nil
}

// ValidateCurrency validates a currency code against the supported table.
func ValidateCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := LookupCurrency(code); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}
	return nil
}

// ValidateLanguage validates a language code against the supported table.
func ValidateLanguage(code string) error {
	if _, ok := LookupLanguage(strings.ToLower(strings.TrimSpace(code))); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLanguage, code)
	}
	return nil
}

// ValidateTheme validates a theme name.
func ValidateTheme(theme string) error {
	switch Theme(theme) {
	case ThemeDark, ThemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
}
