package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. Current only grows through contributions and
// may overshoot Target.
type Goal struct {
	ID      string
	Name    string
	Target  decimal.Decimal
	Current decimal.Decimal
}

// Validate validates a new goal.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: goal name is required", ErrInvalidInput)
	}
	if g.Target.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: target must be positive", ErrInvalidAmount)
	}
	if g.Current.IsNegative() {
		return fmt.Errorf("%w: current cannot be negative", ErrInvalidAmount)
	}
	return nil
}

// Progress returns current/target*100, unbounded above. A non-positive
// target yields MaxProgressPercent once anything has been saved.
func (g Goal) Progress() decimal.Decimal {
	return percentOf(g.Current, g.Target)
}

// Reached reports whether the target has been met.
func (g Goal) Reached() bool {
	return g.Current.GreaterThanOrEqual(g.Target)
}
