package domain

import "errors"

var (
	// Input errors
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidDebtType        = errors.New("invalid debt type")
	ErrInvalidTimeframe       = errors.New("invalid timeframe")

	// Lookup errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDebtNotFound        = errors.New("debt not found")
	ErrGoalNotFound        = errors.New("goal not found")

	// State errors
	ErrLastCategory   = errors.New("at least one category must remain")
	ErrUnknownAction  = errors.New("unknown action")
	ErrMalformedState = errors.New("malformed state document")
	ErrStateNotFound  = errors.New("state not found")

	// Parser errors
	ErrNoSuggestion = errors.New("could not understand the text")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
