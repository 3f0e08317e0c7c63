package domain

import (
	"github.com/shopspring/decimal"
)

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Defaults for a fresh install.
const (
	DefaultBudget   = 5000
	DefaultCurrency = "PKR"
	DefaultLanguage = "en"
	DefaultTheme    = ThemeDark
)

// Currency is a supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Language is a supported UI language.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
	RTL    bool   `json:"rtl"`
}

var currencies = []Currency{
	{Code: "PKR", Symbol: "Rs", Name: "Pakistani Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
}

var languages = []Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "ur", Name: "Urdu", Native: "اردو", RTL: true},
	{Code: "ar", Name: "Arabic", Native: "العربية", RTL: true},
	{Code: "fr", Name: "French", Native: "Français"},
	{Code: "zh", Name: "Chinese", Native: "中文"},
	{Code: "id", Name: "Indonesian", Native: "Bahasa"},
	{Code: "ja", Name: "Japanese", Native: "日本語"},
	{Code: "de", Name: "German", Native: "Deutsch"},
	{Code: "it", Name: "Italian", Native: "Italiano"},
}

// Currencies returns the supported currencies in display order.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// LookupCurrency finds a currency by code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a language by code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Settings are the user preferences stored alongside the ledger.
type Settings struct {
	Currency string
	Language string
	Theme    Theme
}

// RTL reports whether the configured language is written right to left.
func (s Settings) RTL() bool {
	l, ok := LookupLanguage(s.Language)
	return ok && l.RTL
}

// CurrencySymbol returns the symbol for the configured currency, or the
// code itself when it is not in the table.
func (s Settings) CurrencySymbol() string {
	if c, ok := LookupCurrency(s.Currency); ok {
		return c.Symbol
	}
	return s.Currency
}

// State is the whole application aggregate. It is treated as an immutable
// value: every change goes through Reduce and produces a new State.
type State struct {
	Transactions []Transaction
	Debts        []Debt
	Goals        []Goal
	Categories   []CategoryInfo
	Budget       decimal.Decimal
	Currency     string
	Language     string
	Theme        Theme
}

// DefaultState returns the state of a fresh install.
func DefaultState() State {
	return State{
		Transactions: []Transaction{},
		Debts:        []Debt{},
		Goals:        []Goal{},
		Categories:   DefaultCategories(),
		Budget:       decimal.NewFromInt(DefaultBudget),
		Currency:     DefaultCurrency,
		Language:     DefaultLanguage,
		Theme:        DefaultTheme,
	}
}

// Settings returns the preference part of the state.
func (s State) Settings() Settings {
	return Settings{Currency: s.Currency, Language: s.Language, Theme: s.Theme}
}

// Clone returns a deep copy of the state's collections.
func (s State) Clone() State {
	out := s
	out.Transactions = append([]Transaction{}, s.Transactions...)
	out.Debts = append([]Debt{}, s.Debts...)
	out.Goals = append([]Goal{}, s.Goals...)
	out.Categories = append([]CategoryInfo{}, s.Categories...)
	return out
}

// FindTransaction returns the transaction with the given id.
func (s State) FindTransaction(id string) (Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// FindGoal returns the goal with the given id.
func (s State) FindGoal(id string) (Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
