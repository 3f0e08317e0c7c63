// Package parser turns free-form notes such as "spent 250 on lunch" into
// transaction suggestions.
package parser

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
)

const maxRuleNotesLength = 64

var (
	thousandsSepRe = regexp.MustCompile(`(\d),(\d{3})`)
	amountRe       = regexp.MustCompile(`(?i)(\d+(?:\.\d{1,2})?)(k)?\b`)
	currencyRe     = regexp.MustCompile(`(?i)\b(?:rs|pkr|usd|eur|inr|rupees?)\b\.?|[$€£₹¥]`)

	incomeRe = regexp.MustCompile(`(?i)\b(?:salary|received|receive|got|earned|income|allowance|stipend|pocket money|refund|sold|won|gift from)\b`)
)

// categoryKeywords maps built-in category names to words that imply them.
var categoryKeywords = map[string][]string{
	"Food":       {"lunch", "dinner", "breakfast", "meal", "mess", "canteen", "biryani", "pizza", "burger", "roti", "rice", "food"},
	"Snacks":     {"chips", "chai", "tea", "coffee", "snack", "biscuit", "juice", "samosa", "fries"},
	"Transport":  {"bus", "rickshaw", "uber", "careem", "taxi", "fuel", "petrol", "metro", "train", "fare"},
	"Laundry":    {"laundry", "wash", "washing", "ironing", "dhobi", "detergent"},
	"Stationary": {"pen", "pencil", "notebook", "copy", "printout", "photocopy", "stationery", "book"},
	"Internet":   {"internet", "wifi", "data", "package", "mobile load", "recharge"},
}

// RulesParser is an offline parser built on regular expressions and keyword
// lists. It never calls out of process.
type RulesParser struct{}

// NewRulesParser creates a new RulesParser.
func NewRulesParser() *RulesParser { return &RulesParser{} }

// Name identifies the provider in logs and metrics.
func (p *RulesParser) Name() string { return "rules" }

// Suggest extracts an amount, a direction and a category from text.
func (p *RulesParser) Suggest(ctx context.Context, text string, categories []string) (*domain.Suggestion, error) {
	text = normalize(text)

	amount, ok := guessAmount(text)
	if !ok {
		return nil, domain.ErrNoSuggestion
	}

	typ := domain.TransactionTypeExpense
	if incomeRe.MatchString(text) {
		typ = domain.TransactionTypeIncome
	}

	return &domain.Suggestion{
		Amount:   amount,
		Type:     typ,
		Category: guessCategory(text, categories),
		Notes:    guessNotes(text),
		Source:   p.Name(),
	}, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func guessAmount(text string) (decimal.Decimal, bool) {
	cleaned := thousandsSepRe.ReplaceAllString(text, "$1$2")

	m := amountRe.FindStringSubmatch(cleaned)
	if len(m) < 2 {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	if m[2] != "" {
		amount = amount.Mul(decimal.NewFromInt(1000))
	}
	return amount, true
}

func guessCategory(text string, categories []string) string {
	lower := strings.ToLower(text)

	// Longest name first so "Room Items" beats "Room".
	byLength := append([]string(nil), categories...)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })
	for _, c := range byLength {
		if c != "" && containsWord(lower, strings.ToLower(c)) {
			return c
		}
	}

	for _, c := range categories {
		for name, words := range categoryKeywords {
			if !strings.EqualFold(name, c) {
				continue
			}
			for _, w := range words {
				if containsWord(lower, w) {
					return c
				}
			}
		}
	}

	return domain.FallbackCategory(categories)
}

func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(text[idx-1])
		end := idx + len(word)
		after := end == len(text) || !isWordByte(text[end])
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += next + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func guessNotes(text string) string {
	notes := thousandsSepRe.ReplaceAllString(text, "$1$2")
	notes = amountRe.ReplaceAllString(notes, "")
	notes = currencyRe.ReplaceAllString(notes, "")
	notes = normalize(notes)

	if utf8.RuneCountInString(notes) > maxRuleNotesLength {
		notes = string([]rune(notes)[:maxRuleNotesLength])
	}
	return notes
}
