package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayout matches what browsers produce for Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var zonedLayouts = []string{
	time.RFC3339Nano,
	timestampLayout,
}

// localLayouts carry no offset and are read as wall time in the caller's
// location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// ParseTimestamp parses the timestamp formats found in saved documents.
// Timestamps without an offset are read in loc, UTC when loc is nil.
// Unparseable input yields the zero time.
func ParseTimestamp(s string, loc *time.Location) time.Time {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTimestamp renders t in UTC with millisecond precision. The zero time
// renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

// number is a decimal written as a bare JSON number.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = number(decimal.Zero)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = number(d)
	return nil
}

type transactionDoc struct {
	ID       string `json:"id"`
	Amount   number `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes,omitempty"`
}

type debtDoc struct {
	ID     string `json:"id"`
	Person string `json:"person"`
	Amount number `json:"amount"`
	Type   string `json:"type"`
	Note   string `json:"note,omitempty"`
}

type goalDoc struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Target  number `json:"target"`
	Current number `json:"current"`
}

type categoryDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
}

// stateDoc is the persisted document. Pointer fields distinguish a missing
// key from an empty value.
type stateDoc struct {
	Transactions *[]transactionDoc `json:"transactions"`
	Debts        *[]debtDoc        `json:"debts"`
	Goals        *[]goalDoc        `json:"goals"`
	Categories   *[]categoryDoc    `json:"categories"`
	Budget       *number           `json:"budget"`
	Currency     *string           `json:"currency"`
	Language     *string           `json:"language"`
	Theme        *string           `json:"theme"`
}

// EncodeState serializes s as the persisted JSON document.
func EncodeState(s State) ([]byte, error) {
	txs := make([]transactionDoc, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		txs = append(txs, transactionDoc{
			ID:       t.ID,
			Amount:   number(t.Amount),
			Type:     string(t.Type),
			Category: t.Category,
			Date:     FormatTimestamp(t.Date),
			Notes:    t.Notes,
		})
	}

	debts := make([]debtDoc, 0, len(s.Debts))
	for _, d := range s.Debts {
		debts = append(debts, debtDoc{
			ID:     d.ID,
			Person: d.Person,
			Amount: number(d.Amount),
			Type:   string(d.Type),
			Note:   d.Note,
		})
	}

	goals := make([]goalDoc, 0, len(s.Goals))
	for _, g := range s.Goals {
		goals = append(goals, goalDoc{
			ID:      g.ID,
			Name:    g.Name,
			Target:  number(g.Target),
			Current: number(g.Current),
		})
	}

	cats := make([]categoryDoc, 0, len(s.Categories))
	for _, c := range s.Categories {
		cats = append(cats, categoryDoc{ID: c.ID, Name: c.Name, IconName: c.IconName})
	}

	budget := number(s.Budget)
	theme := string(s.Theme)
	doc := stateDoc{
		Transactions: &txs,
		Debts:        &debts,
		Goals:        &goals,
		Categories:   &cats,
		Budget:       &budget,
		Currency:     &s.Currency,
		Language:     &s.Language,
		Theme:        &theme,
	}

	return json.Marshal(doc)
}

// DecodeState parses a persisted document. Missing fields take their
// default values; anything that is not a JSON object is ErrMalformedState.
// Dates without an offset are read in loc.
func DecodeState(data []byte, loc *time.Location) (State, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return State{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedState)
	}

	var doc stateDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	s := DefaultState()

	if doc.Transactions != nil {
		s.Transactions = make([]Transaction, 0, len(*doc.Transactions))
		for _, t := range *doc.Transactions {
			s.Transactions = append(s.Transactions, Transaction{
				ID:       t.ID,
				Amount:   decimal.Decimal(t.Amount),
				Type:     TransactionType(t.Type),
				Category: t.Category,
				Date:     ParseTimestamp(t.Date, loc),
				Notes:    t.Notes,
			})
		}
	}

	if doc.Debts != nil {
		s.Debts = make([]Debt, 0, len(*doc.Debts))
		for _, d := range *doc.Debts {
			s.Debts = append(s.Debts, Debt{
				ID:     d.ID,
				Person: d.Person,
				Amount: decimal.Decimal(d.Amount),
				Type:   DebtType(d.Type),
				Note:   d.Note,
			})
		}
	}

	if doc.Goals != nil {
		s.Goals = make([]Goal, 0, len(*doc.Goals))
		for _, g := range *doc.Goals {
			s.Goals = append(s.Goals, Goal{
				ID:      g.ID,
				Name:    g.Name,
				Target:  decimal.Decimal(g.Target),
				Current: decimal.Decimal(g.Current),
			})
		}
	}

	if doc.Categories != nil {
		s.Categories = make([]CategoryInfo, 0, len(*doc.Categories))
		for _, c := range *doc.Categories {
			s.Categories = append(s.Categories, CategoryInfo{ID: c.ID, Name: c.Name, IconName: c.IconName})
		}
	}

	if doc.Budget != nil {
		s.Budget = decimal.Decimal(*doc.Budget)
	}
	if doc.Currency != nil {
		s.Currency = *doc.Currency
	}
	if doc.Language != nil {
		s.Language = *doc.Language
	}
	if doc.Theme != nil {
		s.Theme = Theme(*doc.Theme)
	}

	return Normalize(s), nil
}

// LoadOrDefault decodes data and falls back to DefaultState on any error.
// The returned error is informational only.
func LoadOrDefault(data []byte, loc *time.Location) (State, error) {
	if len(data) == 0 {
		return DefaultState(), nil
	}
	s, err := DecodeState(data, loc)
	if err != nil {
		return DefaultState(), err
	}
	return s, nil
}
