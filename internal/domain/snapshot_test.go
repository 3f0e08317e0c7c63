package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeStateDefaults(t *testing.T) {
	t.Parallel()

	s, err := DecodeState([]byte(`{"budget": 7000}`), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.Budget.Equal(dec(7000)) {
		t.Fatalf("expected budget 7000, got %s", s.Budget)
	}
	if s.Currency != DefaultCurrency || s.Language != DefaultLanguage || s.Theme != DefaultTheme {
		t.Fatalf("expected default settings, got %+v", s.Settings())
	}
	if len(s.Categories) != 7 || s.Categories[0].Name != "Food" {
		t.Fatalf("expected built-in categories, got %+v", s.Categories)
	}
	if s.Transactions == nil || s.Debts == nil || s.Goals == nil {
		t.Fatalf("expected empty lists, got nil")
	}
}

func TestDecodeStateReadsBrowserDocument(t *testing.T) {
	t.Parallel()

	doc := `{
		"transactions": [
			{"id": "1716200000000", "amount": 250, "type": "Expense", "category": "Food", "date": "2024-05-20T10:13:20.000Z", "notes": "lunch"},
			{"id": "x", "amount": 10.5, "type": "Income", "category": "Misc", "date": "not a date"}
		],
		"debts": [{"id": "d1", "person": "Ali", "amount": 500, "type": "owed"}],
		"goals": [{"id": "g1", "name": "Cycle", "target": 20000, "current": 1500}],
		"categories": [{"id": "1", "name": "Food", "iconName": "food"}],
		"budget": 6000,
		"currency": "USD",
		"language": "ur",
		"theme": "light",
		"unknown": true
	}`

	s, err := DecodeState([]byte(doc), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(s.Transactions))
	}
	want := time.Date(2024, time.May, 20, 10, 13, 20, 0, time.UTC)
	if !s.Transactions[0].Date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, s.Transactions[0].Date)
	}
	if s.Transactions[1].HasDate() {
		t.Fatalf("expected unparseable date to be zero")
	}
	if s.Debts[0].Type != DebtTypeOwed || !s.Goals[0].Current.Equal(dec(1500)) {
		t.Fatalf("unexpected debts/goals: %+v %+v", s.Debts, s.Goals)
	}
	if !s.Settings().RTL() {
		t.Fatalf("expected urdu to be RTL")
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "not json", "[]", "null", `{"budget": "abc"}`, `{"transactions": {}}`} {
		if _, err := DecodeState([]byte(doc), time.UTC); !errors.Is(err, ErrMalformedState) {
			t.Fatalf("expected ErrMalformedState for %q, got %v", doc, err)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	s, err := LoadOrDefault([]byte("{broken"), time.UTC)
	if err == nil {
		t.Fatalf("expected decode error to be reported")
	}
	if !s.Budget.Equal(dec(DefaultBudget)) || len(s.Categories) != 7 {
		t.Fatalf("expected default state, got %+v", s)
	}

	s, err = LoadOrDefault(nil, time.UTC)
	if err != nil || s.Currency != DefaultCurrency {
		t.Fatalf("expected defaults without error, got %+v %v", s, err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	s := DefaultState()
	s.Budget = dec(4200)
	s.Currency = "GBP"
	s.Categories = append(s.Categories, CategoryInfo{ID: "8", Name: "Gym", IconName: "gym"})
	s.Transactions = []Transaction{
		{ID: "a", Amount: dec(15), Type: TransactionTypeExpense, Category: "Gym", Date: time.Date(2024, time.May, 2, 8, 30, 0, 0, time.UTC), Notes: "day pass"},
	}

	first, err := EncodeState(s)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := DecodeState(first, time.UTC)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	second, err := EncodeState(decoded)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("round trip changed the document:\n%s\n%s", first, second)
	}
	if !decoded.Budget.Equal(s.Budget) || decoded.Currency != s.Currency || len(decoded.Categories) != len(s.Categories) {
		t.Fatalf("round trip lost fields: %+v", decoded)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	if got := FormatTimestamp(time.Time{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}

	at := time.Date(2024, time.January, 2, 3, 4, 5, 600_000_000, time.FixedZone("PKT", 5*60*60))
	if got := FormatTimestamp(at); got != "2024-01-01T22:04:05.600Z" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestParseTimestampReadsLocalLayoutsInLocation(t *testing.T) {
	t.Parallel()

	pkt := time.FixedZone("PKT", 5*60*60)

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want time.Time
	}{
		{name: "zoned ignores location", in: "2024-05-20T10:13:20.000Z", loc: pkt, want: time.Date(2024, time.May, 20, 10, 13, 20, 0, time.UTC)},
		{name: "wall clock in location", in: "2024-05-20T10:13:20", loc: pkt, want: time.Date(2024, time.May, 20, 10, 13, 20, 0, pkt)},
		{name: "date time in location", in: "2024-05-20 10:13:20", loc: pkt, want: time.Date(2024, time.May, 20, 10, 13, 20, 0, pkt)},
		{name: "date only in location", in: "2024-05-20", loc: pkt, want: time.Date(2024, time.May, 20, 0, 0, 0, 0, pkt)},
		{name: "nil location is utc", in: "2024-05-20", want: time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "yesterday", loc: pkt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.in, tt.loc)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecodeStateLocalDateStaysOnItsDay(t *testing.T) {
	t.Parallel()

	pkt := time.FixedZone("PKT", 5*60*60)
	s, err := DecodeState([]byte(`{"transactions":[{"id":"1","amount":5,"type":"Expense","category":"Food","date":"2024-05-20"}]}`), pkt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if y, m, d := s.Transactions[0].Date.In(pkt).Date(); y != 2024 || m != time.May || d != 20 {
		t.Fatalf("expected 2024-05-20 in PKT, got %s", s.Transactions[0].Date.In(pkt))
	}
}
