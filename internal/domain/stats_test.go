package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func expense(amount int64, category string, at time.Time) Transaction {
	return Transaction{ID: category + at.String(), Amount: dec(amount), Type: TransactionTypeExpense, Category: category, Date: at}
}

func income(amount int64, at time.Time) Transaction {
	return Transaction{ID: "inc" + at.String(), Amount: dec(amount), Type: TransactionTypeIncome, Category: "Salary", Date: at}
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		txs     []Transaction
		income  int64
		expense int64
	}{
		{name: "empty", txs: nil},
		{
			name:    "mixed across months",
			txs:     []Transaction{income(1000, now), expense(200, "Food", now), expense(50, "Food", now.AddDate(-1, 0, 0))},
			income:  1000,
			expense: 250,
		},
		{
			name:    "undated still counted",
			txs:     []Transaction{expense(75, "Misc", time.Time{})},
			expense: 75,
		},
		{
			name: "unknown type ignored",
			txs:  []Transaction{{ID: "x", Amount: dec(40), Type: "Transfer", Category: "Misc", Date: now}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.txs)
			if !got.Income.Equal(dec(tt.income)) || !got.Expense.Equal(dec(tt.expense)) {
				t.Fatalf("expected %d/%d, got %s/%s", tt.income, tt.expense, got.Income, got.Expense)
			}
			if !got.Income.Sub(got.Expense).Equal(got.Balance) {
				t.Fatalf("balance %s does not equal income - expense", got.Balance)
			}
		})
	}
}

func TestMonthlyExpenseUsesCalendarMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	txs := []Transaction{
		expense(100, "Food", time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)),
		expense(40, "Food", time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)),
		expense(60, "Food", time.Date(2023, time.February, 10, 8, 0, 0, 0, time.UTC)),
		income(500, time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)),
		expense(10, "Misc", time.Time{}),
	}

	if got := MonthlyExpense(txs, now); !got.Equal(dec(40)) {
		t.Fatalf("expected 40, got %s", got)
	}
}

func TestMonthlyExpenseConvertsToLocation(t *testing.T) {
	t.Parallel()

	karachi := time.FixedZone("PKT", 5*60*60)
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, karachi)
	// 2024-02-29 20:00 UTC is already March 1st in Karachi.
	tx := expense(30, "Food", time.Date(2024, time.February, 29, 20, 0, 0, 0, time.UTC))

	if got := MonthlyExpense([]Transaction{tx}, now); !got.Equal(dec(30)) {
		t.Fatalf("expected 30, got %s", got)
	}
}

func TestDailySafeSpend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		budget int64
		spent  int64
		now    time.Time
		want   int64
	}{
		{name: "first of 30-day month", budget: 3000, spent: 0, now: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), want: 100},
		{name: "floors the division", budget: 5000, spent: 0, now: time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC), want: 1666},
		{name: "last day divides by one", budget: 5000, spent: 4500, now: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), want: 500},
		{name: "over budget is zero", budget: 5000, spent: 6000, now: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailySafeSpend(dec(tt.budget), dec(tt.spent), tt.now)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("expected %d, got %s", tt.want, got)
			}
		})
	}
}

func TestDailySafeSpendNonIncreasing(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	budget := dec(5000)
	prev := DailySafeSpend(budget, decimal.Zero, now)

	for spent := int64(0); spent <= 7000; spent += 250 {
		got := DailySafeSpend(budget, dec(spent), now)
		if got.IsNegative() {
			t.Fatalf("safe spend negative at %d: %s", spent, got)
		}
		if got.GreaterThan(prev) {
			t.Fatalf("safe spend increased at %d: %s > %s", spent, got, prev)
		}
		prev = got
	}
}

func TestEmptyLedgerScenario(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.September, 20, 18, 0, 0, 0, time.UTC)
	totals := ComputeTotals(nil)
	if !totals.Income.IsZero() || !totals.Expense.IsZero() || !totals.Balance.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}

	// 11 days remain in September including the 20th.
	got := DailySafeSpend(dec(5000), MonthlyExpense(nil, now), now)
	if !got.Equal(dec(454)) {
		t.Fatalf("expected 454, got %s", got)
	}
}

func TestOverBudgetScenario(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{expense(6000, "Food", now)}

	monthly := MonthlyExpense(txs, now)
	progress := ComputeBudgetProgress(monthly, dec(5000))

	if !progress.IsOver {
		t.Fatalf("expected over budget")
	}
	if !progress.Percent.Equal(dec(120)) {
		t.Fatalf("expected 120%%, got %s", progress.Percent)
	}
	if progress.Status != BudgetStatusExceeded {
		t.Fatalf("expected exceeded status, got %s", progress.Status)
	}
	if got := DailySafeSpend(dec(5000), monthly, now); !got.IsZero() {
		t.Fatalf("expected zero safe spend, got %s", got)
	}
}

func TestComputeBudgetProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spent     int64
		budget    int64
		percent   decimal.Decimal
		status    BudgetStatus
		nearLimit bool
	}{
		{name: "on track", spent: 1000, budget: 5000, percent: dec(20), status: BudgetStatusOnTrack},
		{name: "warning", spent: 3750, budget: 5000, percent: dec(75), status: BudgetStatusWarning},
		{name: "near limit", spent: 4250, budget: 5000, percent: dec(85), status: BudgetStatusWarning, nearLimit: true},
		{name: "danger", spent: 4750, budget: 5000, percent: dec(95), status: BudgetStatusDanger, nearLimit: true},
		{name: "exactly at budget", spent: 5000, budget: 5000, percent: dec(100), status: BudgetStatusDanger, nearLimit: true},
		{name: "zero budget with spend", spent: 10, budget: 0, percent: MaxProgressPercent, status: BudgetStatusExceeded, nearLimit: true},
		{name: "zero budget no spend", spent: 0, budget: 0, percent: decimal.Zero, status: BudgetStatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBudgetProgress(dec(tt.spent), dec(tt.budget))
			if !got.Percent.Equal(tt.percent) {
				t.Fatalf("expected percent %s, got %s", tt.percent, got.Percent)
			}
			if got.Status != tt.status {
				t.Fatalf("expected status %s, got %s", tt.status, got.Status)
			}
			if got.NearLimit != tt.nearLimit {
				t.Fatalf("expected nearLimit %v, got %v", tt.nearLimit, got.NearLimit)
			}
		})
	}
}

func TestWindowFilter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)
	sixDays := expense(1, "a", now.AddDate(0, 0, -6))
	exactlyWeek := expense(2, "b", now.AddDate(0, 0, -7))
	eightDays := expense(3, "c", now.AddDate(0, 0, -8))
	earlyMonth := expense(4, "d", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	twoMonths := expense(5, "e", now.AddDate(0, -2, 0))
	fourMonths := expense(6, "f", now.AddDate(0, -4, 0))
	undated := expense(7, "g", time.Time{})

	txs := []Transaction{sixDays, exactlyWeek, eightDays, earlyMonth, twoMonths, fourMonths, undated}

	tests := []struct {
		tf   Timeframe
		want []string
	}{
		{tf: TimeframeWeek, want: []string{"a", "b"}},
		{tf: TimeframeMonth, want: []string{"a", "b", "c", "d"}},
		{tf: TimeframeQuarter, want: []string{"a", "b", "c", "d", "e"}},
		{tf: TimeframeAll, want: []string{"a", "b", "c", "d", "e", "f", "g"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			got := WindowFilter(txs, tt.tf, now)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d transactions, got %d", len(tt.want), len(got))
			}
			for i, tx := range got {
				if tx.Category != tt.want[i] {
					t.Fatalf("position %d: expected %s, got %s", i, tt.want[i], tx.Category)
				}
			}
		})
	}
}

func TestParseTimeframe(t *testing.T) {
	t.Parallel()

	if tf, err := ParseTimeframe(""); err != nil || tf != TimeframeMonth {
		t.Fatalf("expected default month, got %q, %v", tf, err)
	}
	if tf, err := ParseTimeframe("Quarter"); err != nil || tf != TimeframeQuarter {
		t.Fatalf("expected quarter, got %q, %v", tf, err)
	}
	if _, err := ParseTimeframe("year"); err == nil {
		t.Fatalf("expected error for unknown timeframe")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)
	txs := []Transaction{
		expense(100, "Transport", now),
		expense(300, "Food", now),
		income(900, now),
		expense(200, "Snacks", now),
		expense(100, "Transport", now),
		expense(-50, "Misc", now),
	}

	got := CategoryBreakdown(txs)
	want := []CategoryTotal{
		{Category: "Food", Total: dec(300)},
		{Category: "Transport", Total: dec(200)},
		{Category: "Snacks", Total: dec(200)},
		{Category: "Misc", Total: dec(-50)},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	sum := decimal.Zero
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Total.Equal(want[i].Total) {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], got[i])
		}
		sum = sum.Add(got[i].Total)
	}

	if !sum.Equal(ComputeTotals(txs).Expense) {
		t.Fatalf("breakdown sum %s differs from total expense", sum)
	}
}

func TestDailySeries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC) // Monday
	txs := []Transaction{
		expense(10, "Food", now.Add(-14*time.Hour)),
		expense(5, "Food", now.AddDate(0, 0, -6)),
		expense(99, "Food", now.AddDate(0, 0, -7)),
		income(50, now),
		expense(1, "Food", time.Time{}),
	}

	series := DailySeries(txs, now, 7)
	if len(series) != 7 {
		t.Fatalf("expected 7 points, got %d", len(series))
	}

	if series[0].Label != "Tue" || series[6].Label != "Mon" {
		t.Fatalf("unexpected labels: first %s last %s", series[0].Label, series[6].Label)
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Date.After(series[i-1].Date) {
			t.Fatalf("series not ordered oldest first at %d", i)
		}
	}

	if !series[0].Amount.Equal(dec(5)) {
		t.Fatalf("expected oldest day 5, got %s", series[0].Amount)
	}
	if !series[6].Amount.Equal(dec(10)) {
		t.Fatalf("expected today 10, got %s", series[6].Amount)
	}
	for _, p := range series[1:6] {
		if !p.Amount.IsZero() {
			t.Fatalf("expected empty day, got %s on %s", p.Amount, p.Date)
		}
	}
}

func TestDailySeriesDefaultsDays(t *testing.T) {
	t.Parallel()

	if got := DailySeries(nil, time.Now(), 0); len(got) != DefaultSeriesDays {
		t.Fatalf("expected %d points, got %d", DefaultSeriesDays, len(got))
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	now := time.Now()
	txs := []Transaction{
		{ID: "1", Type: TransactionTypeExpense, Category: "Food", Notes: "Biryani at mess", Date: now},
		{ID: "2", Type: TransactionTypeExpense, Category: "Transport", Notes: "rickshaw", Date: now},
		{ID: "3", Type: TransactionTypeIncome, Category: "Pocket Money", Date: now},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"1", "2", "3"}},
		{name: "query on notes", filter: Filter{Query: "BIRYANI"}, want: []string{"1"}},
		{name: "query on category", filter: Filter{Query: "trans"}, want: []string{"2"}},
		{name: "type", filter: Filter{Type: TransactionTypeIncome}, want: []string{"3"}},
		{name: "category and query", filter: Filter{Category: "Food", Query: "rick"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(txs, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d results", tt.want, len(got))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("expected %v, got %s at %d", tt.want, got[i].ID, i)
				}
			}
		})
	}
}

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	d1 := time.Date(2024, time.May, 18, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: "a", Date: d1},
		{ID: "b", Date: d2},
		{ID: "c"},
		{ID: "d", Date: d1.Add(time.Hour)},
	}

	groups := GroupByDay(txs, time.UTC)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if !groups[0].Date.Equal(time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected newest day first, got %s", groups[0].Date)
	}
	if ids := []string{groups[1].Transactions[0].ID, groups[1].Transactions[1].ID}; ids[0] != "a" || ids[1] != "d" {
		t.Fatalf("expected input order inside a day, got %v", ids)
	}
	if !groups[2].Date.IsZero() || groups[2].Transactions[0].ID != "c" {
		t.Fatalf("expected trailing undated group, got %+v", groups[2])
	}
}

func TestCalendarBucketsAcrossMidnightDST(t *testing.T) {
	t.Parallel()

	// Clocks jumped from 00:00 to 01:00 on 2018-11-04 in Sao Paulo.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	sat := time.Date(2018, time.November, 3, 18, 0, 0, 0, loc)
	sun := time.Date(2018, time.November, 4, 1, 30, 0, 0, loc)
	txs := []Transaction{
		expense(3, "Food", sat),
		expense(10, "Food", sun),
	}

	t.Run("series covers each date once", func(t *testing.T) {
		series := DailySeries(txs, time.Date(2018, time.November, 6, 12, 0, 0, 0, loc), 7)
		seen := make(map[string]bool)
		for _, p := range series {
			key := p.Date.Format(time.DateOnly)
			if seen[key] {
				t.Fatalf("date %s appears twice", key)
			}
			seen[key] = true
		}
		if !seen["2018-11-04"] {
			t.Fatalf("expected 2018-11-04 in the series")
		}
		if !series[4].Amount.Equal(dec(10)) || series[4].Label != "Sun" {
			t.Fatalf("expected Sun 10, got %s %s", series[4].Label, series[4].Amount)
		}
		if !series[3].Amount.Equal(dec(3)) || series[3].Label != "Sat" {
			t.Fatalf("expected Sat 3, got %s %s", series[3].Label, series[3].Amount)
		}
	})

	t.Run("series ending on the transition day", func(t *testing.T) {
		series := DailySeries(txs, time.Date(2018, time.November, 4, 20, 0, 0, 0, loc), 7)
		last := series[len(series)-1]
		if last.Date.Format(time.DateOnly) != "2018-11-04" || !last.Amount.Equal(dec(10)) {
			t.Fatalf("expected today 2018-11-04 with 10, got %s %s", last.Date, last.Amount)
		}
	})

	t.Run("grouping keeps the days apart", func(t *testing.T) {
		groups := GroupByDay(txs, loc)
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if got := groups[0].Date.Format(time.DateOnly); got != "2018-11-04" {
			t.Fatalf("expected newest group 2018-11-04, got %s", got)
		}
		if got := groups[1].Date.Format(time.DateOnly); got != "2018-11-03" {
			t.Fatalf("expected older group 2018-11-03, got %s", got)
		}
	})
}
