package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeriesDays is the length of the dashboard spending series.
const DefaultSeriesDays = 7

// MaxProgressPercent stands in for an infinite percentage when a budget or
// target is zero. Callers clamp it for display.
var MaxProgressPercent = decimal.NewFromInt(1_000_000)

var hundred = decimal.NewFromInt(100)

// Totals is the all-time income and expense summary.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals sums income and expense over the whole list.
func ComputeTotals(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			t.Income = t.Income.Add(tx.Amount)
		case tx.IsExpense():
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// MonthlyExpense sums expenses in the calendar month of now.
func MonthlyExpense(txs []Transaction, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() || !tx.HasDate() {
			continue
		}
		if sameMonth(tx.Date.In(now.Location()), now) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// RemainingBudget is budget minus spend, floored at zero.
func RemainingBudget(budget, monthlyExpense decimal.Decimal) decimal.Decimal {
	remaining := budget.Sub(monthlyExpense)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DailySafeSpend spreads the remaining budget evenly over the days left in
// the month, today included, rounded down to a whole unit.
func DailySafeSpend(budget, monthlyExpense decimal.Decimal, now time.Time) decimal.Decimal {
	remaining := RemainingBudget(budget, monthlyExpense)
	daysLeft := decimal.NewFromInt(int64(DaysLeftInMonth(now)))
	return remaining.Div(daysLeft).Floor()
}

// WindowFilter keeps the transactions inside tf, preserving order.
func WindowFilter(txs []Transaction, tf Timeframe, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tf.Contains(tx.Date, now) {
			out = append(out, tx)
		}
	}
	return out
}

// IncomeVsExpense totals the transactions inside tf.
func IncomeVsExpense(txs []Transaction, tf Timeframe, now time.Time) Totals {
	return ComputeTotals(WindowFilter(txs, tf, now))
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryBreakdown groups expenses by category, largest first. Equal
// totals keep the order in which their category first appeared.
func CategoryBreakdown(txs []Transaction) []CategoryTotal {
	index := make(map[string]int)
	out := []CategoryTotal{}

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Total.GreaterThan(out[b].Total)
	})

	return out
}

// DailyPoint is the expense total of one calendar day.
type DailyPoint struct {
	Date   time.Time
	Label  string
	Amount decimal.Decimal
}

// DailySeries returns one point per day for the last days days ending at
// now, oldest first. days <= 0 means DefaultSeriesDays.
func DailySeries(txs []Transaction, now time.Time, days int) []DailyPoint {
	if days <= 0 {
		days = DefaultSeriesDays
	}

	loc := now.Location()
	y, m, d := now.Date()

	series := make([]DailyPoint, days)
	for i := range series {
		day := calendarDay(y, m, d-days+1+i, loc)
		series[i] = DailyPoint{
			Date:   day,
			Label:  day.Format("Mon"),
			Amount: decimal.Zero,
		}
	}

	for _, tx := range txs {
		if !tx.IsExpense() || !tx.HasDate() {
			continue
		}
		local := tx.Date.In(loc)
		for i := range series {
			if sameDay(local, series[i].Date) {
				series[i].Amount = series[i].Amount.Add(tx.Amount)
				break
			}
		}
	}

	return series
}

// BudgetStatus classifies spending against the budget.
type BudgetStatus string

const (
	BudgetStatusOnTrack  BudgetStatus = "on_track"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusDanger   BudgetStatus = "danger"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

// Budget thresholds, in percent.
var (
	budgetWarningPercent = decimal.NewFromInt(70)
	budgetNearPercent    = decimal.NewFromInt(80)
	budgetDangerPercent  = decimal.NewFromInt(90)
)

// BudgetProgress describes how much of the budget has been spent.
type BudgetProgress struct {
	// Percent is unbounded above.
	Percent   decimal.Decimal
	Status    BudgetStatus
	IsOver    bool
	NearLimit bool
}

// ComputeBudgetProgress compares monthly spend to the budget.
func ComputeBudgetProgress(monthlyExpense, budget decimal.Decimal) BudgetProgress {
	p := BudgetProgress{
		Percent: percentOf(monthlyExpense, budget),
		IsOver:  monthlyExpense.GreaterThan(budget),
	}

	switch {
	case p.IsOver:
		p.Status = BudgetStatusExceeded
	case p.Percent.GreaterThan(budgetDangerPercent):
		p.Status = BudgetStatusDanger
	case p.Percent.GreaterThan(budgetWarningPercent):
		p.Status = BudgetStatusWarning
	default:
		p.Status = BudgetStatusOnTrack
	}
	p.NearLimit = p.Percent.GreaterThan(budgetNearPercent)

	return p
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		if part.IsPositive() {
			return MaxProgressPercent
		}
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// Filter narrows a transaction list for the history view.
type Filter struct {
	Query    string
	Category string
	Type     TransactionType
}

// Search returns transactions matching f, preserving order. Query matches
// category or notes case-insensitively; empty fields match everything.
func Search(txs []Transaction, f Filter) []Transaction {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if query != "" &&
			!strings.Contains(strings.ToLower(tx.Category), query) &&
			!strings.Contains(strings.ToLower(tx.Notes), query) {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// DayGroup is a set of transactions sharing a calendar date.
type DayGroup struct {
	// Date is noon of the day in the grouping location, or zero for
	// undated transactions.
	Date         time.Time
	Transactions []Transaction
}

// GroupByDay buckets transactions by calendar date in loc, newest day
// first. Order inside a day follows the input. Undated transactions are
// collected in a trailing group with a zero Date.
func GroupByDay(txs []Transaction, loc *time.Location) []DayGroup {
	index := make(map[string]int)
	groups := []DayGroup{}
	var undated []Transaction

	for _, tx := range txs {
		if !tx.HasDate() {
			undated = append(undated, tx)
			continue
		}
		local := tx.Date.In(loc)
		key := local.Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: calendarDay(local.Year(), local.Month(), local.Day(), loc)})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})

	if len(undated) > 0 {
		groups = append(groups, DayGroup{Transactions: undated})
	}

	return groups
}
