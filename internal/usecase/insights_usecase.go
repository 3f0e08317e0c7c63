package usecase

import (
	"context"
	"time"

	"github.com/iho/hosteltracker/internal/domain"
)

// InsightsUseCase computes the dashboard and analytics views. Every call
// recomputes from the current snapshot.
type InsightsUseCase struct {
	ledger Ledger
	clock  Clock
}

// NewInsightsUseCase creates a new InsightsUseCase.
func NewInsightsUseCase(ledger Ledger, clock Clock) *InsightsUseCase {
	return &InsightsUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Dashboard is the home screen summary.
type Dashboard struct {
	GeneratedAt time.Time
	Totals      domain.Totals
	Budget      *BudgetOverview
	Weekly      []domain.DailyPoint
	Settings    domain.Settings
}

// GetDashboard computes the dashboard for now.
func (uc *InsightsUseCase) GetDashboard(ctx context.Context) *Dashboard {
	s := uc.ledger.Snapshot()
	now := uc.clock.Now()

	return &Dashboard{
		GeneratedAt: now,
		Totals:      domain.ComputeTotals(s.Transactions),
		Budget:      budgetOverview(s, now),
		Weekly:      domain.DailySeries(s.Transactions, now, domain.DefaultSeriesDays),
		Settings:    s.Settings(),
	}
}

// Analytics is the windowed breakdown view.
type Analytics struct {
	Timeframe       domain.Timeframe
	IncomeVsExpense domain.Totals
	Breakdown       []domain.CategoryTotal
	Recent          []domain.Transaction
	Count           int
}

// GetAnalytics computes the analytics view for a timeframe.
func (uc *InsightsUseCase) GetAnalytics(ctx context.Context, tf domain.Timeframe) *Analytics {
	s := uc.ledger.Snapshot()
	window := domain.WindowFilter(s.Transactions, tf, uc.clock.Now())

	recent := window
	if len(recent) > RecentTransactionsLimit {
		recent = recent[:RecentTransactionsLimit]
	}

	return &Analytics{
		Timeframe:       tf,
		IncomeVsExpense: domain.ComputeTotals(window),
		Breakdown:       domain.CategoryBreakdown(window),
		Recent:          recent,
		Count:           len(window),
	}
}

// DailySeries returns the expense series for the last days days.
func (uc *InsightsUseCase) DailySeries(ctx context.Context, days int) []domain.DailyPoint {
	return domain.DailySeries(uc.ledger.Snapshot().Transactions, uc.clock.Now(), days)
}

// CategoryBreakdown returns expense per category inside a timeframe.
func (uc *InsightsUseCase) CategoryBreakdown(ctx context.Context, tf domain.Timeframe) []domain.CategoryTotal {
	s := uc.ledger.Snapshot()
	return domain.CategoryBreakdown(domain.WindowFilter(s.Transactions, tf, uc.clock.Now()))
}
