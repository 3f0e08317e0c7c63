package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// TransactionResponse represents a transaction in API responses. Date is
// omitted for undated records.
type TransactionResponse struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
	Date     *time.Time      `json:"date,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:       t.ID,
		Amount:   t.Amount,
		Type:     string(t.Type),
		Category: t.Category,
		Notes:    t.Notes,
	}
	if t.HasDate() {
		date := t.Date
		resp.Date = &date
	}
	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// DayGroupResponse is one calendar day of history.
type DayGroupResponse struct {
	Date         string                `json:"date,omitempty"`
	Transactions []TransactionResponse `json:"transactions"`
}

// HistoryResponse is a filtered, day-grouped history.
type HistoryResponse struct {
	Groups []DayGroupResponse `json:"groups"`
	Count  int                `json:"count"`
}

// HistoryFromUseCase converts a search result to a response.
func HistoryFromUseCase(h *usecase.TransactionHistory) HistoryResponse {
	groups := make([]DayGroupResponse, len(h.Groups))
	for i, g := range h.Groups {
		groups[i] = DayGroupResponse{Transactions: TransactionsFromDomain(g.Transactions)}
		if !g.Date.IsZero() {
			groups[i].Date = g.Date.Format(time.DateOnly)
		}
	}
	return HistoryResponse{Groups: groups, Count: h.Count}
}

// CategoryResponse represents a category with its resolved icon.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
	Glyph    string `json:"glyph"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c domain.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		IconName: c.IconName,
		Glyph:    domain.LookupIcon(c.IconName).Glyph,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []domain.CategoryInfo) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// DebtResponse represents a debt in API responses.
type DebtResponse struct {
	ID     string          `json:"id"`
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
	Note   string          `json:"note"`
}

// DebtFromDomain converts a domain debt to a response.
func DebtFromDomain(d domain.Debt) DebtResponse {
	return DebtResponse{
		ID:     d.ID,
		Person: d.Person,
		Amount: d.Amount,
		Type:   string(d.Type),
		Note:   d.Note,
	}
}

// DebtListResponse lists debts with their totals.
type DebtListResponse struct {
	Debts     []DebtResponse  `json:"debts"`
	TotalOwe  decimal.Decimal `json:"total_owe"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Net       decimal.Decimal `json:"net"`
}

// DebtListFromUseCase converts a debt list to a response.
func DebtListFromUseCase(l *usecase.DebtList) DebtListResponse {
	debts := make([]DebtResponse, len(l.Debts))
	for i, d := range l.Debts {
		debts[i] = DebtFromDomain(d)
	}
	return DebtListResponse{
		Debts:     debts,
		TotalOwe:  l.Summary.TotalOwe,
		TotalOwed: l.Summary.TotalOwed,
		Net:       l.Summary.Net,
	}
}

// GoalResponse represents a goal with its progress.
type GoalResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Current  decimal.Decimal `json:"current"`
	Progress decimal.Decimal `json:"progress"`
	Reached  bool            `json:"reached"`
}

// GoalFromDomain converts a domain goal to a response.
func GoalFromDomain(g domain.Goal) GoalResponse {
	return GoalResponse{
		ID:       g.ID,
		Name:     g.Name,
		Target:   g.Target,
		Current:  g.Current,
		Progress: g.Progress(),
		Reached:  g.Reached(),
	}
}

// GoalsFromDomain converts domain goals to responses.
func GoalsFromDomain(goals []domain.Goal) []GoalResponse {
	result := make([]GoalResponse, len(goals))
	for i, g := range goals {
		result[i] = GoalFromDomain(g)
	}
	return result
}

// BudgetResponse is the budget screen.
type BudgetResponse struct {
	Budget          decimal.Decimal `json:"budget"`
	MonthlyExpense  decimal.Decimal `json:"monthly_expense"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	DailySafeSpend  decimal.Decimal `json:"daily_safe_spend"`
	DaysLeft        int             `json:"days_left"`
	Percent         decimal.Decimal `json:"percent"`
	Status          string          `json:"status"`
	IsOver          bool            `json:"is_over"`
	NearLimit       bool            `json:"near_limit"`
}

// BudgetFromUseCase converts a budget overview to a response.
func BudgetFromUseCase(b *usecase.BudgetOverview) BudgetResponse {
	return BudgetResponse{
		Budget:          b.Budget,
		MonthlyExpense:  b.MonthlyExpense,
		RemainingBudget: b.RemainingBudget,
		DailySafeSpend:  b.DailySafeSpend,
		DaysLeft:        b.DaysLeft,
		Percent:         b.Progress.Percent,
		Status:          string(b.Progress.Status),
		IsOver:          b.Progress.IsOver,
		NearLimit:       b.Progress.NearLimit,
	}
}

// SettingsResponse represents the user preferences.
type SettingsResponse struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`
	Language       string `json:"language"`
	RTL            bool   `json:"rtl"`
	Theme          string `json:"theme"`
}

// SettingsFromDomain converts settings to a response.
func SettingsFromDomain(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		Currency:       s.Currency,
		CurrencySymbol: s.CurrencySymbol(),
		Language:       s.Language,
		RTL:            s.RTL(),
		Theme:          string(s.Theme),
	}
}

// TotalsResponse is an income and expense summary.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalsFromDomain converts totals to a response.
func TotalsFromDomain(t domain.Totals) TotalsResponse {
	return TotalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

// DailyPointResponse is one bar of the weekly chart.
type DailyPointResponse struct {
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardResponse is the home screen summary.
type DashboardResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Totals      TotalsResponse       `json:"totals"`
	Budget      BudgetResponse       `json:"budget"`
	Weekly      []DailyPointResponse `json:"weekly"`
	Settings    SettingsResponse     `json:"settings"`
}

// DashboardFromUseCase converts a dashboard to a response.
func DashboardFromUseCase(d *usecase.Dashboard) DashboardResponse {
	weekly := make([]DailyPointResponse, len(d.Weekly))
	for i, p := range d.Weekly {
		weekly[i] = DailyPointResponse{
			Date:   p.Date.Format(time.DateOnly),
			Label:  p.Label,
			Amount: p.Amount,
		}
	}
	return DashboardResponse{
		GeneratedAt: d.GeneratedAt,
		Totals:      TotalsFromDomain(d.Totals),
		Budget:      BudgetFromUseCase(d.Budget),
		Weekly:      weekly,
		Settings:    SettingsFromDomain(d.Settings),
	}
}

// CategoryTotalResponse is one row of a category breakdown.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Glyph    string          `json:"glyph"`
}

// AnalyticsResponse is the windowed analytics view.
type AnalyticsResponse struct {
	Timeframe       string                  `json:"timeframe"`
	IncomeVsExpense TotalsResponse          `json:"income_vs_expense"`
	Breakdown       []CategoryTotalResponse `json:"breakdown"`
	Recent          []TransactionResponse   `json:"recent"`
	Count           int                     `json:"count"`
}

// AnalyticsFromUseCase converts analytics to a response. Glyphs are
// resolved against categories.
func AnalyticsFromUseCase(a *usecase.Analytics, categories []domain.CategoryInfo) AnalyticsResponse {
	breakdown := make([]CategoryTotalResponse, len(a.Breakdown))
	for i, row := range a.Breakdown {
		breakdown[i] = CategoryTotalResponse{
			Category: row.Category,
			Total:    row.Total,
			Glyph:    domain.CategoryIcon(categories, row.Category).Glyph,
		}
	}
	return AnalyticsResponse{
		Timeframe:       string(a.Timeframe),
		IncomeVsExpense: TotalsFromDomain(a.IncomeVsExpense),
		Breakdown:       breakdown,
		Recent:          TransactionsFromDomain(a.Recent),
		Count:           a.Count,
	}
}

// SuggestionResponse is a pre-filled transaction guess.
type SuggestionResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
	Source   string          `json:"source,omitempty"`
}

// ParseResponse carries either a suggestion or a hint.
type ParseResponse struct {
	Suggestion *SuggestionResponse `json:"suggestion,omitempty"`
	Hint       string              `json:"hint,omitempty"`
}

// ParseFromUseCase converts a parse result to a response.
func ParseFromUseCase(r *usecase.ParseResult) ParseResponse {
	if r.Suggestion == nil {
		return ParseResponse{Hint: r.Hint}
	}
	s := r.Suggestion
	return ParseResponse{
		Suggestion: &SuggestionResponse{
			Amount:   s.Amount,
			Type:     string(s.Type),
			Category: s.Category,
			Notes:    s.Notes,
			Source:   s.Source,
		},
	}
}

// CatalogResponse lists selectable currencies, languages and icons.
type CatalogResponse struct {
	Currencies []domain.Currency `json:"currencies"`
	Languages  []domain.Language `json:"languages"`
	Icons      []domain.Icon     `json:"icons"`
}

// CatalogFromUseCase converts a catalog to a response.
func CatalogFromUseCase(c *usecase.Catalog) CatalogResponse {
	return CatalogResponse{
		Currencies: c.Currencies,
		Languages:  c.Languages,
		Icons:      c.Icons,
	}
}

// DeviceResponse describes the caller's device token.
type DeviceResponse struct {
	DeviceID  string    `json:"device_id"`
	Scope     string    `json:"scope"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
