package handler

import (
	"context"
	"net/http"

	"github.com/iho/hosteltracker/internal/adapter/chart"
	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// InsightsService defines the behavior needed by InsightsHandler.
type InsightsService interface {
	GetDashboard(ctx context.Context) *usecase.Dashboard
	GetAnalytics(ctx context.Context, tf domain.Timeframe) *usecase.Analytics
	DailySeries(ctx context.Context, days int) []domain.DailyPoint
	CategoryBreakdown(ctx context.Context, tf domain.Timeframe) []domain.CategoryTotal
}

// InsightsHandler serves the dashboard, analytics and charts.
type InsightsHandler struct {
	insightsUC InsightsService
	ledger     usecase.Ledger
}

// NewInsightsHandler creates a new InsightsHandler. ledger supplies the
// categories and display settings used for glyphs and chart styling.
func NewInsightsHandler(insightsUC InsightsService, ledger usecase.Ledger) *InsightsHandler {
	return &InsightsHandler{
		insightsUC: insightsUC,
		ledger:     ledger,
	}
}

// Dashboard returns the home screen summary.
func (h *InsightsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(h.insightsUC.GetDashboard(r.Context())))
}

// Analytics returns the breakdown for ?timeframe=week|month|quarter|all.
func (h *InsightsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	tf, err := domain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeDomainError(w, "invalid timeframe", err)
		return
	}

	analytics := h.insightsUC.GetAnalytics(r.Context(), tf)
	writeJSON(w, http.StatusOK, dto.AnalyticsFromUseCase(analytics, h.ledger.Snapshot().Categories))
}

// WeeklyChart renders the last seven days of spending as a PNG.
func (h *InsightsHandler) WeeklyChart(w http.ResponseWriter, r *http.Request) {
	points := h.insightsUC.DailySeries(r.Context(), domain.DefaultSeriesDays)

	png, err := h.generator().WeeklyBar(points)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render chart", err.Error())
		return
	}

	writePNG(w, png)
}

// CategoryChart renders the category breakdown for ?timeframe= as a PNG.
func (h *InsightsHandler) CategoryChart(w http.ResponseWriter, r *http.Request) {
	tf, err := domain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeDomainError(w, "invalid timeframe", err)
		return
	}

	png, err := h.generator().CategoryPie(h.insightsUC.CategoryBreakdown(r.Context(), tf))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render chart", err.Error())
		return
	}

	writePNG(w, png)
}

func (h *InsightsHandler) generator() *chart.Generator {
	settings := h.ledger.Snapshot().Settings()
	return chart.NewGenerator(settings.Theme, settings.CurrencySymbol())
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
