package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/adapter/repository/memory"
	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
	"github.com/iho/hosteltracker/internal/usecase/mocks"
)

var apiNow = time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

type testAPI struct {
	router http.Handler
	ledger *usecase.LedgerUseCase
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	clock := mocks.FixedClock{At: apiNow}
	ids := mocks.NewSequenceIDGenerator()
	ledger := usecase.NewLedgerUseCase(memory.NewStateStore(), nil, ids, clock, zerolog.Nop(), nil)
	require.NoError(t, ledger.Load(context.Background()))

	txHandler := NewTransactionHandler(
		usecase.NewTransactionUseCase(ledger, ids, clock, nil),
		usecase.NewParseUseCase(ledger, nil, zerolog.Nop(), nil),
	)
	insights := NewInsightsHandler(usecase.NewInsightsUseCase(ledger, clock), ledger)
	categories := NewCategoryHandler(usecase.NewCategoryUseCase(ledger, ids))
	debts := NewDebtHandler(usecase.NewDebtUseCase(ledger, ids))
	goals := NewGoalHandler(usecase.NewGoalUseCase(ledger, ids))
	settings := NewSettingsHandler(usecase.NewSettingsUseCase(ledger, clock))
	backup := NewBackupHandler(usecase.NewBackupUseCase(ledger, clock, nil))
	state := NewLedgerHandler(ledger)

	r := chi.NewRouter()
	r.Get("/state", state.State)
	r.Get("/dashboard", insights.Dashboard)
	r.Get("/analytics", insights.Analytics)
	r.Get("/charts/weekly.png", insights.WeeklyChart)
	r.Get("/charts/categories.png", insights.CategoryChart)
	r.Post("/transactions", txHandler.Create)
	r.Get("/categories", categories.List)
	r.Post("/categories", categories.Create)
	r.Delete("/categories/{id}", categories.Delete)
	r.Get("/debts", debts.List)
	r.Post("/debts", debts.Create)
	r.Get("/goals", goals.List)
	r.Post("/goals", goals.Create)
	r.Post("/goals/{id}/contribute", goals.Contribute)
	r.Get("/budget", settings.GetBudget)
	r.Put("/budget", settings.SetBudget)
	r.Patch("/settings", settings.UpdateSettings)
	r.Get("/catalog", settings.Catalog)
	r.Get("/backup/export", backup.Export)
	r.Post("/backup/import", backup.Import)
	r.Post("/backup/reset", backup.Reset)

	return &testAPI{router: r, ledger: ledger}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestAPI_DashboardReflectsWrites(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/transactions", `{"amount":300,"type":"expense","category":"Food"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = api.do(t, http.MethodPost, "/transactions", `{"amount":1000,"type":"income","category":"Salary"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dash dto.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, "700", dash.Totals.Balance.String())
	assert.Equal(t, "300", dash.Budget.MonthlyExpense.String())
	assert.Len(t, dash.Weekly, domain.DefaultSeriesDays)
	assert.Equal(t, "Rs", dash.Settings.CurrencySymbol)
}

func TestAPI_Analytics(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/transactions", `{"amount":120,"type":"expense","category":"Transport"}`)

	rec := api.do(t, http.MethodGet, "/analytics?timeframe=week", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AnalyticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "week", resp.Timeframe)
	require.Len(t, resp.Breakdown, 1)
	assert.Equal(t, "Transport", resp.Breakdown[0].Category)
	assert.NotEmpty(t, resp.Breakdown[0].Glyph)

	rec = api.do(t, http.MethodGet, "/analytics?timeframe=decade", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Charts(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/transactions", `{"amount":80,"type":"expense","category":"Snacks"}`)

	for _, path := range []string{"/charts/weekly.png", "/charts/categories.png?timeframe=all"} {
		rec := api.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), "body of %s is not a PNG", path)
	}
}

func TestAPI_DeletingLastCategoryConflicts(t *testing.T) {
	api := newTestAPI(t)

	for _, c := range domain.DefaultCategories()[1:] {
		rec := api.do(t, http.MethodDelete, "/categories/"+c.ID, "")
		require.Equal(t, http.StatusNoContent, rec.Code, c.Name)
	}

	last := domain.DefaultCategories()[0].ID
	rec := api.do(t, http.MethodDelete, "/categories/"+last, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, api.ledger.Snapshot().Categories, 1)

	rec = api.do(t, http.MethodDelete, "/categories/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CreateCategoryFallsBackIcon(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/categories", `{"name":"Gym","iconName":"dumbbell-xl"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.FallbackIconKey, resp.IconName)

	rec = api.do(t, http.MethodPost, "/categories", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_DebtsAndGoals(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/debts", `{"person":"Ahmed","amount":500,"type":"owed"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(t, http.MethodPost, "/debts", `{"person":"Bilal","amount":200,"type":"owe"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(t, http.MethodPost, "/debts", `{"person":"Bilal","amount":200,"type":"lent"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/debts", "")
	var debts dto.DebtListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &debts))
	assert.Len(t, debts.Debts, 2)
	assert.Equal(t, "300", debts.Net.String())

	rec = api.do(t, http.MethodPost, "/goals", `{"name":"Cycle","target":1000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var goal dto.GoalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))

	rec = api.do(t, http.MethodPost, "/goals/"+goal.ID+"/contribute", `{"amount":1100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.True(t, goal.Reached)
	assert.Equal(t, "110", goal.Progress.String())

	rec = api.do(t, http.MethodPost, "/goals/missing/contribute", `{"amount":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/goals/"+goal.ID+"/contribute", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_BudgetAndSettings(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/budget", `{"amount":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPut, "/budget", `{"amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPatch, "/settings", `{"currency":"usd","language":"ar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings dto.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "USD", settings.Currency)
	assert.True(t, settings.RTL)

	rec = api.do(t, http.MethodPatch, "/settings", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/catalog", "")
	var catalog dto.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.NotEmpty(t, catalog.Currencies)
	assert.NotEmpty(t, catalog.Icons)
}

func TestAPI_BackupRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/transactions", `{"amount":45,"type":"expense","category":"Laundry"}`)

	rec := api.do(t, http.MethodGet, "/backup/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="hostel_tracker_backup_2024-05-20.json"`, rec.Header().Get("Content-Disposition"))
	exported := rec.Body.String()

	rec = api.do(t, http.MethodPost, "/backup/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, api.ledger.Snapshot().Transactions)

	rec = api.do(t, http.MethodPost, "/backup/import", "not json at all")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.ledger.Snapshot().Transactions, "malformed import must not change the state")

	rec = api.do(t, http.MethodPost, "/backup/import", exported)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, api.ledger.Snapshot().Transactions, 1)
	assert.Equal(t, "Laundry", api.ledger.Snapshot().Transactions[0].Category)
}

func TestAPI_StateDocument(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	for _, key := range []string{"transactions", "debts", "goals", "categories", "budget", "currency", "language", "theme"} {
		assert.Contains(t, doc, key)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := NewHealthHandler(map[string]Pinger{
		"store": PingFunc(func(ctx context.Context) error { return nil }),
	})
	rec := httptest.NewRecorder()
	ok.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"ok"`)

	down := NewHealthHandler(map[string]Pinger{
		"store": PingFunc(func(ctx context.Context) error { return nil }),
		"redis": PingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})
	rec = httptest.NewRecorder()
	down.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis unhealthy")
}
