package handler

import (
	"net/http"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/usecase"
)

// SettingsHandler handles the budget, preferences and catalog.
type SettingsHandler struct {
	settingsUC *usecase.SettingsUseCase
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsUC *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUC: settingsUC}
}

// GetBudget returns the budget overview.
func (h *SettingsHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.BudgetFromUseCase(h.settingsUC.GetBudget(r.Context())))
}

// SetBudget replaces the monthly budget.
func (h *SettingsHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.Value()
	if err != nil {
		writeDomainError(w, "invalid budget", err)
		return
	}

	overview, err := h.settingsUC.SetBudget(r.Context(), amount)
	if err != nil {
		writeDomainError(w, "failed to set budget", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromUseCase(overview))
}

// GetSettings returns the preferences.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(h.settingsUC.GetSettings(r.Context())))
}

// UpdateSettings changes the preferences present in the body.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settings, err := h.settingsUC.UpdateSettings(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update settings", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(settings))
}

// Catalog lists supported currencies, languages and icons.
func (h *SettingsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CatalogFromUseCase(h.settingsUC.GetCatalog(r.Context())))
}
