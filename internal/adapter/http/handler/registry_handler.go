package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	ListCategories(ctx context.Context) []domain.CategoryInfo
	AddCategory(ctx context.Context, input usecase.AddCategoryInput) (*domain.CategoryInfo, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// List lists categories in display order.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(h.categoryUC.ListCategories(r.Context())))
}

// Create adds a category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.AddCategory(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to add category", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(*category))
}

// Delete removes a category. Removing the last one answers 409.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryUC.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DebtService defines the behavior needed by DebtHandler.
type DebtService interface {
	ListDebts(ctx context.Context) *usecase.DebtList
	AddDebt(ctx context.Context, input usecase.AddDebtInput) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, id string) error
}

// DebtHandler handles debt requests.
type DebtHandler struct {
	debtUC DebtService
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtUC DebtService) *DebtHandler {
	return &DebtHandler{debtUC: debtUC}
}

// List lists debts with their totals.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.DebtListFromUseCase(h.debtUC.ListDebts(r.Context())))
}

// Create records a debt.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDebtRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	debt, err := h.debtUC.AddDebt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to add debt", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtFromDomain(*debt))
}

// Delete settles a debt.
func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.debtUC.DeleteDebt(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete debt", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalUC *usecase.GoalUseCase
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalUC *usecase.GoalUseCase) *GoalHandler {
	return &GoalHandler{goalUC: goalUC}
}

// List lists goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(h.goalUC.ListGoals(r.Context())))
}

// Create adds a goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.AddGoal(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to add goal", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(*goal))
}

// Delete removes a goal.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.goalUC.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete goal", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Contribute adds money to a goal.
func (h *GoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.Value()
	if err != nil {
		writeDomainError(w, "invalid contribution", err)
		return
	}

	goal, err := h.goalUC.Contribute(r.Context(), chi.URLParam(r, "id"), amount)
	if err != nil {
		writeDomainError(w, "failed to contribute", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(*goal))
}
