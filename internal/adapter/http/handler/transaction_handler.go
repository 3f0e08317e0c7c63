package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	SearchTransactions(ctx context.Context, input usecase.SearchTransactionsInput) (*usecase.TransactionHistory, error)
}

// ParseService turns free text into a transaction guess.
type ParseService interface {
	Parse(ctx context.Context, text string) (*usecase.ParseResult, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	parseUC       ParseService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, parseUC ParseService) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		parseUC:       parseUC,
	}
}

// Create records a transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid transaction", err)
		return
	}

	tx, err := h.transactionUC.AddTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to add transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(*tx))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactionUC.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(*tx))
}

// Delete removes a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionUC.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List searches the history and groups it by day.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	history, err := h.transactionUC.SearchTransactions(r.Context(), usecase.SearchTransactionsInput{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
	})
	if err != nil {
		writeDomainError(w, "failed to search transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(history))
}

// Parse suggests a transaction from free text. A failed parse still
// answers 200 with a hint.
func (h *TransactionHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req dto.ParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.parseUC.Parse(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, "failed to parse text", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ParseFromUseCase(result))
}
