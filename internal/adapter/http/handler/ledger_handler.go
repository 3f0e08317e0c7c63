package handler

import (
	"net/http"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// LedgerHandler serves the whole state document.
type LedgerHandler struct {
	ledger usecase.Ledger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger usecase.Ledger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// State writes the current state in its persisted JSON shape.
func (h *LedgerHandler) State(w http.ResponseWriter, r *http.Request) {
	data, err := domain.EncodeState(h.ledger.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode state", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
