package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/usecase"
)

// BackupHandler exports, imports and resets the state.
type BackupHandler struct {
	backupUC *usecase.BackupUseCase
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupUC *usecase.BackupUseCase) *BackupHandler {
	return &BackupHandler{backupUC: backupUC}
}

// Export sends the state as a dated JSON attachment.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupUC.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(backup.Data)
}

// Import replaces the state with the request body. A malformed document
// answers 400 and leaves the state alone.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "backup too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	state, err := h.backupUC.Import(r.Context(), data)
	if err != nil {
		writeDomainError(w, "failed to import backup", err)
		return
	}

	writeStateSummary(w, "imported", state)
}

// Reset restores the defaults.
func (h *BackupHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.backupUC.Reset(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reset", err)
		return
	}

	writeStateSummary(w, "reset", state)
}

func writeStateSummary(w http.ResponseWriter, status string, s domain.State) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"transactions": len(s.Transactions),
		"categories":   len(s.Categories),
		"debts":        len(s.Debts),
		"goals":        len(s.Goals),
	})
}
