package handler

import (
	"net/http"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/adapter/http/middleware"
)

// AuthHandler handles authentication endpoints. Device tokens are issued
// by the CLI; the API only reports on the caller's token.
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me returns the device behind the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	resp := dto.DeviceResponse{
		DeviceID: claims.DeviceID,
		Scope:    string(claims.Scope),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	writeJSON(w, http.StatusOK, resp)
}
