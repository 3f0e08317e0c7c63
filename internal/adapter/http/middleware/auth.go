package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/hosteltracker/internal/domain"
	"github.com/iho/hosteltracker/internal/infrastructure/auth"
	"github.com/iho/hosteltracker/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClaimsContextKey is the context key for the verified device claims
	ClaimsContextKey ContextKey = "device"
)

// DeviceAuth requires a valid bearer device token on every request.
func DeviceAuth(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	fail := func(w http.ResponseWriter, reason, msg string) {
		if m != nil {
			m.AuthFailures.WithLabelValues(reason).Inc()
		}
		http.Error(w, msg, http.StatusUnauthorized)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				fail(w, "missing", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				fail(w, "format", "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired"
				}
				fail(w, reason, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWrite rejects mutating requests from read-only tokens. Requests
// without claims pass, so it is a no-op when auth is disabled.
func RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := ClaimsFromContext(r.Context()); ok && !claims.Scope.CanWrite() {
			http.Error(w, "insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext extracts the verified device claims from context
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}
