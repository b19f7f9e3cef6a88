package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"sevadesk/models"
	"sevadesk/service"
)

type contextKey string

// AnalystContextKey carries the authenticated analyst through the request context.
const AnalystContextKey contextKey = "analyst"

// AnalystFromContext returns the authenticated analyst, if any.
func AnalystFromContext(ctx context.Context) (*models.Analyst, bool) {
	analyst, ok := ctx.Value(AnalystContextKey).(*models.Analyst)
	return analyst, ok
}

// AuthMiddleware guards analyst-facing routes with JWT bearer tokens.
type AuthMiddleware struct {
	analysts *service.AnalystService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(analysts *service.AnalystService) *AuthMiddleware {
	return &AuthMiddleware{analysts: analysts}
}

// RequireAnalyst validates the bearer token and stores the analyst in the
// request context. Missing or invalid tokens get 401.
func (m *AuthMiddleware) RequireAnalyst(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized", "Bearer token required")
			return
		}

		analyst, err := m.analysts.Verify(token)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), AnalystContextKey, analyst)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin validates the env-configured static operator token
// (ADMIN_TOKEN). Fully isolated from analyst auth: single token for a
// trusted internal operator, no role framework. Missing config or mismatch
// gets 403.
func RequireAdmin(adminToken string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adminToken == "" {
			writeAuthError(w, http.StatusForbidden, "Forbidden", "Admin access not configured")
			return
		}
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusForbidden, "Forbidden", "Authorization header required")
			return
		}
		if token != adminToken {
			writeAuthError(w, http.StatusForbidden, "Forbidden", "Invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}
