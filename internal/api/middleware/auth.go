// Package middleware provides HTTP middleware for the API layer: request
// tracing and JWT authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tomhaskel/profiled/internal/api/shared"
	"github.com/tomhaskel/profiled/internal/service/auth"
)

// AuthMiddleware validates bearer tokens and injects the caller's identity
// into the request context.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware using the given token service.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate rejects requests without a valid token. The Authorization
// header may carry either "Bearer <token>" or the raw token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token := header
		if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
			token = rest
		}
		token = strings.TrimSpace(token)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), token)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid/Expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), claims)))
	})
}
