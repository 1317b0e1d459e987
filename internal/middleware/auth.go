package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-movie-catalog/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*model.AuthClaims, error)
}

type roleResolver interface {
	ResolveRole(ctx context.Context, username string) (string, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	validator tokenValidator
	roles     roleResolver
}

func NewAuthMiddleware(validator tokenValidator, roles roleResolver) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, roles: roles}
}

// RequireAuth distinguishes a missing token (401) from a token that is
// present but malformed, expired or unverifiable (422).
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthFailure(w, http.StatusUnauthorized, "Missing token!")
			return
		}

		token := strings.TrimSpace(header[7:])
		if token == "" {
			writeAuthFailure(w, http.StatusUnauthorized, "Missing token!")
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			writeAuthFailure(w, http.StatusUnprocessableEntity, "Invalid token!")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin re-resolves the caller's role from the credential store;
// the role claim is never read from the token. A missing user and a
// non-admin role fail the same way.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeAuthFailure(w, http.StatusUnauthorized, "Missing token!")
			return
		}

		role, err := m.roles.ResolveRole(r.Context(), claims.Username)
		if err != nil || role != model.RoleAdmin {
			writeAuthFailure(w, http.StatusForbidden, "Admin role required!")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeAuthFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
