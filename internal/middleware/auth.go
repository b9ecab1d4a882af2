package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/coffee-shop/internal/auth"
	"github.com/Lixing-Zhang/coffee-shop/internal/models"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Authenticate validates the bearer token from the Authorization header and
// stores its claims on the request context.
func Authenticate(tokens TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, raw, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				deny(w, http.StatusUnauthorized, "Unauthorized: bearer token required")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				deny(w, http.StatusUnauthorized, "Unauthorized: invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole lets through only authenticated users holding one of roles.
// It must run after Authenticate.
func RequireRole(roles ...models.Role) func(next http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized: bearer token required")
				return
			}
			if !allowed[claims.Role] {
				deny(w, http.StatusForbidden, "Forbidden: insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager allows owners and cafe managers.
func RequireManager() func(next http.Handler) http.Handler {
	return RequireRole(models.RoleOwner, models.RoleCafeManager)
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
