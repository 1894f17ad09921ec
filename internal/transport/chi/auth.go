package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/hirepath/hirepath/internal/auth"
	"github.com/hirepath/hirepath/internal/domain"
)

type contextKey string

const claimsKey contextKey = "auth-claims"

// claimsFromContext extracts the verified claims set by the auth middleware.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// TokenVerifier validates an access token string.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// authMiddleware validates the Bearer token and stores the claims in the
// request context.
func authMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			claims, err := verifier.Verify(header[len(bearerPrefix):])
			if err != nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireType guards a route subtree to one user role.
func requireType(userType domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
				return
			}
			if claims.UserType != userType {
				writeError(w, http.StatusForbidden, codeForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
