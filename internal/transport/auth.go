package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type ownerKey struct{}

// OwnerResolver resolves an owner (user) ID from a bearer token.
type OwnerResolver interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// OwnerFromContext returns the owner ID from context, if present.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok
}

// BearerToken extracts the bearer token from a request, or "".
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ownerID, err := resolver.ResolveToken(r.Context(), token)
			if err != nil || ownerID == "" {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
