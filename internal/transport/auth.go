package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Credential locations the API accepts.
const (
	APIKeyHeader = "x-api-key"
	APIKeyParam  = "apikey"
)

// KeyVerifier checks an API key.
type KeyVerifier interface {
	Verify(ctx context.Context, key string) error
}

// APIKeyFromRequest returns the key from the x-api-key header, falling
// back to the apikey query parameter.
func APIKeyFromRequest(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(r.URL.Query().Get(APIKeyParam))
}

// APIKeyMiddleware enforces API key authentication.
func APIKeyMiddleware(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := APIKeyFromRequest(r)
			if key == "" {
				http.Error(w, "missing api key", http.StatusUnauthorized)
				return
			}

			if err := verifier.Verify(r.Context(), key); err != nil {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
