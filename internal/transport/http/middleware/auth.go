package middleware

import (
	"net/http"
	"strings"

	"github.com/micro-mikko/lonasystem/internal/auth"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
)

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if _, err := auth.ParseToken(secret, token); err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
