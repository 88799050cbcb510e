package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/biztime/internal/auth"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
)

// RequireToken rejects mutating requests that lack a valid bearer token.
// Reads pass through untouched.
func RequireToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				render.Fail(w, http.StatusUnauthorized, "authorization header must be Bearer {token}")
				return
			}

			subject, err := auth.Verify(secret, token)
			if err != nil {
				slog.Warn("rejected token", "error", err, "request_id", middleware.GetReqID(r.Context()))
				render.Fail(w, http.StatusUnauthorized, "invalid token")

				return
			}

			slog.Debug("authorized request", "subject", subject, "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
