package http

import (
	"context"
	"net/http"

	"budget/internal/core"
)

type contextKey string

const userContextKey contextKey = "user"

// withUser resolves the X-User-ID header to an existing account and puts
// it on the request context. Requests without a valid account get a 401.
func (s *Server) withUser(next func(http.ResponseWriter, *http.Request, core.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-ID")
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing X-User-ID header"})
			return
		}
		u, err := s.api.GetUser(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unknown user"})
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, u)
		next(w, r.WithContext(ctx), u)
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (core.User, bool) {
	u, ok := ctx.Value(userContextKey).(core.User)
	return u, ok
}
