package api

import (
	"context"
	"net/http"
	"strings"

	"medivault/internal/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the resolved caller, placed into the request context by the
// auth middleware and threaded explicitly into the engine from there.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (s *HTTPServer) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// token from Authorization: Bearer <jwt>
		raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.ParseToken(raw, s.authCfg.JWTSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		identity := Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

func callerIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}
