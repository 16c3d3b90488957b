// Package middleware provides HTTP middlewares for session handling,
// authentication guards and request logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/carrentapp/carrent/internal/models"
)

type ctxKey string

const (
	sessionKey ctxKey = "session"
	userKey    ctxKey = "user"
)

// SessionCookie names the browser cookie carrying the session ID.
const SessionCookie = "carrent_session"

// WithSession ensures every request carries a session ID: an existing cookie
// is reused, otherwise a new ID is issued and set. The ID is stored in the
// request context for downstream handlers.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the session ID from the request context. Returns an
// empty string if WithSession did not run.
func GetSessionID(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey).(string); ok {
		return s
	}
	return ""
}

// withUser stores the authenticated user in the context for handlers behind
// an auth guard.
func withUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUserFromContext extracts the authenticated user placed by RequireRole.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
