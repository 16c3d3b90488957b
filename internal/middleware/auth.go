package middleware

import (
	"net/http"

	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/session"
)

// RequireRole guards a route group behind an authenticated session with the
// given role.
//
// An anonymous request has its target path stashed as the pending redirect
// and is sent to sign-in, so the flow resumes where it was interrupted. A
// session whose role does not match (case-insensitively) is cleared before
// the redirect: a stale or corrupt session must never grant access silently.
func RequireRole(bridge *session.Bridge, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := GetSessionID(r.Context())

			user, ok := bridge.CurrentUser(sid)
			if !ok {
				bridge.RecordPendingRedirect(sid, r.URL.Path)
				http.Redirect(w, r, session.SignInPath, http.StatusFound)
				return
			}

			if !user.Role.Matches(role) {
				bridge.ClearSession(sid)
				http.Redirect(w, r, session.SignInPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}
