package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carrentapp/carrent/internal/middleware"
	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/session"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// SignIn authenticates and returns the post-sign-in destination.
	SignIn(ctx context.Context, sid string, req models.SignInRequest, remember bool) (string, error)
	// SignUp registers, signs in and returns the destination.
	SignUp(ctx context.Context, sid string, req models.SignUpRequest) (string, error)
	// SignOut drops the session's identity.
	SignOut(sid string)
}

// AuthHandler handles sign-in, sign-up, sign-out and the small session
// preferences.
type AuthHandler struct {
	Auth   AuthService
	Bridge *session.Bridge
}

// SignInRequest is the JSON body of POST /signin.
type SignInRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// SignInState handles GET /signin: the remembered e-mail, the theme and any
// pending notice the page should show.
func (h *AuthHandler) SignInState(w http.ResponseWriter, r *http.Request) {
	sid := middleware.GetSessionID(r.Context())

	state := map[string]string{"theme": h.Bridge.Theme(sid)}
	if email, ok := h.Bridge.RememberedEmail(sid); ok {
		state["rememberedEmail"] = email
	}
	if notice, ok := h.Bridge.TakeNotice(sid); ok {
		state["notice"] = notice
	}
	writeJSON(w, http.StatusOK, state)
}

// SignIn handles POST /signin. On success it responds with the signed-in
// status and the destination to navigate to, which is the stashed pending
// redirect when the sign-in interrupted a flow.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sid := middleware.GetSessionID(r.Context())
	dest, err := h.Auth.SignIn(r.Context(), sid,
		models.SignInRequest{Email: req.Email, Password: req.Password}, req.RememberMe)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redirect": dest})
}

// SignUp handles POST /signup with the role-specific registration fields.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if !req.Role.Matches(models.RoleClient) && !req.Role.Matches(models.RoleOwner) {
		writeError(w, http.StatusBadRequest, "role must be client or owner")
		return
	}

	sid := middleware.GetSessionID(r.Context())
	dest, err := h.Auth.SignUp(r.Context(), sid, req)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redirect": dest})
}

// SignOut handles POST /signout.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sid := middleware.GetSessionID(r.Context())
	h.Auth.SignOut(sid)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redirect": session.SignInPath})
}

// SetTheme handles POST /theme, storing the display preference.
func (h *AuthHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Theme != "light" && req.Theme != "dark") {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	sid := middleware.GetSessionID(r.Context())
	h.Bridge.SetTheme(sid, req.Theme)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// OwnerDashboard handles GET /owner: the signed-in owner's identity, which
// is all this layer shows until listing management arrives.
func (h *AuthHandler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
