package session

import (
	"encoding/json"

	"github.com/carrentapp/carrent/internal/models"
)

// Store keys. currentUserKey and the preference keys are long-lived;
// pendingRedirectKey and noticeKey are one-shot.
const (
	currentUserKey     = "carrent_current_user"
	pendingRedirectKey = "redirectAfterLogin"
	rememberedKey      = "carrent_remember_me"
	themeKey           = "theme"
	noticeKey          = "notice"
)

// Destinations used after sign-in when no redirect is pending.
const (
	CataloguePath      = "/catalogue"
	OwnerDashboardPath = "/owner"
	SignInPath         = "/signin"
)

// Bridge persists the authenticated identity across requests and carries the
// one-shot "resume here after sign-in" destination.
type Bridge struct {
	store Store
}

// NewBridge returns a Bridge over the given store.
func NewBridge(store Store) *Bridge {
	return &Bridge{store: store}
}

// CurrentUser returns the signed-in user for the session, if any. A stored
// value that no longer decodes is treated as absent and removed: a corrupt
// session must never grant access.
func (b *Bridge) CurrentUser(sid string) (models.User, bool) {
	raw, ok := b.store.Get(sid, currentUserKey)
	if !ok {
		return models.User{}, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		b.store.Delete(sid, currentUserKey)
		return models.User{}, false
	}
	return u, true
}

// RecordPendingRedirect stores path as the session's pending redirect,
// overwriting any prior value.
func (b *Bridge) RecordPendingRedirect(sid, path string) {
	b.store.Set(sid, pendingRedirectKey, path)
}

// ConsumePendingRedirect returns and clears the pending redirect. A second
// call before a new record reports none.
func (b *Bridge) ConsumePendingRedirect(sid string) (string, bool) {
	path, ok := b.store.Get(sid, pendingRedirectKey)
	if !ok || path == "" {
		return "", false
	}
	b.store.Delete(sid, pendingRedirectKey)
	return path, true
}

// AuthenticationSucceeded persists the signed-in user and returns where
// navigation should land: the pending redirect if one was stashed, otherwise
// the role's default page.
func (b *Bridge) AuthenticationSucceeded(sid string, user models.User) string {
	raw, _ := json.Marshal(user)
	b.store.Set(sid, currentUserKey, string(raw))

	if path, ok := b.ConsumePendingRedirect(sid); ok {
		return path
	}
	if user.Role.Matches(models.RoleOwner) {
		return OwnerDashboardPath
	}
	return CataloguePath
}

// SignOut clears the stored identity, leaving preferences (theme, remembered
// e-mail) in place.
func (b *Bridge) SignOut(sid string) {
	b.store.Delete(sid, currentUserKey)
}

// ClearSession drops everything held for the session. Used when a stored
// session turns out stale or role-mismatched.
func (b *Bridge) ClearSession(sid string) {
	b.store.Clear(sid)
}

// RememberEmail stores the "stay signed in" e-mail, or forgets it when
// remember is false.
func (b *Bridge) RememberEmail(sid, email string, remember bool) {
	if remember {
		b.store.Set(sid, rememberedKey, email)
		return
	}
	b.store.Delete(sid, rememberedKey)
}

// RememberedEmail returns the previously remembered e-mail, if any.
func (b *Bridge) RememberedEmail(sid string) (string, bool) {
	return b.store.Get(sid, rememberedKey)
}

// SetTheme stores the display theme preference ("light" or "dark").
func (b *Bridge) SetTheme(sid, theme string) {
	b.store.Set(sid, themeKey, theme)
}

// Theme returns the stored display theme, defaulting to light.
func (b *Bridge) Theme(sid string) string {
	if t, ok := b.store.Get(sid, themeKey); ok {
		return t
	}
	return "light"
}

// SetNotice stores a one-shot user-facing message, the server-side
// counterpart of a toast.
func (b *Bridge) SetNotice(sid, msg string) {
	b.store.Set(sid, noticeKey, msg)
}

// TakeNotice returns and clears the pending notice.
func (b *Bridge) TakeNotice(sid string) (string, bool) {
	msg, ok := b.store.Get(sid, noticeKey)
	if !ok {
		return "", false
	}
	b.store.Delete(sid, noticeKey)
	return msg, ok
}
