package session

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/carrentapp/carrent/internal/models"
)

const sid = "test-session"

func TestConsumePendingRedirect_OneShot(t *testing.T) {
	b := NewBridge(NewMemoryStore())

	if _, ok := b.ConsumePendingRedirect(sid); ok {
		t.Fatal("empty bridge yielded a redirect")
	}

	b.RecordPendingRedirect(sid, "/reservation/42")

	path, ok := b.ConsumePendingRedirect(sid)
	if !ok || path != "/reservation/42" {
		t.Fatalf("first consume = %q, %v; want /reservation/42, true", path, ok)
	}
	if _, ok := b.ConsumePendingRedirect(sid); ok {
		t.Fatal("second consume returned a value")
	}
}

func TestRecordPendingRedirect_Overwrites(t *testing.T) {
	b := NewBridge(NewMemoryStore())

	b.RecordPendingRedirect(sid, "/car/7")
	b.RecordPendingRedirect(sid, "/reservation/7")

	path, _ := b.ConsumePendingRedirect(sid)
	if path != "/reservation/7" {
		t.Errorf("got %q, want the later value", path)
	}
}

func TestAuthenticationSucceeded_ResumesStashedRoute(t *testing.T) {
	// Anonymous user tried to reserve vehicle 42, got sent to sign-in.
	b := NewBridge(NewMemoryStore())
	b.RecordPendingRedirect(sid, "/reservation/42")

	dest := b.AuthenticationSucceeded(sid, models.User{ID: 9, Name: "Ali", Role: models.RoleClient})
	if dest != "/reservation/42" {
		t.Errorf("destination = %q, want /reservation/42", dest)
	}

	if _, ok := b.ConsumePendingRedirect(sid); ok {
		t.Error("redirect was not consumed")
	}
	if u, ok := b.CurrentUser(sid); !ok || u.ID != 9 {
		t.Errorf("session not persisted: %+v, %v", u, ok)
	}
}

func TestAuthenticationSucceeded_RoleDefaults(t *testing.T) {
	tests := []struct {
		role models.Role
		want string
	}{
		{models.RoleClient, CataloguePath},
		{models.Role("CLIENT"), CataloguePath},
		{models.RoleOwner, OwnerDashboardPath},
		{models.Role("OWNER"), OwnerDashboardPath},
	}

	for _, tt := range tests {
		b := NewBridge(NewMemoryStore())
		if dest := b.AuthenticationSucceeded(sid, models.User{Role: tt.role}); dest != tt.want {
			t.Errorf("role %s: destination = %q, want %q", tt.role, dest, tt.want)
		}
	}
}

func TestCurrentUser_CorruptValueIsCleared(t *testing.T) {
	store := NewMemoryStore()
	store.Set(sid, currentUserKey, "{not json")

	b := NewBridge(store)
	if _, ok := b.CurrentUser(sid); ok {
		t.Fatal("corrupt session granted access")
	}
	if _, ok := store.Get(sid, currentUserKey); ok {
		t.Error("corrupt value left in store")
	}
}

func TestSignOut_KeepsPreferences(t *testing.T) {
	b := NewBridge(NewMemoryStore())
	b.AuthenticationSucceeded(sid, models.User{ID: 1, Role: models.RoleClient})
	b.RememberEmail(sid, "ali@example.com", true)
	b.SetTheme(sid, "dark")

	b.SignOut(sid)

	if _, ok := b.CurrentUser(sid); ok {
		t.Error("user still signed in")
	}
	if email, ok := b.RememberedEmail(sid); !ok || email != "ali@example.com" {
		t.Error("remembered e-mail lost on sign-out")
	}
	if b.Theme(sid) != "dark" {
		t.Error("theme lost on sign-out")
	}
}

func TestRememberEmail_Disable(t *testing.T) {
	b := NewBridge(NewMemoryStore())
	b.RememberEmail(sid, "ali@example.com", true)
	b.RememberEmail(sid, "ali@example.com", false)

	if _, ok := b.RememberedEmail(sid); ok {
		t.Error("e-mail still remembered after opting out")
	}
}

func TestTakeNotice_OneShot(t *testing.T) {
	b := NewBridge(NewMemoryStore())
	b.SetNotice(sid, "Impossible de charger le véhicule")

	if msg, ok := b.TakeNotice(sid); !ok || msg == "" {
		t.Fatal("notice not returned")
	}
	if _, ok := b.TakeNotice(sid); ok {
		t.Error("notice returned twice")
	}
}

func TestFileStore_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	first := NewFileStore(path, zap.NewNop())
	if err := first.Load(); err != nil {
		t.Fatalf("load on missing file: %v", err)
	}
	NewBridge(first).AuthenticationSucceeded(sid, models.User{ID: 3, Name: "Sara", Role: models.RoleOwner})

	second := NewFileStore(path, zap.NewNop())
	if err := second.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u, ok := NewBridge(second).CurrentUser(sid); !ok || u.Name != "Sara" {
		t.Errorf("session did not survive restart: %+v, %v", u, ok)
	}
}

func TestMemoryStore_ClearDropsSessionOnly(t *testing.T) {
	s := NewMemoryStore()
	s.Set("a", "k", "v")
	s.Set("b", "k", "v")

	s.Clear("a")

	if _, ok := s.Get("a", "k"); ok {
		t.Error("cleared session still readable")
	}
	if _, ok := s.Get("b", "k"); !ok {
		t.Error("other session was cleared too")
	}
}

func TestFileStore_LogsFailedWrites(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	// The parent directory does not exist, so every write-through fails.
	path := filepath.Join(t.TempDir(), "missing", "sessions.json")

	store := NewFileStore(path, zap.New(core))
	if err := store.Load(); err != nil {
		t.Fatalf("load on missing file: %v", err)
	}
	store.Set(sid, "theme", "dark")

	if logs.Len() == 0 {
		t.Fatal("failed write was not logged")
	}
	if got := logs.All()[0].Message; got != "session snapshot write failed" {
		t.Errorf("logged %q", got)
	}
	// The in-memory state still serves the session.
	if v, ok := store.Get(sid, "theme"); !ok || v != "dark" {
		t.Errorf("in-memory value lost: %q, %v", v, ok)
	}
}
