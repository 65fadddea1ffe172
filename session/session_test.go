package session

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, duration time.Duration) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"), duration)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t, time.Hour)

	session := store.Create("admin")
	if session.ID == "" || session.CSRFToken == "" {
		t.Fatalf("Create() = %+v, want ID and CSRF token", session)
	}

	got, ok := store.Get(session.ID)
	if !ok {
		t.Fatal("Get() ok = false for fresh session")
	}
	if got.UserID != "admin" {
		t.Errorf("Get().UserID = %q, want admin", got.UserID)
	}
	if _, ok := store.Get("nonexistent"); ok {
		t.Error("Get() ok = true for unknown id")
	}
}

func TestExpiredSessionIsGone(t *testing.T) {
	store := newTestStore(t, 10*time.Millisecond)

	session := store.Create("admin")
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(session.ID); ok {
		t.Error("Get() ok = true for expired session")
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d after expiry lookup, want 0", store.Count())
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t, time.Hour)
	session := store.Create("admin")

	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Error("Get() ok = true after Delete()")
	}
}

func TestCleanupExpired(t *testing.T) {
	store := newTestStore(t, 10*time.Millisecond)
	store.Create("admin")
	store.Create("vadybininkas")
	time.Sleep(25 * time.Millisecond)

	if removed := store.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d after cleanup, want 0", store.Count())
	}
}

func TestHydrateAcrossRestart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.db")

	store, err := NewStore(file, time.Hour)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	session := store.Create("admin")
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewStore(file, time.Hour)
	if err != nil {
		t.Fatalf("NewStore() reopen error = %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get(session.ID)
	if !ok {
		t.Fatal("Get() ok = false after restart")
	}
	if got.CSRFToken != session.CSRFToken {
		t.Errorf("Get().CSRFToken = %q, want %q", got.CSRFToken, session.CSRFToken)
	}
}
