package session

import (
	"errors"
	"testing"

	"movitv/internal/models"
)

// memoryStorage is an in-memory Storage for tests.
type memoryStorage struct {
	pairs   map[string]string
	failAll bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{pairs: make(map[string]string)}
}

func (m *memoryStorage) All() (map[string]string, error) {
	if m.failAll {
		return nil, errors.New("storage unavailable")
	}
	out := make(map[string]string, len(m.pairs))
	for k, v := range m.pairs {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStorage) SetAll(pairs map[string]string) error {
	for k, v := range pairs {
		m.pairs[k] = v
	}
	return nil
}

func (m *memoryStorage) Clear() error {
	m.pairs = make(map[string]string)
	return nil
}

func TestStore(t *testing.T) {
	t.Run("Fresh Store Is Unauthenticated", func(t *testing.T) {
		store := NewStore(newMemoryStorage(), nil)

		if store.IsAuthenticated() {
			t.Error("expected unauthenticated store")
		}
	})

	t.Run("Login Then IsAuthenticated", func(t *testing.T) {
		store := NewStore(newMemoryStorage(), nil)

		store.Login("t1", "u1")

		if !store.IsAuthenticated() {
			t.Error("expected authenticated store after login")
		}

		sess := store.Current()
		if sess.Token != "t1" || sess.UserID != "u1" {
			t.Errorf("unexpected session: %+v", sess)
		}
	})

	t.Run("LoginSession Persists Profile Fields", func(t *testing.T) {
		store := NewStore(newMemoryStorage(), nil)

		store.LoginSession(models.Session{
			Token:       "google-id",
			UserID:      "google-id",
			UserName:    "Dom Cobb",
			UserEmail:   "cobb@example.com",
			UserPicture: "https://example.com/cobb.png",
		})

		sess := store.Current()
		if sess.UserName != "Dom Cobb" {
			t.Errorf("expected cached user name, got %q", sess.UserName)
		}
		if sess.UserEmail != "cobb@example.com" {
			t.Errorf("expected cached email, got %q", sess.UserEmail)
		}
	})

	t.Run("Logout Clears Everything", func(t *testing.T) {
		storage := newMemoryStorage()
		store := NewStore(storage, nil)

		store.LoginSession(models.Session{
			Token: "t1", UserID: "u1", UserName: "Dom", UserEmail: "d@e.com",
		})
		store.Logout()

		if store.IsAuthenticated() {
			t.Error("expected unauthenticated store after logout")
		}
		if len(storage.pairs) != 0 {
			t.Errorf("expected all fields cleared, got %d", len(storage.pairs))
		}
	})

	t.Run("Logout Is Idempotent", func(t *testing.T) {
		store := NewStore(newMemoryStorage(), nil)

		store.Logout()
		store.Logout()

		if store.IsAuthenticated() {
			t.Error("expected unauthenticated store")
		}
	})

	t.Run("Storage Failure Degrades To Unauthenticated", func(t *testing.T) {
		storage := newMemoryStorage()
		storage.failAll = true
		store := NewStore(storage, nil)

		if store.IsAuthenticated() {
			t.Error("storage failure should read as logged out, not panic")
		}
	})
}
