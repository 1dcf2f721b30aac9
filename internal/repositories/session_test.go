package repositories

import (
	"testing"

	"movitv/internal/shared"
)

func newTestRepo(t *testing.T) *SessionRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewSessionRepository(db)
}

func TestSessionRepository(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		repo := newTestRepo(t)

		value, err := repo.Get(KeyToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value for missing key, got %q", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Set(KeyToken, "t1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		value, err := repo.Get(KeyToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "t1" {
			t.Errorf("expected t1, got %q", value)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Set(KeyUserID, "u1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.Set(KeyUserID, "u2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		value, _ := repo.Get(KeyUserID)
		if value != "u2" {
			t.Errorf("expected overwritten value u2, got %q", value)
		}
	})

	t.Run("SetAll And All", func(t *testing.T) {
		repo := newTestRepo(t)

		pairs := map[string]string{
			KeyToken:     "t1",
			KeyUserID:    "u1",
			KeyUserEmail: "u1@example.com",
		}
		if err := repo.SetAll(pairs); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		stored, err := repo.All()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(stored) != 3 {
			t.Fatalf("expected 3 pairs, got %d", len(stored))
		}
		for key, want := range pairs {
			if stored[key] != want {
				t.Errorf("key %s: expected %q, got %q", key, want, stored[key])
			}
		}
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Set(KeyToken, "t1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("clearing an empty session should succeed, got %v", err)
		}

		stored, _ := repo.All()
		if len(stored) != 0 {
			t.Errorf("expected empty session after clear, got %d pairs", len(stored))
		}
	})
}
