package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"movitv/internal/repositories"
	"movitv/internal/services"
	"movitv/internal/session"
	"movitv/internal/shared"
	tu "movitv/internal/testing"
)

func newTestSessions(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	logger := shared.NewLogger(io.Discard)
	return session.NewStore(repositories.NewSessionRepository(db), logger), db
}

func newTestRunner(t *testing.T, catalogURL string) (*Runner, *bytes.Buffer) {
	t.Helper()

	sessions, _ := newTestSessions(t)
	output := &bytes.Buffer{}

	runner := NewRunner(RunnerOpts{
		Catalog:  services.NewCatalogService(catalogURL, nil),
		TMDB:     services.NewTMDBService("test-key", "", ""),
		Sessions: sessions,
		Logger:   shared.NewLogger(io.Discard),
		Output:   output,
	})
	return runner, output
}

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "movitv",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"movitv"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("without catalog leaves engine unset", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.engine != nil {
				t.Error("expected no engine without a catalog service")
			}
		})

		t.Run("with catalog builds engine", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Catalog: services.NewCatalogService("http://localhost:5000", nil),
				TMDB:    services.NewTMDBService("key", "", ""),
			})
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("Login Persists Session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/login" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]string{"jwtToken": "t1", "userId": "u1"})
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)

		if err := runCommand(t, runner, "auth", "login", "--email", "a@b.c", "--password", "pw"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Logged in") {
			t.Errorf("unexpected output: %s", output.String())
		}

		sess := runner.sessions.Current()
		if sess.Token != "t1" || sess.UserID != "u1" {
			t.Errorf("unexpected session: %+v", sess)
		}
	})

	t.Run("Login Failure Surfaces Server Message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		}))
		defer srv.Close()

		runner, _ := newTestRunner(t, srv.URL)

		err := runCommand(t, runner, "auth", "login", "--email", "a@b.c", "--password", "bad")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Invalid credentials") {
			t.Errorf("expected server message in error, got %v", err)
		}
		if runner.sessions.IsAuthenticated() {
			t.Error("failed login must not persist a session")
		}
	})

	t.Run("Status And Logout", func(t *testing.T) {
		runner, output := newTestRunner(t, "http://localhost:5000")

		if err := runCommand(t, runner, "auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✗ Not logged in") {
			t.Errorf("unexpected output: %s", output.String())
		}

		runner.sessions.Login("t1", "u1")
		output.Reset()

		if err := runCommand(t, runner, "auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Logged in") || !strings.Contains(output.String(), "User ID: u1") {
			t.Errorf("unexpected output: %s", output.String())
		}

		if err := runCommand(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.sessions.IsAuthenticated() {
			t.Error("expected session cleared after logout")
		}
	})
}

func TestBookmarkCommands(t *testing.T) {
	t.Run("Add Requires Login Without Network Call", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)

		if err := runCommand(t, runner, "bookmark", "add", "100"); err != nil {
			t.Fatalf("login-required is not an error, got %v", err)
		}
		if !strings.Contains(output.String(), "Please login to add bookmarks") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if hits != 0 {
			t.Errorf("expected zero catalog calls, got %d", hits)
		}
	})

	t.Run("Add Movie Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/addmoviebookmark/movie" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)
		runner.sessions.Login("t1", "u1")

		if err := runCommand(t, runner, "bookmark", "add", "100"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Movie bookmarked successfully!") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("Add Failure Uses Fallback Message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)
		runner.sessions.Login("t1", "u1")

		err := runCommand(t, runner, "bookmark", "add", "100")
		if err == nil {
			t.Fatal("expected error for failed add")
		}
		if !strings.Contains(output.String(), "✗ Failed to bookmark movie") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("Remove Series Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/deletebookmark/tvseries/u1/b1" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)
		runner.sessions.Login("t1", "u1")

		if err := runCommand(t, runner, "bookmark", "remove", "b1", "--type", "tv"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ TV Series bookmark removed successfully") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("List Requires Login Without Network Call", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer srv.Close()

		runner, output := newTestRunner(t, srv.URL)

		if err := runCommand(t, runner, "bookmark", "list"); err != nil {
			t.Fatalf("login-required is not an error, got %v", err)
		}
		if !strings.Contains(output.String(), "Please login to see your bookmarks") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if hits != 0 {
			t.Errorf("expected zero catalog calls, got %d", hits)
		}
	})

	t.Run("Unknown Media Type", func(t *testing.T) {
		runner, _ := newTestRunner(t, "http://localhost:5000")
		runner.sessions.Login("t1", "u1")

		if err := runCommand(t, runner, "bookmark", "add", "100", "--type", "podcast"); err == nil {
			t.Fatal("expected error for unknown media type")
		}
	})
}
