package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.Catalog.BaseURL == "" {
			t.Error("expected default catalog base URL")
		}
		if config.Credentials.TMDB.Language != "en-US" {
			t.Errorf("expected default language en-US, got %s", config.Credentials.TMDB.Language)
		}
		if config.Credentials.TMDB.RateLimit <= 0 {
			t.Error("expected positive default rate limit")
		}
		if config.Server.Addr() != "localhost:3000" {
			t.Errorf("expected callback address localhost:3000, got %s", config.Server.Addr())
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[credentials.catalog]
base_url = "https://catalog.example.com"

[credentials.tmdb]
api_key = "key"
read_token = "token"
language = "fr-FR"
rate_limit = 5

[database]
path = ":memory:"
max_open_conns = 1
max_idle_conns = 1

[server]
host = "127.0.0.1"
port = 9090
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Catalog.BaseURL != "https://catalog.example.com" {
			t.Errorf("unexpected catalog URL: %s", config.Credentials.Catalog.BaseURL)
		}
		if config.Credentials.TMDB.Language != "fr-FR" {
			t.Errorf("unexpected language: %s", config.Credentials.TMDB.Language)
		}
		if config.Server.Addr() != "127.0.0.1:9090" {
			t.Errorf("unexpected server addr: %s", config.Server.Addr())
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})

	t.Run("ExpandPath", func(t *testing.T) {
		if got := ExpandPath(":memory:"); got != ":memory:" {
			t.Errorf("expected :memory: unchanged, got %s", got)
		}

		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}
		want := filepath.Join(home, ".movitv", "movitv.db")
		if got := ExpandPath("~/.movitv/movitv.db"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestTruncateWords(t *testing.T) {
	if got := TruncateWords("a dream within a dream", 10); got != "a dream within a dream" {
		t.Errorf("short text should be unchanged, got %q", got)
	}
	if got := TruncateWords("one two three four", 2); got != "one two..." {
		t.Errorf("expected truncation with ellipsis, got %q", got)
	}
}
