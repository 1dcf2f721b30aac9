package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"movitv/internal/repositories"
	"movitv/internal/services"
	"movitv/internal/session"
	"movitv/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	catalog := services.NewCatalogService(config.Credentials.Catalog.BaseURL, http.DefaultClient)
	tmdb := services.NewTMDBService(
		config.Credentials.TMDB.APIKey,
		config.Credentials.TMDB.ReadToken,
		config.Credentials.TMDB.Language,
	)

	var storage session.Storage
	if db, err := shared.NewDatabase(shared.ExpandPath(config.Database.Path)); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		storage = repositories.NewSessionRepository(db)
	} else {
		logger.Warn("session database unavailable, run 'movitv setup'", "error", err)
		storage = unavailableStorage{err: err}
	}
	sessions := session.NewStore(storage, logger)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Catalog:    catalog,
		TMDB:       tmdb,
		Sessions:   sessions,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "movitv",
		Usage:    "Browse movies & TV series and manage your MoviTV bookmarks",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// unavailableStorage stands in when the session database cannot be opened.
// The session store treats its errors as the logged-out state with a warning.
type unavailableStorage struct {
	err error
}

func (s unavailableStorage) All() (map[string]string, error) { return nil, s.err }
func (s unavailableStorage) SetAll(map[string]string) error  { return s.err }
func (s unavailableStorage) Clear() error                    { return s.err }
