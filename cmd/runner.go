package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"movitv/internal/services"
	"movitv/internal/session"
	"movitv/internal/shared"
	"movitv/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	tmdb       *services.TMDBService
	sessions   *session.Store
	logger     *log.Logger
	output     io.Writer
	engine     tasks.Synchronizer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	TMDB       *services.TMDBService
	Sessions   *session.Store
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var engine tasks.Synchronizer
	if opts.Catalog != nil {
		engine = tasks.NewBookmarkEngine(opts.Catalog, opts.TMDB, opts.Config.Credentials.TMDB.RateLimit, opts.Logger)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		tmdb:       opts.TMDB,
		sessions:   opts.Sessions,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger replaces the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, bookmarkCommand, browseCommand, profileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeOutcome reports a bookmark mutation result the way the web client
// shows toasts. Login-required is a prompt, not a failure.
func (r *Runner) writeOutcome(outcome tasks.Outcome) error {
	if outcome.LoginRequired {
		r.writePlain("⚠ %s\n", outcome.Notification.Message)
		return r.writePlain("Run: movitv auth login\n")
	}
	if outcome.Ok() {
		return r.writePlain("✓ %s\n", outcome.Notification.Message)
	}
	r.writePlain("✗ %s\n", outcome.Notification.Message)
	return fmt.Errorf("%w: %s", shared.ErrAPIRequest, outcome.Notification.Message)
}
