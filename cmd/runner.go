package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/quireapp/quire/internal/appstate"
	"github.com/quireapp/quire/internal/shared"
	"github.com/quireapp/quire/internal/storage"
	"github.com/quireapp/quire/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Storage is opened lazily on the first action that needs it, so commands
// like help and version never touch the database.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	backend storage.Backend
	service *storage.Service
	store   *appstate.Store
	engine  *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Backend storage.Backend // Injectable for tests; defaults to sqlite at the configured path
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

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		backend: opts.Backend,
	}
}

// ensureStore opens the backend, wires the persistence service and the
// application store, and initializes them. Idempotent per process.
func (r *Runner) ensureStore() (*appstate.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	if r.backend == nil {
		backend, err := storage.OpenSQLite(r.config.Storage.Path, r.config.Storage.MaxOpenConns, r.config.Storage.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		r.backend = backend
	}

	r.service = storage.NewService(r.backend, r.logger)
	r.store = appstate.NewStore(r.service, r.logger)
	if err := r.store.Initialize(); err != nil {
		return nil, err
	}

	r.engine = tasks.NewEngine(r.store, r.config.Upload.MaxFileSize)
	return r.store, nil
}

// Close releases the backend if a command opened it.
func (r *Runner) Close() {
	if r.backend != nil {
		if err := r.backend.Close(); err != nil {
			r.logger.Warn("failed to close storage", "err", err)
		}
	}
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
