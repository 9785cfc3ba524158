// Package taskboard wires the task store to its storage backend and exposes
// the operations shared by the CLI commands and the TUI.
package taskboard

import (
	"context"
	"fmt"
	"io"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/data/db"
	"github.com/colonyops/taskboard/internal/data/stores"
)

// App is the central entry point for all taskboard operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *Service
	Store  *task.Store
	Config *config.Config

	closer io.Closer
}

// NewApp constructs an App from explicit dependencies. closer may be nil.
func NewApp(store *task.Store, cfg *config.Config, closer io.Closer, opts ...ServiceOption) *App {
	return &App{
		Tasks:  NewService(store, opts...),
		Store:  store,
		Config: cfg,
		closer: closer,
	}
}

// OpenOptions controls how Open selects storage.
type OpenOptions struct {
	// Ephemeral keeps tasks in memory regardless of the configured backend.
	Ephemeral bool
}

// Open builds the configured storage backend, loads the task snapshot, and
// returns a ready App. Close must be called to release the backend.
func Open(ctx context.Context, cfg *config.Config, opts OpenOptions) (*App, error) {
	backend := cfg.Storage.Backend
	if opts.Ephemeral {
		backend = stores.BackendMemory
	}

	blobs, closer, err := stores.Open(stores.Options{
		Backend: backend,
		DataDir: cfg.DataDir,
		DB: db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", backend, err)
	}

	store := task.NewStore(ctx,
		task.NewKVBlobStore(blobs, cfg.Storage.Key),
		task.WithLogger(logging.Component("store")),
	)

	return NewApp(store, cfg, closer), nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
