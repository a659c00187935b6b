// Package app wires givo's components together and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fentz26/givo/internal/auth"
	"github.com/fentz26/givo/internal/config"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/schedule"
	"github.com/fentz26/givo/internal/state"
	"github.com/fentz26/givo/internal/store"
	"github.com/fentz26/givo/internal/tasksync"
	"github.com/fentz26/givo/internal/workspace"
)

// App holds every long-lived component. Create it with Open and release it
// with Close.
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	State     *state.Store
	Tasks     *tasksync.Service
	Workspace *workspace.Service
	Schedules *schedule.Service
	Auth      *auth.Manager

	records   *store.Store
	persistor *state.Persistor

	// LoadErr is the startup load failure, if any. The app still runs on the
	// restored snapshot when it is set.
	LoadErr error
}

// Open restores the snapshot, starts persisting, and loads todos from the
// database. A database failure is reported in LoadErr, not returned.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}

	storage, err := state.NewFileStorage(cfg.SnapshotDir())
	if err != nil {
		return nil, err
	}

	restored, err := state.Restore(ctx, storage, state.RootKey)
	if err != nil {
		logger.Printf("Warning: ignoring saved state: %v", err)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		State:  state.New(restored),
	}
	a.persistor = state.NewPersistor(a.State, storage, state.RootKey, logger)
	a.persistor.Start()

	a.Workspace = workspace.NewService(a.State, cfg.Owner)
	a.Schedules = schedule.NewService(a.State)
	a.Auth = auth.NewManager(auth.NewClient(cfg.APIURL, cfg.RequestTimeout), a.State)

	records, err := store.New(cfg.DBPath())
	if err != nil {
		logger.Printf("Warning: todos database unavailable: %v", err)
		a.LoadErr = err
		a.Tasks = tasksync.NewService(unavailableStore{err: err}, a.State, tasksync.WithLogger(logger))
		return a, nil
	}
	a.records = records
	a.Tasks = tasksync.NewService(records, a.State, tasksync.WithLogger(logger))
	a.LoadErr = a.Tasks.Load(ctx)
	return a, nil
}

// Close saves the final snapshot and closes the database.
func (a *App) Close() error {
	var errs []error

	a.persistor.Stop()
	if err := a.persistor.Flush(context.Background()); err != nil {
		errs = append(errs, fmt.Errorf("save state: %w", err))
	}
	if a.records != nil {
		if err := a.records.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// unavailableStore stands in for a database that could not be opened.
type unavailableStore struct{ err error }

func (u unavailableStore) Initialize(context.Context) error { return u.err }

func (u unavailableStore) ListAll(context.Context) ([]models.TaskRecord, error) { return nil, u.err }

func (u unavailableStore) Insert(context.Context, models.TaskRecord) error { return u.err }

func (u unavailableStore) SetCompletion(context.Context, string, int) error { return u.err }

func (u unavailableStore) Delete(context.Context, string) error { return u.err }
