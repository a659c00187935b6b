package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/fentz26/givo/internal/models"
)

// RootKey is the storage key of the whole-state snapshot.
const RootKey = "persist:root"

// SnapshotVersion tags the blob layout. Bump it before renaming or removing
// a persisted field.
const SnapshotVersion = 1

// Storage is a keyed blob store used for snapshots.
type Storage interface {
	GetItem(ctx context.Context, key string) (value []byte, ok bool, err error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}

type snapshot struct {
	Version int `json:"version"`
	State
}

// Restore loads the snapshot stored under key. A missing blob yields
// DefaultState with a nil error. Domains absent from the blob keep their
// defaults.
func Restore(ctx context.Context, storage Storage, key string) (State, error) {
	data, ok, err := storage.GetItem(ctx, key)
	if err != nil {
		return DefaultState(), fmt.Errorf("read snapshot: %w", err)
	}
	if !ok {
		return DefaultState(), nil
	}

	snap := snapshot{State: DefaultState()}
	if err := json.Unmarshal(data, &snap); err != nil {
		return DefaultState(), fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return DefaultState(), fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return normalize(snap.State), nil
}

// normalize restores the "lists and items are never nil" invariant.
func normalize(s State) State {
	if s.Tasks.Items == nil {
		s.Tasks.Items = []models.Task{}
	}
	if s.Workspace.Lists == nil {
		s.Workspace.Lists = []models.WorkspaceList{}
	}
	if s.Schedules.Items == nil {
		s.Schedules.Items = []models.Schedule{}
	}
	for i := range s.Workspace.Lists {
		if s.Workspace.Lists[i].Items == nil {
			s.Workspace.Lists[i].Items = []models.WorkspaceItem{}
		}
	}
	return s
}

// Persistor writes the store's state to Storage after every dispatch.
type Persistor struct {
	store   *Store
	storage Storage
	key     string
	logger  *log.Logger

	mu          sync.Mutex
	unsubscribe func()

	// saveMu orders writes; each write reads the state under it.
	saveMu sync.Mutex
}

// NewPersistor creates a persistor for st. A nil logger uses the standard logger.
func NewPersistor(st *Store, storage Storage, key string, logger *log.Logger) *Persistor {
	if logger == nil {
		logger = log.Default()
	}
	return &Persistor{
		store:   st,
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

// Start subscribes to the store. Calling Start twice is a no-op.
func (p *Persistor) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		return
	}
	// Listeners run outside the store lock, so the state handed to one may
	// already be stale. Saving the current state keeps the last write newest.
	p.unsubscribe = p.store.Subscribe(func(State) {
		if err := p.Flush(context.Background()); err != nil {
			p.logger.Printf("persist: save snapshot: %v", err)
		}
	})
}

// Stop unsubscribes from the store.
func (p *Persistor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// Flush writes the current state immediately.
func (p *Persistor) Flush(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()
	return p.save(ctx, p.store.GetState())
}

// Purge deletes the stored snapshot.
func (p *Persistor) Purge(ctx context.Context) error {
	return p.storage.RemoveItem(ctx, p.key)
}

func (p *Persistor) save(ctx context.Context, s State) error {
	data, err := json.Marshal(snapshot{Version: SnapshotVersion, State: s})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return p.storage.SetItem(ctx, p.key, data)
}
