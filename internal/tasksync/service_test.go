package tasksync

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/fentz26/givo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "givo_todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// failingStore fails the operations named in failOn.
type failingStore struct {
	RecordStore
	failOn map[string]bool
}

func (f *failingStore) Initialize(ctx context.Context) error {
	if f.failOn["init"] {
		return fmt.Errorf("%w: disk gone", apperr.ErrStorageUnavailable)
	}
	return f.RecordStore.Initialize(ctx)
}

func (f *failingStore) ListAll(ctx context.Context) ([]models.TaskRecord, error) {
	if f.failOn["list"] {
		return nil, fmt.Errorf("%w: io", apperr.ErrStorageRead)
	}
	return f.RecordStore.ListAll(ctx)
}

func (f *failingStore) Insert(ctx context.Context, rec models.TaskRecord) error {
	if f.failOn["write"] {
		return fmt.Errorf("%w: io", apperr.ErrStorageWrite)
	}
	return f.RecordStore.Insert(ctx, rec)
}

func (f *failingStore) SetCompletion(ctx context.Context, id string, completed int) error {
	if f.failOn["write"] {
		return fmt.Errorf("%w: io", apperr.ErrStorageWrite)
	}
	return f.RecordStore.SetCompletion(ctx, id, completed)
}

func (f *failingStore) Delete(ctx context.Context, id string) error {
	if f.failOn["write"] {
		return fmt.Errorf("%w: io", apperr.ErrStorageWrite)
	}
	return f.RecordStore.Delete(ctx, id)
}

func TestLoadThenToggle(t *testing.T) {
	ctx := context.Background()
	records := newSQLiteStore(t)
	require.NoError(t, records.Initialize(ctx))
	require.NoError(t, records.Insert(ctx, models.TaskRecord{ID: "1", Title: "T", Completed: 0, CreatedAt: "2024-01-01T00:00:00Z"}))

	st := state.New(state.DefaultState())
	svc := NewService(records, st, WithLogger(quiet))
	require.NoError(t, svc.Load(ctx))

	tasks := st.GetState().Tasks.Items
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tasks[0].CreatedAt)

	require.NoError(t, svc.Toggle(ctx, "1"))

	rec, err := records.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Completed)
	assert.True(t, st.GetState().Tasks.Items[0].Completed)
}

func TestAddWritesStoreThenMemory(t *testing.T) {
	ctx := context.Background()
	records := newSQLiteStore(t)
	st := state.New(state.DefaultState())
	fixed := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	svc := NewService(records, st, WithLogger(quiet), WithIDGenerator(func() string { return "id-1" }), WithClock(func() time.Time { return fixed }))
	require.NoError(t, svc.Load(ctx))

	task, err := svc.Add(ctx, "  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Buy milk", task.Title)

	rec, err := records.Get(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2025-05-06T07:08:09.000Z", rec.CreatedAt)

	mem := st.GetState().Tasks.Items
	require.Len(t, mem, 1)
	assert.Equal(t, fixed, mem[0].CreatedAt)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	st := state.New(state.DefaultState())
	svc := NewService(newSQLiteStore(t), st, WithLogger(quiet))

	_, err := svc.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, st.GetState().Tasks.Items)
}

func TestFailedWritesLeaveMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	records := newSQLiteStore(t)
	fs := &failingStore{RecordStore: records, failOn: map[string]bool{}}
	st := state.New(state.DefaultState())
	svc := NewService(fs, st, WithLogger(quiet))
	require.NoError(t, svc.Load(ctx))

	task, err := svc.Add(ctx, "keep me")
	require.NoError(t, err)

	fs.failOn["write"] = true
	before := st.GetState()

	_, err = svc.Add(ctx, "lost")
	assert.ErrorIs(t, err, apperr.ErrStorageWrite)
	err = svc.Toggle(ctx, task.ID)
	assert.ErrorIs(t, err, apperr.ErrStorageWrite)
	err = svc.Remove(ctx, task.ID)
	assert.ErrorIs(t, err, apperr.ErrStorageWrite)

	assert.Equal(t, before, st.GetState())
}

func TestLoadFailureKeepsRestoredState(t *testing.T) {
	ctx := context.Background()
	restored := state.Reduce(state.DefaultState(), state.AddTask{ID: "snap", Title: "from snapshot", CreatedAt: time.Now()})

	for _, op := range []string{"init", "list"} {
		t.Run(op, func(t *testing.T) {
			fs := &failingStore{RecordStore: newSQLiteStore(t), failOn: map[string]bool{op: true}}
			st := state.New(restored)
			svc := NewService(fs, st, WithLogger(quiet))

			err := svc.Load(ctx)
			assert.Error(t, err)
			assert.Equal(t, restored, st.GetState())
		})
	}
}

func TestToggleAbsentAndRemoveTwiceAreNoops(t *testing.T) {
	ctx := context.Background()
	records := newSQLiteStore(t)
	st := state.New(state.DefaultState())
	svc := NewService(records, st, WithLogger(quiet))
	require.NoError(t, svc.Load(ctx))

	task, err := svc.Add(ctx, "T")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, task.ID))
	require.NoError(t, svc.Remove(ctx, task.ID))
	require.NoError(t, svc.Toggle(ctx, task.ID))

	assert.Empty(t, st.GetState().Tasks.Items)
	all, err := records.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryMatchesTableAfterRandomOperations(t *testing.T) {
	ctx := context.Background()
	records := newSQLiteStore(t)
	st := state.New(state.DefaultState())
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(records, st, WithLogger(quiet), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	require.NoError(t, svc.Load(ctx))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		items := st.GetState().Tasks.Items
		switch op := rng.Intn(3); {
		case op == 0 || len(items) == 0:
			_, err := svc.Add(ctx, fmt.Sprintf("task %d", i))
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, svc.Toggle(ctx, items[rng.Intn(len(items))].ID))
		default:
			require.NoError(t, svc.Remove(ctx, items[rng.Intn(len(items))].ID))
		}
	}

	all, err := records.ListAll(ctx)
	require.NoError(t, err)
	mem := st.GetState().Tasks.Items
	require.Len(t, all, len(mem))
	for i, rec := range all {
		task, err := rec.Task()
		require.NoError(t, err)
		assert.Equal(t, mem[i], task)
	}

	// A fresh load reproduces the same in-memory todos.
	reloaded := state.New(state.DefaultState())
	require.NoError(t, NewService(records, reloaded, WithLogger(quiet)).Load(ctx))
	assert.Equal(t, mem, reloaded.GetState().Tasks.Items)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
