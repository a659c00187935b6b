package state

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fentz26/givo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *FileStorage {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestRestore_MissingBlobYieldsDefaults(t *testing.T) {
	s, err := Restore(context.Background(), newTestStorage(t), RootKey)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), s)
}

func TestPersistor_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	st := New(DefaultState())
	p := NewPersistor(st, storage, RootKey, nil)
	p.Start()

	st.Dispatch(AddTask{ID: "1", Title: "T", CreatedAt: t0})
	st.Dispatch(SetUser{User: models.User{ID: "u", Email: "a@b.com"}, Token: "tok"})
	st.Dispatch(ImportTextAsList{ID: "w", Name: "Imp", Content: "hello", Owner: "me", CreatedAt: t0})
	st.Dispatch(SetLanguage{Language: models.LangFrench})
	st.Dispatch(AddSchedule{Schedule: models.Schedule{ID: "s", Name: "Sync", Start: t0, End: t0.Add(time.Hour),
		Tag: models.TagMeeting, LocationType: models.LocationOnline, Color: "#fff", CreatedAt: t0}})
	p.Stop()

	restored, err := Restore(ctx, storage, RootKey)
	require.NoError(t, err)
	assert.Equal(t, st.GetState(), restored)
}

func TestPersistor_StopsWritingAfterStop(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	st := New(DefaultState())
	p := NewPersistor(st, storage, RootKey, nil)
	p.Start()
	st.Dispatch(AddTask{ID: "1", Title: "T", CreatedAt: t0})
	p.Stop()
	st.Dispatch(AddTask{ID: "2", Title: "U", CreatedAt: t0})

	restored, err := Restore(ctx, storage, RootKey)
	require.NoError(t, err)
	assert.Len(t, restored.Tasks.Items, 1)

	require.NoError(t, p.Flush(ctx))
	restored, _ = Restore(ctx, storage, RootKey)
	assert.Len(t, restored.Tasks.Items, 2)

	require.NoError(t, p.Purge(ctx))
	restored, _ = Restore(ctx, storage, RootKey)
	assert.Equal(t, DefaultState(), restored)
}

func TestRestore_PartialBlobKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	blob := `{"version":1,"workspace":{"lists":[{"id":"l","name":"L","owner":"me","createdAt":"2024-01-01T00:00:00Z"}]}}`
	require.NoError(t, storage.SetItem(ctx, RootKey, []byte(blob)))

	s, err := Restore(ctx, storage, RootKey)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s.Settings)
	assert.NotNil(t, s.Tasks.Items)
	assert.NotNil(t, s.Schedules.Items)
	require.Len(t, s.Workspace.Lists, 1)
	assert.NotNil(t, s.Workspace.Lists[0].Items)
}

func TestRestore_UnknownVersion(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	require.NoError(t, storage.SetItem(ctx, RootKey, []byte(`{"version":99,"todo":{"items":[{"id":"1","title":"T"}]}}`)))

	s, err := Restore(ctx, storage, RootKey)
	assert.Error(t, err)
	assert.Equal(t, DefaultState(), s)
}

// slowStorage delays every write by a varying amount so concurrent saves
// finish out of order.
type slowStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func (s *slowStorage) GetItem(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *slowStorage) SetItem(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.writes++
	delay := time.Duration(5-s.writes%5) * time.Millisecond
	s.mu.Unlock()

	time.Sleep(delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *slowStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func TestPersistor_ConcurrentDispatchesSaveLatestState(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		storage := &slowStorage{data: map[string][]byte{}}
		st := New(DefaultState())
		p := NewPersistor(st, storage, RootKey, nil)
		p.Start()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				st.Dispatch(AddTask{ID: fmt.Sprintf("t%d", i), Title: "T", CreatedAt: t0})
			}(i)
		}
		wg.Wait()
		p.Stop()

		restored, err := Restore(ctx, storage, RootKey)
		require.NoError(t, err)
		assert.Len(t, restored.Tasks.Items, 20, "round %d", round)
		assert.Equal(t, st.GetState(), restored, "round %d", round)
	}
}
