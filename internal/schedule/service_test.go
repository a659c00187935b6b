package schedule

import (
	"testing"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestService() (*Service, *state.Store) {
	st := state.New(state.DefaultState())
	svc := NewService(st)
	svc.now = func() time.Time { return now }
	return svc, st
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, st := newTestService()

	sc, err := svc.Create(Draft{
		Name:        "  Standup ",
		Start:       day1.Add(9 * time.Hour),
		End:         day1.Add(9*time.Hour + 15*time.Minute),
		LocationURL: "https://meet.example.com/x",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, "Standup", sc.Name)
	assert.Equal(t, models.TagMeeting, sc.Tag)
	assert.Equal(t, models.LocationOnline, sc.LocationType)
	assert.Equal(t, "https://meet.example.com/x", sc.LocationURL)
	assert.Equal(t, DefaultColor, sc.Color)
	assert.Equal(t, now, sc.CreatedAt)
	assert.Len(t, st.GetState().Schedules.Items, 1)
}

func TestCreateOfflineDropsURL(t *testing.T) {
	svc, _ := newTestService()

	sc, err := svc.Create(Draft{
		Name:          "Offsite",
		Start:         day1,
		End:           day1.Add(time.Hour),
		Tag:           models.TagEvent,
		LocationType:  models.LocationOffline,
		LocationLabel: "Office",
		LocationURL:   "https://ignored.example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, sc.LocationURL)
	assert.Equal(t, "Office", sc.LocationLabel)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, st := newTestService()

	tests := []struct {
		name  string
		draft Draft
	}{
		{"empty name", Draft{Name: " ", Start: day1, End: day1.Add(time.Hour)}},
		{"end before start", Draft{Name: "x", Start: day1.Add(time.Hour), End: day1}},
		{"end equals start", Draft{Name: "x", Start: day1, End: day1}},
		{"missing times", Draft{Name: "x"}},
		{"unknown tag", Draft{Name: "x", Start: day1, End: day1.Add(time.Hour), Tag: "party"}},
		{"unknown location", Draft{Name: "x", Start: day1, End: day1.Add(time.Hour), LocationType: "moon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.draft)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
	assert.Empty(t, st.GetState().Schedules.Items)
}

func TestDeleteAndSearch(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(Draft{Name: "Review", Start: day1.Add(2 * time.Hour), End: day1.Add(3 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.Create(Draft{Name: "Kickoff", Start: day1.Add(time.Hour), End: day1.Add(2 * time.Hour)})
	require.NoError(t, err)

	got := svc.Search(Query{Sort: SortName})
	require.Len(t, got, 2)
	assert.Equal(t, "Kickoff", got[0].Name)
	assert.Equal(t, "Review", svc.Schedules()[0].Name, "storage keeps insertion order")

	require.NoError(t, svc.Delete(first.ID))
	_, ok := svc.Get(first.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, svc.Delete(first.ID), apperr.ErrValidation)
}

func TestIsPast(t *testing.T) {
	sc := models.Schedule{Start: day1, End: day1.Add(time.Hour)}
	assert.False(t, sc.IsPast(day1.Add(30*time.Minute)))
	assert.False(t, sc.IsPast(day1.Add(time.Hour)))
	assert.True(t, sc.IsPast(day1.Add(time.Hour+time.Second)))
}
