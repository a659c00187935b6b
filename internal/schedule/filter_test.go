package schedule

import (
	"testing"
	"time"

	"github.com/fentz26/givo/internal/models"
	"github.com/stretchr/testify/assert"
)

var day1 = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func fixtures() []models.Schedule {
	return []models.Schedule{
		{ID: "a", Name: "Team sync", Tag: models.TagMeeting, Color: "#475af1ff",
			Start: day1.Add(10 * time.Hour), End: day1.Add(11 * time.Hour)},
		{ID: "b", Name: "Launch party", Tag: models.TagEvent, Color: "#28e0f0ff",
			Start: day1.Add(9 * time.Hour), End: day1.Add(12 * time.Hour)},
		{ID: "c", Name: "New Year", Tag: models.TagHoliday, Color: "#d80505ff",
			Start: day1.AddDate(0, 0, 1), End: day1.AddDate(0, 0, 2)},
	}
}

func ids(s []models.Schedule) []string {
	out := make([]string, len(s))
	for i, sc := range s {
		out[i] = sc.ID
	}
	return out
}

func TestFilterDefaultsToDateOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, ids(Filter(fixtures(), Query{})))
}

func TestFilterByTagAndDay(t *testing.T) {
	assert.Equal(t, []string{"a"}, ids(Filter(fixtures(), Query{Tag: models.TagMeeting})))
	assert.Equal(t, []string{"b", "a"}, ids(Filter(fixtures(), Query{Day: day1.Add(23 * time.Hour)})))
	assert.Empty(t, Filter(fixtures(), Query{Tag: models.TagHoliday, Day: day1}))
}

func TestFilterTextMatchesNameAndTag(t *testing.T) {
	assert.Equal(t, []string{"b"}, ids(Filter(fixtures(), Query{Text: "PARTY"})))
	assert.Equal(t, []string{"c"}, ids(Filter(fixtures(), Query{Text: "holiday"})))
	assert.Empty(t, Filter(fixtures(), Query{Text: "zzz"}))
}

func TestFilterSortOrders(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{SortDate, []string{"b", "a", "c"}},
		{SortName, []string{"b", "c", "a"}},
		{SortTag, []string{"b", "c", "a"}},
		{SortColor, []string{"b", "a", "c"}},
		{"bogus", []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtures(), Query{Sort: tt.sort})))
		})
	}
}

func TestFilterEqualKeysKeepInputOrder(t *testing.T) {
	in := fixtures()
	for i := range in {
		in[i].Color = "#ffffff"
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Filter(in, Query{Sort: SortColor})))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	in := fixtures()
	Filter(in, Query{Sort: SortName})
	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(""))
	assert.True(t, ValidSort(SortColor))
	assert.False(t, ValidSort("size"))
}
