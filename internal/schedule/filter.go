package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/fentz26/givo/internal/models"
	"github.com/sahilm/fuzzy"
)

// Sort orders understood by Filter.
const (
	SortDate  = "date"
	SortName  = "name"
	SortTag   = "tag"
	SortColor = "color"
)

// Query describes a filtered, sorted view of the schedules.
type Query struct {
	// Text matches name and tag as an in-order subsequence, ignoring case.
	Text string
	// Tag keeps only one tag. Empty keeps all.
	Tag models.ScheduleTag
	// Day keeps entries starting on the same calendar day, in Day's
	// location. Zero keeps all days.
	Day time.Time
	// Sort is one of the Sort constants. Empty or unknown sorts by date.
	Sort string
}

// ValidSort reports whether s names a sort order.
func ValidSort(s string) bool {
	switch s {
	case "", SortDate, SortName, SortTag, SortColor:
		return true
	}
	return false
}

type scheduleSource []models.Schedule

func (s scheduleSource) String(i int) string { return s[i].Name + " " + string(s[i].Tag) }
func (s scheduleSource) Len() int            { return len(s) }

// Filter returns the schedules matching q in q.Sort order. Equal keys keep
// input order. It never modifies schedules.
func Filter(schedules []models.Schedule, q Query) []models.Schedule {
	candidates := make(scheduleSource, 0, len(schedules))
	for _, s := range schedules {
		if q.Tag != "" && s.Tag != q.Tag {
			continue
		}
		if !q.Day.IsZero() && !sameDay(s.Start, q.Day) {
			continue
		}
		candidates = append(candidates, s)
	}

	out := []models.Schedule(candidates)
	if q.Text != "" {
		matches := fuzzy.FindFrom(q.Text, candidates)
		sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
		out = make([]models.Schedule, 0, len(matches))
		for _, m := range matches {
			out = append(out, candidates[m.Index])
		}
	}

	sort.SliceStable(out, less(out, q.Sort))
	return out
}

func less(s []models.Schedule, by string) func(i, j int) bool {
	switch by {
	case SortName:
		return func(i, j int) bool { return strings.ToLower(s[i].Name) < strings.ToLower(s[j].Name) }
	case SortTag:
		return func(i, j int) bool { return s[i].Tag < s[j].Tag }
	case SortColor:
		return func(i, j int) bool { return strings.ToLower(s[i].Color) < strings.ToLower(s[j].Color) }
	default:
		return func(i, j int) bool { return s[i].Start.Before(s[j].Start) }
	}
}

func sameDay(t, day time.Time) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
