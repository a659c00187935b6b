package workspace

import (
	"sort"
	"time"

	"github.com/fentz26/givo/internal/models"
	"github.com/sahilm/fuzzy"
)

// Named filters understood by Filter. Names that do not restrict
// (all, starred, archived, "") pass every list through.
const (
	FilterAll      = "all"
	FilterRecent   = "recent"
	FilterStarred  = "starred"
	FilterArchived = "archived"
)

// RecentWindow is how far back the recent filter reaches.
const RecentWindow = 7 * 24 * time.Hour

// Query describes a filtered view of the workspace lists.
type Query struct {
	Text   string
	Filter string
	// Now is the evaluation time for date-window filters. Zero means time.Now.
	Now time.Time
	// Ranked orders matches by descending match score instead of keeping
	// input order. Ties keep input order.
	Ranked bool
}

// listSource adapts lists to fuzzy.Source.
type listSource []models.WorkspaceList

func (s listSource) String(i int) string { return s[i].Name + " " + s[i].Description }
func (s listSource) Len() int            { return len(s) }

// Filter returns the lists matching q. It never modifies lists.
func Filter(lists []models.WorkspaceList, q Query) []models.WorkspaceList {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	candidates := make(listSource, 0, len(lists))
	for _, l := range lists {
		if q.Filter == FilterRecent && !withinRecent(l.CreatedAt, now) {
			continue
		}
		candidates = append(candidates, l)
	}

	if q.Text == "" {
		return []models.WorkspaceList(candidates)
	}

	matches := fuzzy.FindFrom(q.Text, candidates)
	if q.Ranked {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Score != matches[j].Score {
				return matches[i].Score > matches[j].Score
			}
			return matches[i].Index < matches[j].Index
		})
	} else {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	}

	out := make([]models.WorkspaceList, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
	}
	return out
}

// Matches reports whether every character of query appears in target in the
// same relative order, ignoring case.
func Matches(query, target string) bool {
	if query == "" {
		return true
	}
	return len(fuzzy.Find(query, []string{target})) == 1
}

func withinRecent(createdAt, now time.Time) bool {
	age := now.Sub(createdAt)
	return age <= RecentWindow
}
