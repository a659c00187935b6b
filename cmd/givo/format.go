package main

import (
	"strings"
	"time"

	"github.com/fentz26/givo/internal/apperr"
)

// whenLayouts are tried in order; all but RFC 3339 read local time.
var whenLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// shortID shows the last 8 characters. Time-ordered ids share their
// leading characters, so the tail is the part that tells them apart.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func matchesShortID(id, ref string) bool {
	return ref != "" && (strings.HasSuffix(id, ref) || strings.HasPrefix(id, ref))
}

func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("cannot read time %q, use YYYY-MM-DD HH:MM", s)
}
