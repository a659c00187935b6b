// Package models defines the core domain types for givo.
package models

import "time"

// TimeLayout is the ISO-8601 layout used for durable timestamps.
// Fixed width so that text ordering matches chronological ordering.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses any RFC 3339 timestamp, including TimeLayout.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Task represents a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskRecord is the durable row shape of a Task.
type TaskRecord struct {
	ID        string
	Title     string
	Completed int // 0 or 1
	CreatedAt string
}

// CompletionFlag encodes a completion state as stored in the todos table.
func CompletionFlag(completed bool) int {
	if completed {
		return 1
	}
	return 0
}

// Record converts a task to its durable form.
func (t Task) Record() TaskRecord {
	return TaskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Completed: CompletionFlag(t.Completed),
		CreatedAt: FormatTime(t.CreatedAt),
	}
}

// Task converts a durable record back to a Task.
// Any non-zero completion flag counts as completed.
func (r TaskRecord) Task() (Task, error) {
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed != 0,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// WorkspaceItem is a text note or a recorded-media reference inside a list.
// For media items Description holds the media URI.
type WorkspaceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	Owner       string    `json:"owner"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// WorkspaceList is a named collection of items, newest first.
type WorkspaceList struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Owner       string          `json:"owner"`
	Items       []WorkspaceItem `json:"items"`
}

// User is the authenticated identity.
type User struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email"`
	Country  string `json:"country,omitempty"`
}

// Theme is the accent palette preference.
type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemeGreen  Theme = "green"
	ThemePurple Theme = "purple"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeBlue, ThemeGreen, ThemePurple:
		return true
	}
	return false
}

// TextSize is the reading size preference.
type TextSize string

const (
	TextSmall  TextSize = "small"
	TextMedium TextSize = "medium"
	TextLarge  TextSize = "large"
)

// Valid reports whether s is a known text size.
func (s TextSize) Valid() bool {
	switch s {
	case TextSmall, TextMedium, TextLarge:
		return true
	}
	return false
}

// Language is the UI language preference.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
	LangFrench  Language = "fr"
	LangGerman  Language = "de"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangSpanish, LangFrench, LangGerman:
		return true
	}
	return false
}

// Settings holds user preferences.
type Settings struct {
	DarkMode             bool     `json:"darkMode"`
	Theme                Theme    `json:"theme"`
	TextSize             TextSize `json:"textSize"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	EmailNotifications   bool     `json:"emailNotifications"`
	AutoSync             bool     `json:"autoSync"`
	SyncInterval         int      `json:"syncInterval"` // minutes
	Language             Language `json:"language"`
	PrivacyMode          bool     `json:"privacyMode"`
	DeletedAccountsSync  bool     `json:"deletedAccountsSync"`
	OfflineMode          bool     `json:"offlineMode"`
	AnalyticsEnabled     bool     `json:"analyticsEnabled"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:             false,
		Theme:                ThemeBlue,
		TextSize:             TextMedium,
		NotificationsEnabled: true,
		EmailNotifications:   true,
		AutoSync:             true,
		SyncInterval:         5,
		Language:             LangEnglish,
		PrivacyMode:          false,
		DeletedAccountsSync:  true,
		OfflineMode:          false,
		AnalyticsEnabled:     true,
	}
}

// ScheduleTag classifies a schedule entry.
type ScheduleTag string

const (
	TagMeeting ScheduleTag = "meeting"
	TagEvent   ScheduleTag = "event"
	TagHoliday ScheduleTag = "holiday"
)

// Valid reports whether t is a known schedule tag.
func (t ScheduleTag) Valid() bool {
	switch t {
	case TagMeeting, TagEvent, TagHoliday:
		return true
	}
	return false
}

// LocationType says where a schedule takes place.
type LocationType string

const (
	LocationOnline  LocationType = "online"
	LocationOffline LocationType = "offline"
)

// Valid reports whether l is a known location type.
func (l LocationType) Valid() bool {
	return l == LocationOnline || l == LocationOffline
}

// Schedule is a timed calendar entry. LocationURL is only set for online
// entries.
type Schedule struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Start         time.Time    `json:"start"`
	End           time.Time    `json:"end"`
	LocationType  LocationType `json:"locationType"`
	LocationLabel string       `json:"locationLabel,omitempty"`
	LocationURL   string       `json:"locationUrl,omitempty"`
	Tag           ScheduleTag  `json:"tag"`
	Color         string       `json:"color"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// IsPast reports whether the schedule ended before now.
func (s Schedule) IsPast(now time.Time) bool {
	return s.End.Before(now)
}
