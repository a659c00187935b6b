package state

import (
	"strconv"
	"strings"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
)

// Settings actions. Each one overwrites exactly one field.
type (
	ToggleDarkMode          struct{}
	SetTheme                struct{ Theme models.Theme }
	SetTextSize             struct{ Size models.TextSize }
	SetNotificationsEnabled struct{ Enabled bool }
	SetEmailNotifications   struct{ Enabled bool }
	SetAutoSync             struct{ Enabled bool }
	SetSyncInterval         struct{ Minutes int }
	SetLanguage             struct{ Language models.Language }
	SetPrivacyMode          struct{ Enabled bool }
	SetDeletedAccountsSync  struct{ Enabled bool }
	SetOfflineMode          struct{ Enabled bool }
	SetAnalyticsEnabled     struct{ Enabled bool }
	ResetSettings           struct{}
)

func (ToggleDarkMode) Type() string          { return "settings/toggleDarkMode" }
func (SetTheme) Type() string                { return "settings/setTheme" }
func (SetTextSize) Type() string             { return "settings/setTextSize" }
func (SetNotificationsEnabled) Type() string { return "settings/setNotificationsEnabled" }
func (SetEmailNotifications) Type() string   { return "settings/setEmailNotifications" }
func (SetAutoSync) Type() string             { return "settings/setAutoSync" }
func (SetSyncInterval) Type() string         { return "settings/setSyncInterval" }
func (SetLanguage) Type() string             { return "settings/setLanguage" }
func (SetPrivacyMode) Type() string          { return "settings/setPrivacyMode" }
func (SetDeletedAccountsSync) Type() string  { return "settings/setDeletedAccountsSync" }
func (SetOfflineMode) Type() string          { return "settings/setOfflineMode" }
func (SetAnalyticsEnabled) Type() string     { return "settings/setAnalyticsEnabled" }
func (ResetSettings) Type() string           { return "settings/resetSettings" }

func reduceSettings(s models.Settings, a Action) models.Settings {
	switch a := a.(type) {
	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
	case SetTheme:
		if a.Theme.Valid() {
			s.Theme = a.Theme
		}
	case SetTextSize:
		if a.Size.Valid() {
			s.TextSize = a.Size
		}
	case SetNotificationsEnabled:
		s.NotificationsEnabled = a.Enabled
	case SetEmailNotifications:
		s.EmailNotifications = a.Enabled
	case SetAutoSync:
		s.AutoSync = a.Enabled
	case SetSyncInterval:
		if a.Minutes > 0 {
			s.SyncInterval = a.Minutes
		}
	case SetLanguage:
		if a.Language.Valid() {
			s.Language = a.Language
		}
	case SetPrivacyMode:
		s.PrivacyMode = a.Enabled
	case SetDeletedAccountsSync:
		s.DeletedAccountsSync = a.Enabled
	case SetOfflineMode:
		s.OfflineMode = a.Enabled
	case SetAnalyticsEnabled:
		s.AnalyticsEnabled = a.Enabled
	case ResetSettings:
		return models.DefaultSettings()
	}
	return s
}

// SettingKeys lists the names accepted by SettingAction, in display order.
var SettingKeys = []string{
	"darkMode", "theme", "textSize", "notificationsEnabled", "emailNotifications",
	"autoSync", "syncInterval", "language", "privacyMode", "deletedAccountsSync",
	"offlineMode", "analyticsEnabled",
}

// SettingAction builds the action that sets key to value. current is needed
// because dark mode can only be toggled.
func SettingAction(current models.Settings, key, value string) (Action, error) {
	value = strings.TrimSpace(value)
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, apperr.Validation("%s must be true or false", key)
		}
		return b, nil
	}

	switch key {
	case "theme":
		if t := models.Theme(value); t.Valid() {
			return SetTheme{Theme: t}, nil
		}
		return nil, apperr.Validation("theme must be blue, green or purple")
	case "textSize":
		if sz := models.TextSize(value); sz.Valid() {
			return SetTextSize{Size: sz}, nil
		}
		return nil, apperr.Validation("textSize must be small, medium or large")
	case "language":
		if l := models.Language(value); l.Valid() {
			return SetLanguage{Language: l}, nil
		}
		return nil, apperr.Validation("language must be en, es, fr or de")
	case "syncInterval":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, apperr.Validation("syncInterval must be a positive number of minutes")
		}
		return SetSyncInterval{Minutes: n}, nil
	}

	b, err := parseBool()
	if err != nil {
		if !isBoolKey(key) {
			return nil, apperr.Validation("unknown setting %q", key)
		}
		return nil, err
	}
	switch key {
	case "darkMode":
		if b == current.DarkMode {
			return nil, nil
		}
		return ToggleDarkMode{}, nil
	case "notificationsEnabled":
		return SetNotificationsEnabled{Enabled: b}, nil
	case "emailNotifications":
		return SetEmailNotifications{Enabled: b}, nil
	case "autoSync":
		return SetAutoSync{Enabled: b}, nil
	case "privacyMode":
		return SetPrivacyMode{Enabled: b}, nil
	case "deletedAccountsSync":
		return SetDeletedAccountsSync{Enabled: b}, nil
	case "offlineMode":
		return SetOfflineMode{Enabled: b}, nil
	case "analyticsEnabled":
		return SetAnalyticsEnabled{Enabled: b}, nil
	}
	return nil, apperr.Validation("unknown setting %q", key)
}

func isBoolKey(key string) bool {
	switch key {
	case "darkMode", "notificationsEnabled", "emailNotifications", "autoSync",
		"privacyMode", "deletedAccountsSync", "offlineMode", "analyticsEnabled":
		return true
	}
	return false
}
