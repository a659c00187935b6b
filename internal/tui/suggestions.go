package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/givo/internal/workspace"
)

// Suggestions provides autocomplete for commands
type Suggestions struct {
	items        []SuggestionItem
	filtered     []SuggestionItem
	selectedIdx  int
	visible      bool
	prefix       string // "/" or "@"
	currentInput string
}

// SuggestionItem represents a single autocomplete suggestion
type SuggestionItem struct {
	Text        string
	Description string
	Type        string // "command", "list"
}

var commandSuggestions = []SuggestionItem{
	{Text: "add", Description: "Create a todo", Type: "command"},
	{Text: "toggle", Description: "Complete or reopen the selected todo", Type: "command"},
	{Text: "rm", Description: "Delete the selected todo or list", Type: "command"},
	{Text: "list", Description: "Create an empty workspace list", Type: "command"},
	{Text: "paste", Description: "Import text as a new list", Type: "command"},
	{Text: "import", Description: "Import a text file as a new list", Type: "command"},
	{Text: "search", Description: "Filter workspace lists", Type: "command"},
	{Text: "recent", Description: "Show lists from the last 7 days", Type: "command"},
	{Text: "all", Description: "Clear the list filter", Type: "command"},
	{Text: "audio", Description: "Record a voice note", Type: "command"},
	{Text: "video", Description: "Record a video note", Type: "command"},
	{Text: "login", Description: "Sign in with email and password", Type: "command"},
	{Text: "logout", Description: "Sign out of your account", Type: "command"},
	{Text: "whoami", Description: "Show current user info", Type: "command"},
}

// NewSuggestions creates a new suggestions handler
func NewSuggestions() *Suggestions {
	return &Suggestions{
		items:   commandSuggestions,
		visible: false,
	}
}

// Update updates suggestions based on current input
func (s *Suggestions) Update(input string) {
	s.currentInput = input
	if input == "" {
		s.hide()
		return
	}

	switch input[0] {
	case '/':
		s.prefix = "/"
		s.items = commandSuggestions
	case '@':
		s.prefix = "@"
		// Lists arrive through SetLists.
		if len(s.items) > 0 && s.items[0].Type == "command" {
			s.items = []SuggestionItem{}
		}
	default:
		s.hide()
		return
	}
	s.visible = true
	s.filter(input[1:])
}

func (s *Suggestions) hide() {
	s.visible = false
	s.filtered = nil
	s.prefix = ""
}

// SetLists updates the list reference suggestions.
func (s *Suggestions) SetLists(names []string) {
	if s.prefix != "@" {
		return
	}
	s.items = make([]SuggestionItem, len(names))
	for i, name := range names {
		s.items[i] = SuggestionItem{
			Text:        name,
			Description: "Add the next recording here",
			Type:        "list",
		}
	}
	s.filter(strings.TrimPrefix(s.currentInput, "@"))
}

// filter keeps items whose text contains query's characters in order.
func (s *Suggestions) filter(query string) {
	s.selectedIdx = 0
	if query == "" {
		s.filtered = s.items
		return
	}
	s.filtered = []SuggestionItem{}
	for _, item := range s.items {
		if workspace.Matches(query, item.Text) {
			s.filtered = append(s.filtered, item)
		}
	}
}

// Next moves to the next suggestion
func (s *Suggestions) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx = (s.selectedIdx + 1) % len(s.filtered)
}

// Prev moves to the previous suggestion
func (s *Suggestions) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx--
	if s.selectedIdx < 0 {
		s.selectedIdx = len(s.filtered) - 1
	}
}

// Selected returns the currently selected suggestion
func (s *Suggestions) Selected() *SuggestionItem {
	if !s.visible || len(s.filtered) == 0 || s.selectedIdx >= len(s.filtered) {
		return nil
	}
	return &s.filtered[s.selectedIdx]
}

// IsVisible returns whether suggestions are currently visible
func (s *Suggestions) IsVisible() bool {
	return s.visible && len(s.filtered) > 0
}

// Render renders the suggestions dropdown
func (s *Suggestions) Render(width int, accent lipgloss.Color) string {
	if !s.IsVisible() {
		return ""
	}

	var b strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 4)

	chosenStyle := lipgloss.NewStyle().
		Background(accent).
		Foreground(fgColor).
		Bold(true)

	itemStyle := lipgloss.NewStyle().Foreground(fgColor)
	descStyle := lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	header := "Commands"
	if s.prefix == "@" {
		header = "Lists"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(header))
	b.WriteString("\n")

	maxVisible := 5
	for i, item := range s.filtered {
		if i >= maxVisible {
			b.WriteString(descStyle.Render(fmt.Sprintf("  ... and %d more", len(s.filtered)-maxVisible)))
			break
		}

		var line string
		if i == s.selectedIdx {
			line = chosenStyle.Render("▶ " + item.Text)
			if item.Description != "" {
				line += " " + chosenStyle.Render(item.Description)
			}
		} else {
			line = itemStyle.Render("  " + item.Text)
			if item.Description != "" {
				line += " " + descStyle.Render(item.Description)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return boxStyle.Render(b.String())
}
