// Package tui provides the interactive terminal UI for givo.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/media"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/fentz26/givo/internal/workspace"
)

var (
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// accent maps the theme preference to a colour.
func accent(t models.Theme) lipgloss.Color {
	switch t {
	case models.ThemeGreen:
		return lipgloss.Color("#10B981")
	case models.ThemePurple:
		return lipgloss.Color("#7C3AED")
	default:
		return lipgloss.Color("#3B82F6")
	}
}

const (
	modeTodo      = "todo"
	modeWorkspace = "workspace"
)

// App is the main TUI application model.
type App struct {
	core        *app.App
	snap        state.State
	input       textinput.Model
	suggestions *Suggestions

	width       int
	height      int
	mode        string
	selectedIdx int
	message     string
	busy        bool

	query  string
	filter string

	audio media.Recorder
	video media.Recorder
}

// New creates a new TUI application over an opened core.
func New(core *app.App) *App {
	ti := textinput.New()
	ti.Placeholder = "Type: add <title> | toggle | rm | paste <text> | search <q> | audio | / for commands"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 80

	a := &App{
		core:        core,
		snap:        core.State.GetState(),
		input:       ti,
		suggestions: NewSuggestions(),
		mode:        modeTodo,
		filter:      workspace.FilterAll,
		audio:       media.NewAudioRecorder(0),
		video:       media.NewVideoRecorder(0),
	}
	if core.LoadErr != nil {
		a.message = "Error: " + apperr.Message(core.LoadErr)
	}
	return a
}

// Run starts the TUI and re-renders whenever the state container changes.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	unsubscribe := a.core.State.Subscribe(func(state.State) {
		// Dispatches can happen while the event loop is busy.
		go p.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "up":
			if a.suggestions.IsVisible() {
				a.suggestions.Prev()
			} else if a.selectedIdx > 0 {
				a.selectedIdx--
			}
			return a, nil

		case "down":
			if a.suggestions.IsVisible() {
				a.suggestions.Next()
			} else if a.selectedIdx < a.rowCount()-1 {
				a.selectedIdx++
			}
			return a, nil

		case "tab":
			if a.suggestions.IsVisible() {
				a.acceptSuggestion()
				return a, nil
			}
			if a.mode == modeTodo {
				a.mode = modeWorkspace
			} else {
				a.mode = modeTodo
			}
			a.selectedIdx = 0
			return a, nil

		case "enter":
			if a.suggestions.IsVisible() {
				a.acceptSuggestion()
				return a, nil
			}
			input := strings.TrimSpace(a.input.Value())
			a.input.SetValue("")
			a.suggestions.Update("")
			if input == "" {
				if a.mode == modeTodo {
					return a, a.executeCommand("toggle")
				}
				return a, nil
			}
			return a, a.executeCommand(input)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 4

	case stateChangedMsg:
		a.snap = a.core.State.GetState()
		a.clampSelection()

	case commandResultMsg:
		a.busy = false
		a.message = msg.message

	case errMsg:
		a.busy = false
		a.message = "Error: " + apperr.Message(msg.err)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	a.suggestions.Update(a.input.Value())
	if strings.HasPrefix(a.input.Value(), "@") {
		names := make([]string, 0, len(a.snap.Workspace.Lists))
		for _, l := range a.snap.Workspace.Lists {
			names = append(names, l.Name)
		}
		a.suggestions.SetLists(names)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) acceptSuggestion() {
	if selected := a.suggestions.Selected(); selected != nil {
		if selected.Type == "list" {
			a.input.SetValue("@" + selected.Text + " ")
		} else {
			a.input.SetValue(selected.Text + " ")
		}
		a.input.CursorEnd()
		a.suggestions.Update("")
	}
}

// visibleLists is the workspace view after search and filter.
func (a *App) visibleLists() []models.WorkspaceList {
	return workspace.Filter(a.snap.Workspace.Lists, workspace.Query{
		Text:   a.query,
		Filter: a.filter,
		Now:    time.Now(),
	})
}

func (a *App) rowCount() int {
	if a.mode == modeTodo {
		return len(a.snap.Tasks.Items)
	}
	return len(a.visibleLists())
}

func (a *App) clampSelection() {
	if n := a.rowCount(); a.selectedIdx >= n {
		a.selectedIdx = max(0, n-1)
	}
}

func (a *App) selectedTask() (models.Task, bool) {
	items := a.snap.Tasks.Items
	if a.selectedIdx < 0 || a.selectedIdx >= len(items) {
		return models.Task{}, false
	}
	return items[a.selectedIdx], true
}

func (a *App) selectedList() (models.WorkspaceList, bool) {
	lists := a.visibleLists()
	if a.selectedIdx < 0 || a.selectedIdx >= len(lists) {
		return models.WorkspaceList{}, false
	}
	return lists[a.selectedIdx], true
}

// listByName resolves an @name reference.
func (a *App) listByName(name string) (models.WorkspaceList, bool) {
	for _, l := range a.snap.Workspace.Lists {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return models.WorkspaceList{}, false
}

// executeCommand runs view commands immediately and returns a tea.Cmd for
// anything that touches storage or the network.
func (a *App) executeCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch cmd {
	case "q", "quit", "exit":
		return tea.Quit

	case "search":
		a.query = rest
		a.mode = modeWorkspace
		a.selectedIdx = 0
		a.message = fmt.Sprintf("%d lists match", len(a.visibleLists()))
		return nil

	case "recent", "all":
		a.filter = cmd
		a.mode = modeWorkspace
		a.selectedIdx = 0
		return nil

	case "whoami":
		if u := a.core.Auth.GetUser(); u != nil {
			a.message = fmt.Sprintf("Signed in as %s (%s)", displayName(u), u.Email)
		} else {
			a.message = "Not signed in. Use 'login <email> <password>'."
		}
		return nil
	}

	a.busy = true
	ctx := context.Background()

	switch cmd {
	case "add":
		return func() tea.Msg {
			task, err := a.core.Tasks.Add(ctx, rest)
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Added: %s", task.Title)}
		}

	case "toggle":
		task, ok := a.selectedTask()
		if !ok || a.mode != modeTodo {
			a.busy = false
			a.message = "No todo selected"
			return nil
		}
		return func() tea.Msg {
			if err := a.core.Tasks.Toggle(ctx, task.ID); err != nil {
				return errMsg{err}
			}
			return commandResultMsg{""}
		}

	case "rm":
		if a.mode == modeWorkspace {
			l, ok := a.selectedList()
			if !ok {
				a.busy = false
				a.message = "No list selected"
				return nil
			}
			a.core.Workspace.DeleteList(l.ID)
			a.busy = false
			a.message = fmt.Sprintf("✓ Deleted list %s", l.Name)
			return nil
		}
		task, ok := a.selectedTask()
		if !ok {
			a.busy = false
			a.message = "No todo selected"
			return nil
		}
		return func() tea.Msg {
			if err := a.core.Tasks.Remove(ctx, task.ID); err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Removed: %s", task.Title)}
		}

	case "list":
		return func() tea.Msg {
			l, err := a.core.Workspace.CreateList(rest, "")
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Created list %s", l.Name)}
		}

	case "paste":
		return func() tea.Msg {
			l, err := a.core.Workspace.ImportText("", rest)
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Imported as %s", l.Name)}
		}

	case "import":
		return func() tea.Msg {
			if rest == "" {
				return commandResultMsg{"Usage: import <path>"}
			}
			l, err := a.core.Workspace.ImportFile(rest)
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Imported %s", l.Name)}
		}

	case "audio", "video":
		recorder := a.audio
		if cmd == "video" {
			recorder = a.video
		}
		listID := ""
		if len(args) > 0 && strings.HasPrefix(args[0], "@") {
			l, ok := a.listByName(strings.TrimPrefix(strings.Join(args, " "), "@"))
			if !ok {
				a.busy = false
				a.message = "Error: no list named " + strings.TrimPrefix(args[0], "@")
				return nil
			}
			listID = l.ID
		} else if a.mode == modeWorkspace {
			if l, ok := a.selectedList(); ok {
				listID = l.ID
			}
		}
		a.message = fmt.Sprintf("● Recording %s...", cmd)
		return func() tea.Msg {
			item, err := a.core.Workspace.Record(ctx, recorder, listID, "")
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Saved %s", item.Title)}
		}

	case "login":
		if len(args) < 2 {
			a.busy = false
			a.message = "Usage: login <email> <password>"
			return nil
		}
		email, password := args[0], args[1]
		return func() tea.Msg {
			u, err := a.core.Auth.Login(ctx, email, password)
			if err != nil {
				return errMsg{err}
			}
			return commandResultMsg{fmt.Sprintf("✓ Signed in as %s", displayName(u))}
		}

	case "logout":
		a.busy = false
		if !a.core.Auth.IsAuthenticated() {
			a.message = "Not signed in"
			return nil
		}
		a.core.Auth.Logout()
		a.message = "✓ Signed out"
		return nil
	}

	a.busy = false
	a.message = fmt.Sprintf("Unknown: %s (type / for commands)", cmd)
	return nil
}

func displayName(u *models.User) string {
	if u.Fullname != "" {
		return u.Fullname
	}
	return u.Email
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder
	color := accent(a.snap.Settings.Theme)

	userStatus := lipgloss.NewStyle().Foreground(mutedColor).Render("○ not signed in")
	if u := a.snap.Auth.User; u != nil {
		userStatus = lipgloss.NewStyle().Foreground(successColor).Render("● " + displayName(u))
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(color).Padding(0, 1).Render("givo")
	header += "  " + a.tabs(color) + "  " + userStatus
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("─", a.width) + "\n")

	contentHeight := a.height - 8
	if contentHeight < 5 {
		contentHeight = 5
	}
	if a.mode == modeTodo {
		b.WriteString(a.renderTodos(contentHeight, color))
	} else {
		label := fmt.Sprintf(" Filter: [%s]", strings.ToUpper(a.filter))
		if a.query != "" {
			label += fmt.Sprintf("  Search: %q", a.query)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(label) + "\n")
		b.WriteString(a.renderLists(contentHeight-1, color))
	}

	if a.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "Error") {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString("\n" + msgStyle.Render(a.message))
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	inputBox := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color).Padding(0, 1)
	b.WriteString(inputBox.Render(a.input.View()))
	if a.suggestions.IsVisible() {
		b.WriteString("\n")
		b.WriteString(a.suggestions.Render(a.width, color))
	}
	b.WriteString("\n")

	var status string
	if a.mode == modeTodo {
		status = fmt.Sprintf(" Todos: %d | ↑↓:nav | Enter:toggle | Tab:workspace | Ctrl+C:quit", len(a.snap.Tasks.Items))
	} else {
		status = fmt.Sprintf(" Lists: %d/%d | ↑↓:nav | search <q> | recent | all | Tab:todos", a.rowCount(), len(a.snap.Workspace.Lists))
	}
	if a.busy {
		status += " | working..."
	}
	b.WriteString(statusBarStyle.Width(a.width).Render(status))

	return b.String()
}

func (a *App) tabs(color lipgloss.Color) string {
	on := lipgloss.NewStyle().Bold(true).Foreground(color)
	off := lipgloss.NewStyle().Foreground(mutedColor)
	if a.mode == modeTodo {
		return on.Render("[Todos]") + " " + off.Render("Workspace")
	}
	return off.Render("Todos") + " " + on.Render("[Workspace]")
}

func (a *App) renderTodos(height int, color lipgloss.Color) string {
	items := a.snap.Tasks.Items
	if len(items) == 0 {
		return "\n  No todos yet. Type: add <title> to create one.\n"
	}

	selected := lipgloss.NewStyle().Background(color).Foreground(fgColor).Bold(true).Padding(0, 2)
	lines := make([]string, 0, len(items))
	for i, t := range items {
		box := "○"
		if t.Completed {
			box = lipgloss.NewStyle().Foreground(successColor).Render("●")
		}
		if i == a.selectedIdx {
			plain := "○"
			if t.Completed {
				plain = "●"
			}
			lines = append(lines, selected.Render(fmt.Sprintf("▶ %s  %s", plain, t.Title)))
		} else {
			lines = append(lines, itemStyle.Render(fmt.Sprintf("  %s  %s", box, t.Title)))
		}
	}
	return strings.Join(window(lines, a.selectedIdx, height), "\n")
}

func (a *App) renderLists(height int, color lipgloss.Color) string {
	lists := a.visibleLists()
	if len(lists) == 0 {
		if len(a.snap.Workspace.Lists) == 0 {
			return "\n  No lists yet. Type: list <name> or paste <text>.\n"
		}
		return "\n  " + helpStyle.Render("Nothing matches. Type: all, or search with an empty query.") + "\n"
	}

	selected := lipgloss.NewStyle().Background(color).Foreground(fgColor).Bold(true).Padding(0, 2)
	lines := make([]string, 0, len(lists))
	for i, l := range lists {
		meta := fmt.Sprintf("%d items · %s", len(l.Items), l.CreatedAt.Local().Format("Jan 2"))
		if i == a.selectedIdx {
			lines = append(lines, selected.Render(fmt.Sprintf("▶ %s  (%s)", l.Name, meta)))
		} else {
			lines = append(lines, itemStyle.Render(fmt.Sprintf("  %s  %s", l.Name, helpStyle.Render(meta))))
		}
	}
	return strings.Join(window(lines, a.selectedIdx, height), "\n")
}

// window limits lines to height rows around selected.
func window(lines []string, selected, height int) []string {
	if len(lines) <= height {
		return lines
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
		start = max(0, end-height)
	}
	return lines[start:end]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type stateChangedMsg struct{}

type commandResultMsg struct {
	message string
}

type errMsg struct {
	err error
}
