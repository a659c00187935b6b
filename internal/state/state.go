// Package state holds the in-memory application state: a single store whose
// snapshot is split into the todo, auth, workspace, schedule and settings
// domains.
package state

import (
	"sync"

	"github.com/fentz26/givo/internal/models"
)

// TasksState is the todo domain.
type TasksState struct {
	Items []models.Task `json:"items"`
}

// AuthState is the authenticated user domain. Token is empty when signed out.
type AuthState struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// WorkspaceState is the workspace lists domain, newest first.
type WorkspaceState struct {
	Lists []models.WorkspaceList `json:"lists"`
}

// State is the whole application snapshot.
type State struct {
	Tasks     TasksState      `json:"todo"`
	Auth      AuthState       `json:"auth"`
	Workspace WorkspaceState  `json:"workspace"`
	Schedules SchedulesState  `json:"schedules"`
	Settings  models.Settings `json:"settings"`
}

// DefaultState returns every domain's initial state.
func DefaultState() State {
	return State{
		Tasks:     TasksState{Items: []models.Task{}},
		Auth:      AuthState{},
		Workspace: WorkspaceState{Lists: []models.WorkspaceList{}},
		Schedules: SchedulesState{Items: []models.Schedule{}},
		Settings:  models.DefaultSettings(),
	}
}

// Action is a request to change state. Reducers ignore actions they do not know.
type Action interface {
	Type() string
}

// Listener is called with the committed state after every dispatch.
type Listener func(State)

// Reduce applies a to s and returns the next snapshot. It never mutates s.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return State{
		Tasks:     reduceTasks(s.Tasks, a),
		Auth:      reduceAuth(s.Auth, a),
		Workspace: reduceWorkspace(s.Workspace, a),
		Schedules: reduceSchedules(s.Schedules, a),
		Settings:  reduceSettings(s.Settings, a),
	}
}

// Store owns the current snapshot and its subscribers.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New creates a store seeded with initial.
func New(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// GetState returns the current snapshot.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces a into a new snapshot and notifies subscribers.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
