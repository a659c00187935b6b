// Package tasksync keeps the durable todos table and the in-memory todo
// domain consistent. Every mutation is written to the table first and only
// applied in memory once the write succeeded.
package tasksync

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/google/uuid"
)

// RecordStore is the durable side of the todo domain.
type RecordStore interface {
	Initialize(ctx context.Context) error
	ListAll(ctx context.Context) ([]models.TaskRecord, error)
	Insert(ctx context.Context, rec models.TaskRecord) error
	SetCompletion(ctx context.Context, id string, completed int) error
	Delete(ctx context.Context, id string) error
}

// Service provides the todo operations used by screens and commands.
type Service struct {
	records RecordStore
	state   *state.Store
	logger  *log.Logger
	newID   func() string
	now     func() time.Time

	// mu serialises mutations so a read-write-apply sequence is never interleaved.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for soft failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// NewService creates a new sync service.
func NewService(records RecordStore, st *state.Store, opts ...Option) *Service {
	s := &Service{
		records: records,
		state:   st,
		logger:  log.Default(),
		newID:   NewID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a time-ordered unique id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load initializes the table and replaces the in-memory todos with its
// contents. On failure the current in-memory todos are kept and the error is
// returned for display; it is not fatal.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.records.Initialize(ctx); err != nil {
		s.logger.Printf("tasksync: init failed, keeping restored todos: %v", err)
		return err
	}
	records, err := s.records.ListAll(ctx)
	if err != nil {
		s.logger.Printf("tasksync: load failed, keeping restored todos: %v", err)
		return err
	}

	items := make([]models.Task, 0, len(records))
	for _, rec := range records {
		task, err := rec.Task()
		if err != nil {
			s.logger.Printf("tasksync: skipping todo %s with bad timestamp %q: %v", rec.ID, rec.CreatedAt, err)
			continue
		}
		items = append(items, task)
	}
	s.state.Dispatch(state.ReplaceTasks{Items: items})
	return nil
}

// Add creates a todo titled title.
func (s *Service) Add(ctx context.Context, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, apperr.Validation("title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	write := func(ctx context.Context) error {
		return s.records.Insert(ctx, task.Record())
	}
	if err := s.commit(ctx, write, state.AddTask{ID: task.ID, Title: task.Title, CreatedAt: task.CreatedAt}); err != nil {
		return models.Task{}, fmt.Errorf("add todo: %w", err)
	}
	return task, nil
}

// Toggle flips the completion flag of id. Ids unknown in memory are ignored.
func (s *Service) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.state.GetState().Tasks.FindTask(id)
	if !ok {
		return nil
	}
	completed := models.CompletionFlag(!task.Completed)
	write := func(ctx context.Context) error {
		return s.records.SetCompletion(ctx, id, completed)
	}
	if err := s.commit(ctx, write, state.ToggleTask{ID: id}); err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	return nil
}

// Remove deletes id from the table, then from memory.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	write := func(ctx context.Context) error {
		return s.records.Delete(ctx, id)
	}
	if err := s.commit(ctx, write, state.RemoveTask{ID: id}); err != nil {
		return fmt.Errorf("remove todo: %w", err)
	}
	return nil
}

// Tasks returns the in-memory todos.
func (s *Service) Tasks() []models.Task {
	return s.state.GetState().Tasks.Items
}

// commit runs the durable write and, only if it succeeded, dispatches apply.
// Callers must hold s.mu.
func (s *Service) commit(ctx context.Context, write func(context.Context) error, apply state.Action) error {
	if err := write(ctx); err != nil {
		s.logger.Printf("tasksync: %s not applied: %v", apply.Type(), err)
		return err
	}
	s.state.Dispatch(apply)
	return nil
}
