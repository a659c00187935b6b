package state

import (
	"time"

	"github.com/fentz26/givo/internal/models"
)

// AddTask inserts a new, not yet completed task at the head of the list.
type AddTask struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// ToggleTask flips the completion flag of the task with ID.
type ToggleTask struct{ ID string }

// RemoveTask drops the task with ID.
type RemoveTask struct{ ID string }

// ReplaceTasks overwrites the whole todo list, e.g. after loading from disk.
type ReplaceTasks struct{ Items []models.Task }

func (AddTask) Type() string      { return "todo/addTodo" }
func (ToggleTask) Type() string   { return "todo/toggleTodo" }
func (RemoveTask) Type() string   { return "todo/removeTodo" }
func (ReplaceTasks) Type() string { return "todo/setTodos" }

// FindTask returns the task with id, if present.
func (s TasksState) FindTask(id string) (models.Task, bool) {
	for _, t := range s.Items {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func reduceTasks(s TasksState, a Action) TasksState {
	switch a := a.(type) {
	case AddTask:
		if a.ID == "" || a.Title == "" {
			return s
		}
		items := make([]models.Task, 0, len(s.Items)+1)
		items = append(items, models.Task{
			ID:        a.ID,
			Title:     a.Title,
			Completed: false,
			CreatedAt: a.CreatedAt.UTC(),
		})
		items = append(items, s.Items...)
		return TasksState{Items: items}

	case ToggleTask:
		idx := -1
		for i, t := range s.Items {
			if t.ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		items := make([]models.Task, len(s.Items))
		copy(items, s.Items)
		items[idx].Completed = !items[idx].Completed
		return TasksState{Items: items}

	case RemoveTask:
		if _, ok := s.FindTask(a.ID); !ok {
			return s
		}
		items := make([]models.Task, 0, len(s.Items))
		for _, t := range s.Items {
			if t.ID != a.ID {
				items = append(items, t)
			}
		}
		return TasksState{Items: items}

	case ReplaceTasks:
		items := make([]models.Task, len(a.Items))
		copy(items, a.Items)
		return TasksState{Items: items}
	}
	return s
}
