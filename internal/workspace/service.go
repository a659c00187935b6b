// Package workspace manages note and media lists and derives filtered views
// of them. Lists live only in the state container; they are persisted by the
// snapshot mechanism, not by the todos table.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/media"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/google/uuid"
)

// DefaultImportName names imports that arrive without one.
const DefaultImportName = "Imported"

// Service validates workspace input and dispatches the matching actions.
type Service struct {
	state *state.Store
	owner string
	now   func() time.Time
	newID func() string
}

// NewService creates a workspace service. Lists created through it are owned
// by owner.
func NewService(st *state.Store, owner string) *Service {
	if owner == "" {
		owner = "me"
	}
	return &Service{
		state: st,
		owner: owner,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Lists returns the current lists, newest first.
func (s *Service) Lists() []models.WorkspaceList {
	return s.state.GetState().Workspace.Lists
}

// Get returns the list with id.
func (s *Service) Get(id string) (models.WorkspaceList, bool) {
	return s.state.GetState().Workspace.FindList(id)
}

// Search filters the current lists.
func (s *Service) Search(q Query) []models.WorkspaceList {
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	return Filter(s.Lists(), q)
}

// CreateList adds an empty list.
func (s *Service) CreateList(name, description string) (models.WorkspaceList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.WorkspaceList{}, apperr.Validation("list name is required")
	}
	list := models.WorkspaceList{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
		Owner:       s.owner,
		Items:       []models.WorkspaceItem{},
	}
	s.state.Dispatch(state.AddList{List: list})
	return list, nil
}

// ImportText turns free text into a new list with a single seed item.
func (s *Service) ImportText(name, content string) (models.WorkspaceList, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.WorkspaceList{}, apperr.Validation("nothing to import")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultImportName
	}

	id := s.newID()
	s.state.Dispatch(state.ImportTextAsList{
		ID:        id,
		Name:      name,
		Content:   content,
		Owner:     s.owner,
		CreatedAt: s.now(),
	})
	list, _ := s.Get(id)
	return list, nil
}

// ImportFile reads a text file and imports it under the file's name.
func (s *Service) ImportFile(path string) (models.WorkspaceList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.WorkspaceList{}, fmt.Errorf("%w: read %s: %w", apperr.ErrStorageRead, path, err)
	}
	return s.ImportText(filepath.Base(path), string(b))
}

// Record captures media with r and stores it via AddMedia.
func (s *Service) Record(ctx context.Context, r media.Recorder, listID, title string) (models.WorkspaceItem, error) {
	rec, err := r.Record(ctx)
	if err != nil {
		return models.WorkspaceItem{}, err
	}
	return s.AddMedia(listID, rec, title)
}

// AddMedia stores a recording as an item. With an empty listID a new
// "Media" list is created for it.
func (s *Service) AddMedia(listID string, rec media.Recording, title string) (models.WorkspaceItem, error) {
	if rec.URI == "" {
		return models.WorkspaceItem{}, apperr.Validation("recording has no uri")
	}
	if listID != "" {
		if _, ok := s.Get(listID); !ok {
			return models.WorkspaceItem{}, apperr.Validation("no list with id %s", listID)
		}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = rec.Title()
	}

	now := s.now().UTC()
	item := models.WorkspaceItem{
		ID:          s.newID(),
		Title:       title,
		CreatedAt:   now,
		Owner:       s.owner,
		Description: rec.URI,
		Tags:        []string{string(rec.Kind)},
	}
	s.state.Dispatch(state.AddMediaToList{ListID: listID, Item: item, CreatedAt: now})
	return item, nil
}

// Rename changes a list's name.
func (s *Service) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("list name is required")
	}
	if _, ok := s.Get(id); !ok {
		return apperr.Validation("no list with id %s", id)
	}
	s.state.Dispatch(state.UpdateList{ID: id, Patch: state.ListPatch{Name: &name}})
	return nil
}

// DeleteList removes a whole list. Unknown ids are ignored.
func (s *Service) DeleteList(id string) {
	s.state.Dispatch(state.DeleteList{ID: id})
}
