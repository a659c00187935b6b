package state

import (
	"time"

	"github.com/fentz26/givo/internal/models"
)

const (
	importDescriptionLimit = 200
	importItemTitleLimit   = 140
)

// AddList inserts a list at the head.
type AddList struct{ List models.WorkspaceList }

// ListPatch holds the fields UpdateList may change. Nil fields are left alone.
type ListPatch struct {
	Name        *string
	Description *string
	Owner       *string
	Items       []models.WorkspaceItem
}

// UpdateList merges Patch into the list with ID.
type UpdateList struct {
	ID    string
	Patch ListPatch
}

// DeleteList removes the whole list with ID.
type DeleteList struct{ ID string }

// ImportTextAsList builds a list with a single seed item from raw text.
type ImportTextAsList struct {
	ID        string
	Name      string
	Content   string
	Owner     string
	CreatedAt time.Time
}

// AddMediaToList prepends Item to the list with ListID. With an empty ListID
// a new "Media" list holding only Item is created.
type AddMediaToList struct {
	ListID    string
	Item      models.WorkspaceItem
	CreatedAt time.Time
}

func (AddList) Type() string          { return "workspace/addList" }
func (UpdateList) Type() string       { return "workspace/updateList" }
func (DeleteList) Type() string       { return "workspace/deleteList" }
func (ImportTextAsList) Type() string { return "workspace/importTextAsList" }
func (AddMediaToList) Type() string   { return "workspace/addMediaToList" }

// FindList returns the list with id, if present.
func (s WorkspaceState) FindList(id string) (models.WorkspaceList, bool) {
	for _, l := range s.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return models.WorkspaceList{}, false
}

func reduceWorkspace(s WorkspaceState, a Action) WorkspaceState {
	switch a := a.(type) {
	case AddList:
		if a.List.ID == "" {
			return s
		}
		list := a.List
		list.Items = copyItems(list.Items)
		return WorkspaceState{Lists: prependList(s.Lists, list)}

	case UpdateList:
		return updateList(s, a.ID, func(l models.WorkspaceList) models.WorkspaceList {
			if a.Patch.Name != nil {
				l.Name = *a.Patch.Name
			}
			if a.Patch.Description != nil {
				l.Description = *a.Patch.Description
			}
			if a.Patch.Owner != nil {
				l.Owner = *a.Patch.Owner
			}
			if a.Patch.Items != nil {
				l.Items = copyItems(a.Patch.Items)
			}
			return l
		})

	case DeleteList:
		if _, ok := s.FindList(a.ID); !ok {
			return s
		}
		lists := make([]models.WorkspaceList, 0, len(s.Lists))
		for _, l := range s.Lists {
			if l.ID != a.ID {
				lists = append(lists, l)
			}
		}
		return WorkspaceState{Lists: lists}

	case ImportTextAsList:
		if a.ID == "" {
			return s
		}
		createdAt := a.CreatedAt.UTC()
		list := models.WorkspaceList{
			ID:          a.ID,
			Name:        a.Name,
			Description: truncateRunes(a.Content, importDescriptionLimit),
			CreatedAt:   createdAt,
			Owner:       a.Owner,
			Items: []models.WorkspaceItem{{
				ID:        a.ID + "-item-1",
				Title:     truncateRunes(a.Content, importItemTitleLimit),
				CreatedAt: createdAt,
				Owner:     a.Owner,
			}},
		}
		return WorkspaceState{Lists: prependList(s.Lists, list)}

	case AddMediaToList:
		if a.Item.ID == "" {
			return s
		}
		if a.ListID != "" {
			return updateList(s, a.ListID, func(l models.WorkspaceList) models.WorkspaceList {
				items := make([]models.WorkspaceItem, 0, len(l.Items)+1)
				items = append(items, a.Item)
				l.Items = append(items, l.Items...)
				return l
			})
		}
		list := models.WorkspaceList{
			ID:          a.Item.ID + "-list",
			Name:        "Media",
			Description: "Imported media",
			CreatedAt:   a.CreatedAt.UTC(),
			Owner:       a.Item.Owner,
			Items:       []models.WorkspaceItem{a.Item},
		}
		return WorkspaceState{Lists: prependList(s.Lists, list)}
	}
	return s
}

func updateList(s WorkspaceState, id string, fn func(models.WorkspaceList) models.WorkspaceList) WorkspaceState {
	for i, l := range s.Lists {
		if l.ID != id {
			continue
		}
		lists := make([]models.WorkspaceList, len(s.Lists))
		copy(lists, s.Lists)
		lists[i] = fn(l)
		if lists[i].Items == nil {
			lists[i].Items = []models.WorkspaceItem{}
		}
		return WorkspaceState{Lists: lists}
	}
	return s
}

func prependList(lists []models.WorkspaceList, l models.WorkspaceList) []models.WorkspaceList {
	out := make([]models.WorkspaceList, 0, len(lists)+1)
	out = append(out, l)
	return append(out, lists...)
}

func copyItems(items []models.WorkspaceItem) []models.WorkspaceItem {
	out := make([]models.WorkspaceItem, len(items))
	copy(out, items)
	return out
}

// truncateRunes returns at most n characters of s.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
