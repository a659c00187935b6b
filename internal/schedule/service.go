// Package schedule manages timed calendar entries: meetings, events and
// holidays. Entries live in the state container and persist with the snapshot.
package schedule

import (
	"strings"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
	"github.com/google/uuid"
)

// DefaultColor is used when a draft has no color.
const DefaultColor = "#d80505ff"

// Draft is the user input for a new schedule.
type Draft struct {
	Name          string
	Start         time.Time
	End           time.Time
	Tag           models.ScheduleTag
	LocationType  models.LocationType
	LocationLabel string
	LocationURL   string
	Color         string
	Notes         string
}

// Service validates schedule input and dispatches the matching actions.
type Service struct {
	state *state.Store
	now   func() time.Time
	newID func() string
}

// NewService creates a schedule service over st.
func NewService(st *state.Store) *Service {
	return &Service{
		state: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Schedules returns every schedule in insertion order.
func (s *Service) Schedules() []models.Schedule {
	return s.state.GetState().Schedules.Items
}

// Get returns the schedule with id.
func (s *Service) Get(id string) (models.Schedule, bool) {
	return s.state.GetState().Schedules.FindSchedule(id)
}

// Search filters and sorts the current schedules.
func (s *Service) Search(q Query) []models.Schedule {
	return Filter(s.Schedules(), q)
}

// Create validates d and stores it. Tag defaults to meeting, location type to
// online and color to DefaultColor.
func (s *Service) Create(d Draft) (models.Schedule, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return models.Schedule{}, apperr.Validation("schedule name is required")
	}
	if d.Start.IsZero() || d.End.IsZero() || !d.Start.Before(d.End) {
		return models.Schedule{}, apperr.Validation("start must be before end")
	}

	tag := d.Tag
	if tag == "" {
		tag = models.TagMeeting
	}
	if !tag.Valid() {
		return models.Schedule{}, apperr.Validation("unknown tag %q", tag)
	}
	loc := d.LocationType
	if loc == "" {
		loc = models.LocationOnline
	}
	if !loc.Valid() {
		return models.Schedule{}, apperr.Validation("unknown location type %q", loc)
	}
	url := strings.TrimSpace(d.LocationURL)
	if loc != models.LocationOnline {
		url = ""
	}
	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = DefaultColor
	}

	sc := models.Schedule{
		ID:            s.newID(),
		Name:          name,
		Start:         d.Start.UTC(),
		End:           d.End.UTC(),
		LocationType:  loc,
		LocationLabel: strings.TrimSpace(d.LocationLabel),
		LocationURL:   url,
		Tag:           tag,
		Color:         color,
		Notes:         strings.TrimSpace(d.Notes),
		CreatedAt:     s.now().UTC(),
	}
	s.state.Dispatch(state.AddSchedule{Schedule: sc})
	return sc, nil
}

// Delete removes the schedule with id.
func (s *Service) Delete(id string) error {
	if _, ok := s.Get(id); !ok {
		return apperr.Validation("no schedule with id %s", id)
	}
	s.state.Dispatch(state.DeleteSchedule{ID: id})
	return nil
}
