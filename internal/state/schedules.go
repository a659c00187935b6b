package state

import "github.com/fentz26/givo/internal/models"

// SchedulesState is the calendar domain, in insertion order.
type SchedulesState struct {
	Items []models.Schedule `json:"items"`
}

// AddSchedule appends Schedule.
type AddSchedule struct{ Schedule models.Schedule }

// DeleteSchedule removes the schedule with ID.
type DeleteSchedule struct{ ID string }

func (AddSchedule) Type() string    { return "schedule/addSchedule" }
func (DeleteSchedule) Type() string { return "schedule/deleteSchedule" }

// FindSchedule returns the schedule with id, if present.
func (s SchedulesState) FindSchedule(id string) (models.Schedule, bool) {
	for _, sc := range s.Items {
		if sc.ID == id {
			return sc, true
		}
	}
	return models.Schedule{}, false
}

func reduceSchedules(s SchedulesState, a Action) SchedulesState {
	switch a := a.(type) {
	case AddSchedule:
		if a.Schedule.ID == "" {
			return s
		}
		items := make([]models.Schedule, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		items = append(items, a.Schedule)
		return SchedulesState{Items: items}

	case DeleteSchedule:
		items := make([]models.Schedule, 0, len(s.Items))
		for _, sc := range s.Items {
			if sc.ID != a.ID {
				items = append(items, sc)
			}
		}
		return SchedulesState{Items: items}
	}
	return s
}
