package models

import "time"

// EventStatus represents the lifecycle state of a scheduled event.
type EventStatus string

const (
	EventStatusScheduled   EventStatus = "scheduled"
	EventStatusCompleted   EventStatus = "completed"
	EventStatusCancelled   EventStatus = "cancelled"
	EventStatusRescheduled EventStatus = "rescheduled"
)

// Valid returns true when the status is a supported value.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled, EventStatusRescheduled:
		return true
	default:
		return false
	}
}

// Event represents a schedulable calendar item. Times are wall-clock
// HH:MM strings within the event's date; events never cross midnight.
type Event struct {
	ID              string      `db:"id" json:"id"`
	Title           string      `db:"title" json:"title"`
	Description     string      `db:"description" json:"description"`
	Person          string      `db:"person" json:"person"`
	Location        string      `db:"location" json:"location"`
	Notes           string      `db:"notes" json:"notes"`
	Date            time.Time   `db:"date" json:"date"`
	StartTime       string      `db:"start_time" json:"start_time"`
	EndTime         string      `db:"end_time" json:"end_time"`
	Status          EventStatus `db:"status" json:"status"`
	OriginalEventID *string     `db:"original_event_id" json:"original_event_id,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// SameDay reports whether the event falls on the given calendar day.
func (e Event) SameDay(t time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EventFilter narrows down event listings.
type EventFilter struct {
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *EventStatus
	Page     int
	PageSize int
}

// EventStats summarises the calendar for the dashboard header.
type EventStats struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
}
