// Package schedule holds the pure scheduling rules of the dashboard:
// clock arithmetic, conflict detection and calendar partitioning. It
// operates on plain in-memory collections and never touches storage.
package schedule

import (
	"sort"
	"time"

	"github.com/prakasam-dev/daybook-api/internal/models"
)

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. A range ending exactly when another starts does not
// overlap. Arguments are minutes of day.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// SortByStart orders events by parsed start time, keeping the stored
// order for equal or unparsable times.
func SortByStart(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, errA := ParseClock(events[i].StartTime)
		b, errB := ParseClock(events[j].StartTime)
		if errA != nil || errB != nil {
			return false
		}
		return a < b
	})
}

// FindConflicts returns the events that would collide with the given
// time range on the target date, preserving their relative order.
// The event identified by excludeID and cancelled events are never
// conflicts. Events whose times fail to parse are skipped.
func FindConflicts(events []models.Event, excludeID string, date time.Time, startMin, endMin int) []models.Event {
	var conflicts []models.Event
	for _, e := range events {
		if e.ID == excludeID || e.Status == models.EventStatusCancelled {
			continue
		}
		if !e.SameDay(date) {
			continue
		}
		s, err := ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(startMin, endMin, s, end) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}
