package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam-dev/daybook-api/internal/models"
)

func day(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func testEvent(id, date, start, end string, status models.EventStatus) models.Event {
	return models.Event{
		ID:        id,
		Title:     "event " + id,
		Date:      day(date),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	// touching endpoints never conflict
	assert.False(t, Overlaps(540, 600, 600, 660))
	assert.False(t, Overlaps(600, 660, 540, 600))

	assert.True(t, Overlaps(540, 601, 600, 660))
	assert.True(t, Overlaps(540, 660, 570, 590)) // containment
	assert.True(t, Overlaps(570, 590, 540, 660))
	assert.False(t, Overlaps(540, 560, 600, 660))
}

func TestSortByStartOrdersEvents(t *testing.T) {
	events := []models.Event{
		testEvent("late", "2024-06-10", "14:00", "15:00", models.EventStatusScheduled),
		testEvent("early", "2024-06-10", "09:00", "09:30", models.EventStatusScheduled),
		testEvent("mid", "2024-06-10", "11:00", "12:00", models.EventStatusScheduled),
	}
	SortByStart(events)
	assert.Equal(t, "early", events[0].ID)
	assert.Equal(t, "mid", events[1].ID)
	assert.Equal(t, "late", events[2].ID)
}

func TestSortByStartStableOnTies(t *testing.T) {
	events := []models.Event{
		testEvent("first", "2024-06-10", "09:00", "10:00", models.EventStatusScheduled),
		testEvent("second", "2024-06-10", "09:00", "11:00", models.EventStatusScheduled),
	}
	SortByStart(events)
	assert.Equal(t, "first", events[0].ID)
	assert.Equal(t, "second", events[1].ID)
}

func TestFindConflictsSameDayOnly(t *testing.T) {
	events := []models.Event{
		testEvent("a", "2024-06-10", "09:00", "10:00", models.EventStatusScheduled),
		testEvent("b", "2024-06-11", "09:00", "10:00", models.EventStatusScheduled),
	}
	conflicts := FindConflicts(events, "x", day("2024-06-10"), 570, 630)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "a", conflicts[0].ID)
}

func TestFindConflictsExcludesSelfAndCancelled(t *testing.T) {
	events := []models.Event{
		testEvent("self", "2024-06-10", "09:00", "10:00", models.EventStatusScheduled),
		testEvent("cancelled", "2024-06-10", "09:00", "10:00", models.EventStatusCancelled),
		testEvent("other", "2024-06-10", "09:30", "10:30", models.EventStatusScheduled),
	}
	conflicts := FindConflicts(events, "self", day("2024-06-10"), 540, 600)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "other", conflicts[0].ID)
}

func TestFindConflictsTouchingEndpointsAllowed(t *testing.T) {
	events := []models.Event{
		testEvent("before", "2024-06-10", "08:00", "09:00", models.EventStatusScheduled),
		testEvent("after", "2024-06-10", "10:00", "11:00", models.EventStatusScheduled),
	}
	// candidate 09:00-10:00 touches both, conflicts with neither
	conflicts := FindConflicts(events, "x", day("2024-06-10"), 540, 600)
	assert.Empty(t, conflicts)
}

func TestFindConflictsPreservesOrder(t *testing.T) {
	events := []models.Event{
		testEvent("late", "2024-06-10", "11:00", "12:00", models.EventStatusScheduled),
		testEvent("early", "2024-06-10", "09:00", "10:00", models.EventStatusScheduled),
	}
	conflicts := FindConflicts(events, "x", day("2024-06-10"), 540, 720)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "late", conflicts[0].ID)
	assert.Equal(t, "early", conflicts[1].ID)
}

func TestFindConflictsSkipsUnparseableTimes(t *testing.T) {
	events := []models.Event{
		testEvent("bad", "2024-06-10", "9am", "10am", models.EventStatusScheduled),
		testEvent("good", "2024-06-10", "09:00", "10:00", models.EventStatusScheduled),
	}
	conflicts := FindConflicts(events, "x", day("2024-06-10"), 540, 600)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "good", conflicts[0].ID)
}
