package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartReturnsSunday(t *testing.T) {
	// 2024-06-12 is a Wednesday; its week starts Sunday 2024-06-09
	start := WeekStart(day("2024-06-12"))
	assert.Equal(t, "2024-06-09", FormatDate(start))
	assert.Equal(t, time.Sunday, start.Weekday())

	// a Sunday is its own week start
	start = WeekStart(day("2024-06-09"))
	assert.Equal(t, "2024-06-09", FormatDate(start))
}

func TestWeekDatesFixedGrid(t *testing.T) {
	dates := WeekDates(day("2024-06-09"))
	require.Len(t, dates, 7)
	assert.Equal(t, "2024-06-09", dates[0])
	assert.Equal(t, "2024-06-15", dates[6])
}

func TestIsWeekday(t *testing.T) {
	assert.False(t, IsWeekday(day("2024-06-15"))) // Saturday
	assert.False(t, IsWeekday(day("2024-06-16"))) // Sunday
	assert.True(t, IsWeekday(day("2024-06-14")))  // Friday
	assert.True(t, IsWeekday(day("2024-06-10")))  // Monday
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(parsed))

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}
