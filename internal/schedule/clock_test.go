package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	min, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	min, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, min)
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err := ParseClock(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, "8h 30m", Elapsed("09:00", "17:30"))
	assert.Equal(t, "0h 0m", Elapsed("09:00", "09:00"))
	assert.Equal(t, "0h 45m", Elapsed("11:15", "12:00"))
}

func TestElapsedMidnightWrap(t *testing.T) {
	assert.Equal(t, "8h 0m", Elapsed("22:00", "06:00"))
	assert.Equal(t, "23h 59m", Elapsed("00:01", "00:00"))
}

func TestElapsedEmptyInput(t *testing.T) {
	assert.Equal(t, "", Elapsed("", "10:00"))
	assert.Equal(t, "", Elapsed("10:00", ""))
	assert.Equal(t, "", Elapsed("", ""))
}

func TestSumDurations(t *testing.T) {
	assert.Equal(t, "10h 15m", SumDurations([]string{"8h 30m", "1h 45m", "bad"}))
	assert.Equal(t, "0h 0m", SumDurations(nil))
	assert.Equal(t, "0h 0m", SumDurations([]string{"", "nope"}))
}

func TestSumDurationsHoursUnbounded(t *testing.T) {
	values := []string{"9h 0m", "9h 30m", "8h 45m"}
	assert.Equal(t, "27h 15m", SumDurations(values))
}
