package schedule

import "time"

const dateLayout = "2006-01-02"

// WeekStart returns local midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekDates returns the seven YYYY-MM-DD keys of the week beginning at
// start. The grid is always full; callers map missing records to empty
// entries rather than dropping the date.
func WeekDates(start time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates
}

// IsWeekday reports whether t falls Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// FormatDate renders t with the date key layout used across the
// dashboard's collections.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD date key in local time.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.Local)
}
