package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseClock converts an HH:MM 24-hour string to minutes of day.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", value)
	}
	return hours*60 + minutes, nil
}

// Elapsed computes the duration between a check-in and check-out
// time-of-day as "Xh Ym". Empty input on either side yields "".
// A check-out numerically before the check-in is treated as crossing
// midnight exactly once; spans longer than a day are not representable.
func Elapsed(checkIn, checkOut string) string {
	if checkIn == "" || checkOut == "" {
		return ""
	}
	start, err := ParseClock(checkIn)
	if err != nil {
		return ""
	}
	end, err := ParseClock(checkOut)
	if err != nil {
		return ""
	}
	diff := end - start
	if diff < 0 {
		diff += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", diff/60, diff%60)
}

var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)m`)

// SumDurations totals a collection of "Xh Ym" strings and re-expresses
// the sum in the same format. Empty or non-matching entries contribute
// zero; hours in the result may exceed 23.
func SumDurations(values []string) string {
	total := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		match := durationPattern.FindStringSubmatch(v)
		if match == nil {
			continue
		}
		hours, _ := strconv.Atoi(match[1])
		minutes, _ := strconv.Atoi(match[2])
		total += hours*60 + minutes
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
