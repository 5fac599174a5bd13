package flex

import "time"

// DefaultHoursPerDay is the working day length used when none is configured.
const DefaultHoursPerDay = 7.5

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// CountWeekdays counts Monday–Friday days in [start, end).
func CountWeekdays(start, end time.Time) int {
	start, end = Day(start), Day(end)

	count := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			count++
		}
	}
	return count
}

// ExpectedHours returns the weekday count of [start, end) times hoursPerDay.
func ExpectedHours(start, end time.Time, hoursPerDay float64) float64 {
	return float64(CountWeekdays(start, end)) * hoursPerDay
}
