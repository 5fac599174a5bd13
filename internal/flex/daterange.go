// Package flex computes expected working hours and flex balances over date ranges.
package flex

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for arguments and the Harvest API.
const DateLayout = "2006-01-02"

// DateRange is a span of calendar days. End is exclusive when counting weekdays.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range in "start - end" form.
func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// Day truncates t to its calendar date at UTC midnight, keeping the
// year, month and day as seen in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a zero-padded YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (expected YYYY-MM-DD): %v", ErrInvalidDate, s, err)
	}
	return parsed, nil
}

// StartOfYear returns January 1 of the year containing t.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ResolveRange derives the reporting range from optional start and end
// arguments. Empty strings mean "not supplied". A future end date is
// clamped to today, and a start date after the end date (or in the future)
// falls back to January 1 of today's year (of the end date's year if that
// is earlier). Each adjustment is reported as a notice for the caller to
// print.
func ResolveRange(startArg, endArg string, today time.Time) (DateRange, []string, error) {
	today = Day(today)
	var notices []string

	end := today
	if endArg != "" {
		parsed, err := ParseDate(endArg)
		if err != nil {
			return DateRange{}, nil, fmt.Errorf("end date: %w", err)
		}
		if parsed.After(today) {
			notices = append(notices, "Changing end date to today, as provided date is in the future.")
		} else {
			end = parsed
		}
	}

	// Jan 1 of the current year, or of the end date's year when the end
	// date lies in an earlier year.
	start := StartOfYear(today)
	if start.After(end) {
		start = StartOfYear(end)
	}
	if startArg != "" {
		parsed, err := ParseDate(startArg)
		if err != nil {
			return DateRange{}, nil, fmt.Errorf("start date: %w", err)
		}
		if parsed.After(today) || parsed.After(end) {
			notices = append(notices, fmt.Sprintf(
				"Changing start date to %s, as provided date is after the end date.",
				start.Format(DateLayout)))
		} else {
			start = parsed
		}
	}

	return DateRange{Start: start, End: end}, notices, nil
}
