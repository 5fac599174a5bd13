package flex

import (
	"fmt"
	"math"
	"time"
)

// TimeEntry is a single logged record from the time-tracking service.
// Both fields are optional on the wire.
type TimeEntry struct {
	ID        int64
	SpentDate *time.Time
	Hours     *float64
}

// Balance is the outcome of comparing logged hours against expected hours.
type Balance struct {
	Range DateRange

	// CountedEnd is the exclusive end used for weekday counting. It is one
	// day past Range.End when an entry was logged on Range.End.
	CountedEnd time.Time

	Weekdays    int
	HoursPerDay float64
	Expected    float64
	Actual      float64
	Flex        float64
	EntryCount  int
}

// Above reports whether the balance is zero or positive when rounded to
// hundredths of an hour, the precision it is printed with.
func (b Balance) Above() bool {
	return math.Round(b.Flex*100) >= 0
}

// Compute sums the logged hours in entries and compares them with the
// expected hours for rng. If any entry is dated on rng.End the end day is
// counted as well, so a day that has already been logged is expected too.
// An entry without hours fails with ErrIncompleteEntry.
func Compute(rng DateRange, entries []TimeEntry, hoursPerDay float64) (Balance, error) {
	countedEnd := rng.End
	var actual float64

	for i, e := range entries {
		if e.Hours == nil {
			return Balance{}, fmt.Errorf("entry %d (id %d): %w", i, e.ID, ErrIncompleteEntry)
		}
		actual += *e.Hours

		if e.SpentDate != nil && Day(*e.SpentDate).Equal(rng.End) {
			countedEnd = rng.End.AddDate(0, 0, 1)
		}
	}

	weekdays := CountWeekdays(rng.Start, countedEnd)
	expected := ExpectedHours(rng.Start, countedEnd, hoursPerDay)

	return Balance{
		Range:       rng,
		CountedEnd:  countedEnd,
		Weekdays:    weekdays,
		HoursPerDay: hoursPerDay,
		Expected:    expected,
		Actual:      actual,
		Flex:        actual - expected,
		EntryCount:  len(entries),
	}, nil
}
