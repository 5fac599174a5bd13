package flex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRangeDefaultsToYearToDate(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("", "", today)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, date(2024, time.January, 1), rng.Start)
	assert.Equal(t, today, rng.End)
}

func TestResolveRangeUsesSuppliedDates(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("2024-02-01", "2024-02-29", today)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, date(2024, time.February, 1), rng.Start)
	assert.Equal(t, date(2024, time.February, 29), rng.End)
}

func TestResolveRangeClampsFutureEnd(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("2024-03-01", "2024-12-31", today)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "end date to today")
	assert.Equal(t, today, rng.End)
	assert.Equal(t, date(2024, time.March, 1), rng.Start)
}

func TestResolveRangeResetsStartAfterEnd(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("2024-03-10", "2024-03-05", today)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "2024-01-01")
	assert.Equal(t, date(2024, time.January, 1), rng.Start)
	assert.Equal(t, date(2024, time.March, 5), rng.End)
}

func TestResolveRangeResetsFutureStart(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("2024-04-01", "", today)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, date(2024, time.January, 1), rng.Start)
	assert.Equal(t, today, rng.End)
}

func TestResolveRangeEndInEarlierYear(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("", "2023-06-30", today)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, date(2023, time.January, 1), rng.Start)
	assert.Equal(t, date(2023, time.June, 30), rng.End)
}

func TestResolveRangeSameDay(t *testing.T) {
	today := date(2024, time.March, 15)

	rng, notices, err := ResolveRange("2024-03-15", "2024-03-15", today)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, today, rng.Start)
	assert.Equal(t, today, rng.End)
}

func TestResolveRangeIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.FixedZone("CET", 3600))

	rng, _, err := ResolveRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), rng.End)
}

func TestResolveRangeRejectsInvalidDates(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "garbage start", start: "yesterday"},
		{name: "unpadded start", start: "2024-1-05"},
		{name: "garbage end", end: "2024-13-01"},
		{name: "unpadded end", start: "2024-01-01", end: "2024-3-1"},
		{name: "day out of range", end: "2024-02-30"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ResolveRange(tc.start, tc.end, today)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}
