package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lan-dot-party/flexbalance/internal/config"
	"github.com/lan-dot-party/flexbalance/internal/flex"
	"github.com/lan-dot-party/flexbalance/internal/harvest"
)

// fixedToday is a Friday.
var fixedToday = time.Date(2024, time.January, 12, 15, 30, 0, 0, time.UTC)

type fakeLister struct {
	from, to time.Time
	entries  []flex.TimeEntry
	err      error
	calls    int
}

func (f *fakeLister) ListTimeEntries(_ context.Context, from, to time.Time) ([]flex.TimeEntry, error) {
	f.calls++
	f.from, f.to = from, to
	return f.entries, f.err
}

func hoursEntry(id int64, spent string, hours float64) flex.TimeEntry {
	d, err := flex.ParseDate(spent)
	if err != nil {
		panic(err)
	}
	return flex.TimeEntry{ID: id, SpentDate: &d, Hours: &hours}
}

// setupEnv isolates the environment, pins today and serves body from a
// fake Harvest API. It returns a counter of requests served.
func setupEnv(t *testing.T, status int, body string) *int32 {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("FLEXBALANCE_LOG_FORMAT", "json")
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvAccessToken, "token")
	t.Setenv(config.EnvAccountID, "1")
	t.Setenv(config.EnvBaseURL, srv.URL)
	t.Setenv(config.EnvHoursPerDay, "")

	prevNow := now
	now = func() time.Time { return fixedToday }
	t.Cleanup(func() {
		now = prevNow
		cfg = nil
	})

	return &hits
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, verbose, jsonOutput, configInitOutput = "", false, false, ""

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

const entriesBody = `{"time_entries": [
	{"id": 1, "spent_date": "2024-01-03", "hours": 60},
	{"id": 2, "spent_date": "2024-01-12", "hours": 8}
]}`

func TestRootPrintsYearToDateBalance(t *testing.T) {
	hits := setupEnv(t, http.StatusOK, entriesBody)

	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	// 10 weekdays including today, which has an entry.
	assert.Contains(t, out, "HOURS_PER_DAY is not set, using the default of 7.5 hours per day.")
	assert.Contains(t, out, "Start date: 2024-01-01 - End date: 2024-01-12")
	assert.Contains(t, out, "Expected hours: 75\n")
	assert.Contains(t, out, "Actual hours: 68\n")
	assert.Contains(t, out, "-7 hour(s) below expected")
}

func TestRootUsesHoursPerDayFromEnv(t *testing.T) {
	setupEnv(t, http.StatusOK, entriesBody)
	t.Setenv(config.EnvHoursPerDay, "6.8")

	out, err := executeRoot(t, "2024-01-08")
	require.NoError(t, err)
	assert.NotContains(t, out, "is not set")
	// Mon 8th to Fri 12th inclusive: 5 * 6.8.
	assert.Contains(t, out, "Expected hours: 34\n")
	assert.Contains(t, out, "34 hour(s) above expected")
}

func TestRootClampsFutureEndDate(t *testing.T) {
	setupEnv(t, http.StatusOK, `{"time_entries": []}`)

	out, err := executeRoot(t, "2024-01-08", "2030-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Changing end date to today")
	// Today has no entry, so only Mon-Thu count.
	assert.Contains(t, out, "Start date: 2024-01-08 - End date: 2024-01-12")
	assert.Contains(t, out, "Expected hours: 30\n")
}

func TestRootJSONOutput(t *testing.T) {
	setupEnv(t, http.StatusOK, entriesBody)

	out, err := executeRoot(t, "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.Contains(t, out, `"flex_balance": -7`)
	assert.Contains(t, out, `"above_expected": false`)
}

func TestRootRejectsInvalidDateBeforeFetching(t *testing.T) {
	hits := setupEnv(t, http.StatusOK, entriesBody)

	_, err := executeRoot(t, "2024-1-5")
	require.Error(t, err)
	assert.ErrorIs(t, err, flex.ErrInvalidDate)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestRootRejectsTooManyArgs(t *testing.T) {
	setupEnv(t, http.StatusOK, entriesBody)

	_, err := executeRoot(t, "2024-01-01", "2024-01-02", "2024-01-03")
	require.Error(t, err)
}

func TestRootFailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		env    map[string]string
		want   error
	}{
		{
			name:   "remote failure",
			status: http.StatusInternalServerError,
			body:   "boom",
			want:   harvest.ErrRequestFailed,
		},
		{
			name:   "entry without hours",
			status: http.StatusOK,
			body:   `{"time_entries": [{"id": 5, "spent_date": "2024-01-03"}]}`,
			want:   flex.ErrIncompleteEntry,
		},
		{
			name:   "invalid hours per day",
			status: http.StatusOK,
			body:   entriesBody,
			env:    map[string]string{config.EnvHoursPerDay: "lots"},
			want:   config.ErrInvalidConfig,
		},
		{
			name:   "missing token",
			status: http.StatusOK,
			body:   entriesBody,
			env:    map[string]string{config.EnvAccessToken: ""},
			want:   config.ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.status, tc.body)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			out, err := executeRoot(t)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.NotContains(t, out, "Expected hours")
		})
	}
}

func TestBuildReportQueriesResolvedRange(t *testing.T) {
	c := config.NewDefault()
	lister := &fakeLister{entries: []flex.TimeEntry{
		hoursEntry(1, "2024-01-02", 7.5),
		hoursEntry(2, "2024-01-03", 7.5),
	}}

	rep, err := buildReport(context.Background(), lister, c, "2024-01-02", "2024-01-04", fixedToday)
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)
	assert.Equal(t, "2024-01-02", lister.from.Format(flex.DateLayout))
	assert.Equal(t, "2024-01-04", lister.to.Format(flex.DateLayout))

	assert.Empty(t, rep.Notices)
	assert.Equal(t, 15.0, rep.Balance.Expected)
	assert.Equal(t, 0.0, rep.Balance.Flex)
}

func TestBuildReportResetsStartAfterEnd(t *testing.T) {
	lister := &fakeLister{}

	rep, err := buildReport(context.Background(), lister, config.NewDefault(), "2024-01-10", "2024-01-05", fixedToday)
	require.NoError(t, err)
	require.Len(t, rep.Notices, 1)
	assert.Contains(t, rep.Notices[0], "2024-01-01")
	assert.Equal(t, "2024-01-01", lister.from.Format(flex.DateLayout))
}

func TestBuildReportWrapsFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	lister := &fakeLister{err: fmt.Errorf("%w: %v", harvest.ErrRequestFailed, cause)}

	_, err := buildReport(context.Background(), lister, config.NewDefault(), "", "", fixedToday)
	require.Error(t, err)
	assert.ErrorIs(t, err, harvest.ErrRequestFailed)
	assert.Contains(t, err.Error(), "failed to fetch time entries")
}
