// Package harvest is a minimal client for the Harvest API v2 time entries endpoint.
package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lan-dot-party/flexbalance/internal/config"
	"github.com/lan-dot-party/flexbalance/internal/flex"
)

// ErrRequestFailed wraps transport errors, unexpected statuses and
// undecodable responses from Harvest.
var ErrRequestFailed = errors.New("harvest request failed")

// perPage is the largest page Harvest serves. Further pages are not fetched.
const perPage = 2000

// Client lists time entries using the Harvest API v2.
type Client struct {
	baseURL   string
	token     string
	accountID string
	userAgent string
	http      *http.Client
	log       *zap.Logger
}

// NewClient creates a client from the harvest section of the configuration.
// The account id and access token must be set.
func NewClient(cfg *config.Config, log *zap.Logger) (*Client, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:   cfg.Harvest.BaseURL,
		token:     cfg.Harvest.AccessToken,
		accountID: cfg.Harvest.AccountID,
		userAgent: cfg.Harvest.UserAgent,
		http: &http.Client{
			Timeout: cfg.Harvest.Timeout,
		},
		log: log,
	}, nil
}

// ListTimeEntries fetches entries with spent_date in [from, to]. Harvest
// treats both bounds as inclusive.
// GET /v2/time_entries?from=YYYY-MM-DD&to=YYYY-MM-DD
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]flex.TimeEntry, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", ErrRequestFailed, err)
	}
	u = u.JoinPath("v2", "time_entries")
	q := u.Query()
	q.Set("from", from.Format(flex.DateLayout))
	q.Set("to", to.Format(flex.DateLayout))
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Harvest-Account-Id", c.accountID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.log.Debug("Fetching time entries",
		zap.String("from", q.Get("from")),
		zap.String("to", q.Get("to")),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrRequestFailed, resp.StatusCode, string(body))
	}

	var page rawTimeEntriesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	if page.NextPage != nil {
		c.log.Warn("More time entries than fit in one page; only the first page is counted",
			zap.Int("per_page", perPage),
			zap.Int("total_entries", page.TotalEntries),
		)
	}

	out := make([]flex.TimeEntry, 0, len(page.TimeEntries))
	for _, r := range page.TimeEntries {
		entry := flex.TimeEntry{
			ID:    r.ID,
			Hours: r.Hours,
		}
		if r.SpentDate != nil {
			day, err := flex.ParseDate(*r.SpentDate)
			if err != nil {
				return nil, fmt.Errorf("time entry %d: %w", r.ID, err)
			}
			entry.SpentDate = &day
		}
		out = append(out, entry)
	}

	c.log.Debug("Fetched time entries", zap.Int("count", len(out)))
	return out, nil
}

// rawTimeEntriesPage mirrors the JSON from GET /v2/time_entries.
type rawTimeEntriesPage struct {
	TimeEntries  []rawTimeEntry `json:"time_entries"`
	PerPage      int            `json:"per_page"`
	TotalPages   int            `json:"total_pages"`
	TotalEntries int            `json:"total_entries"`
	NextPage     *int           `json:"next_page"`
	Page         int            `json:"page"`
}

type rawTimeEntry struct {
	ID        int64    `json:"id"`
	SpentDate *string  `json:"spent_date"`
	Hours     *float64 `json:"hours"`
}
