// Package report renders a flex balance for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/lan-dot-party/flexbalance/internal/flex"
)

// Report is a computed balance plus any notices raised while resolving its inputs.
type Report struct {
	Balance flex.Balance
	Notices []string
}

// Hours formats an hour value rounded to two decimals, without trailing zeros.
func Hours(h float64) string {
	r := math.Round(h*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// BalanceLine returns the uncoloured summary line for b.
func BalanceLine(b flex.Balance) string {
	if b.Above() {
		return fmt.Sprintf("%s hour(s) above expected", Hours(b.Flex))
	}
	return fmt.Sprintf("%s hour(s) below expected", Hours(b.Flex))
}

// WriteText prints notices followed by the four report lines. The balance
// line is green when at or above expected and red otherwise; colour is
// dropped when w is not a terminal.
func (r Report) WriteText(w io.Writer) error {
	return r.WriteStyled(w, lipgloss.NewRenderer(w))
}

// WriteStyled is WriteText with the colour decisions taken by renderer
// instead of by inspecting w.
func (r Report) WriteStyled(w io.Writer, renderer *lipgloss.Renderer) error {
	above := renderer.NewStyle().Foreground(lipgloss.Color("2"))
	below := renderer.NewStyle().Foreground(lipgloss.Color("1"))

	for _, n := range r.Notices {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}

	b := r.Balance
	style := below
	if b.Above() {
		style = above
	}

	_, err := fmt.Fprintf(w, "Start date: %s - End date: %s\nExpected hours: %s\nActual hours: %s\n%s\n",
		b.Range.Start.Format(flex.DateLayout),
		b.Range.End.Format(flex.DateLayout),
		Hours(b.Expected),
		Hours(b.Actual),
		style.Render(BalanceLine(b)),
	)
	return err
}

type jsonReport struct {
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Weekdays      int      `json:"weekdays"`
	HoursPerDay   float64  `json:"hours_per_day"`
	ExpectedHours float64  `json:"expected_hours"`
	ActualHours   float64  `json:"actual_hours"`
	FlexBalance   float64  `json:"flex_balance"`
	AboveExpected bool     `json:"above_expected"`
	Entries       int      `json:"entries"`
	Notices       []string `json:"notices,omitempty"`
}

// JSON returns the report as an indented JSON document.
func (r Report) JSON() ([]byte, error) {
	b := r.Balance
	return json.MarshalIndent(jsonReport{
		StartDate:     b.Range.Start.Format(flex.DateLayout),
		EndDate:       b.Range.End.Format(flex.DateLayout),
		Weekdays:      b.Weekdays,
		HoursPerDay:   b.HoursPerDay,
		ExpectedHours: b.Expected,
		ActualHours:   b.Actual,
		FlexBalance:   b.Flex,
		AboveExpected: b.Above(),
		Entries:       b.EntryCount,
		Notices:       r.Notices,
	}, "", "  ")
}

// WriteJSON writes the JSON document followed by a newline.
func (r Report) WriteJSON(w io.Writer) error {
	data, err := r.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
