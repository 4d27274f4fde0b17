// Package report builds the per-member gathering report for a date range and
// renders it as CSV or markdown.
package report

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

var (
	// ErrInvalidRange is returned when the start date is after the end date.
	ErrInvalidRange = errors.New("start date must not be after end date")

	// ErrNoData is returned when no gathering was created within the range.
	ErrNoData = errors.New("no gatherings in the selected range")
)

// DateLayout is the layout of range bounds.
const DateLayout = "2006-01-02"

// timestampLayout matches the persisted millisecond ISO timestamps.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Header is the CSV header row.
var Header = []string{
	"Gathering ID", "Date Opened", "Date Closed", "Status",
	"Member ID", "Member Name", "Total Expenses", "Total Payments", "Balance",
}

// Range selects gatherings by creation date. Both bounds are calendar dates;
// a zero bound is unbounded and End includes the whole day.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses two optional YYYY-MM-DD dates.
func ParseRange(start, end string) (Range, error) {
	var r Range
	var err error
	if start != "" {
		if r.Start, err = time.Parse(DateLayout, start); err != nil {
			return Range{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
	}
	if end != "" {
		if r.End, err = time.Parse(DateLayout, end); err != nil {
			return Range{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
	}
	return r, r.Validate()
}

// Validate checks that the range is not inverted.
func (r Range) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return fmt.Errorf("%s > %s: %w", r.Start.Format(DateLayout), r.End.Format(DateLayout), ErrInvalidRange)
	}
	return nil
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Filename is the suggested download name for the CSV report.
func (r Range) Filename() string {
	bound := func(t time.Time) string {
		if t.IsZero() {
			return "all"
		}
		return t.Format(DateLayout)
	}
	return fmt.Sprintf("gathering-report-%s-to-%s.csv", bound(r.Start), bound(r.End))
}

// Row is one member of one gathering. First marks the first row of each
// gathering, the only one that shows the gathering columns.
type Row struct {
	First         bool
	GatheringID   string
	Opened        time.Time
	Closed        time.Time // zero unless the gathering is closed
	Status        models.GatheringStatus
	MemberID      string
	MemberName    string
	TotalExpenses models.Amount
	TotalPayments models.Amount
	Balance       models.Amount
}

// Report holds the rows of every gathering in the range, newest first.
type Report struct {
	Range      Range
	Gatherings int
	Rows       []Row
}

// Build collects the report rows for gatherings created within rng.
func Build(data models.AppData, rng Range) (*Report, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	var selected []models.Gathering
	for _, g := range data.Gatherings {
		if rng.Contains(g.CreatedAt) {
			selected = append(selected, g)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoData
	}
	slices.SortStableFunc(selected, func(a, b models.Gathering) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	rep := &Report{Range: rng, Gatherings: len(selected)}
	for _, g := range selected {
		base := Row{
			First:       true,
			GatheringID: g.ID,
			Opened:      g.CreatedAt,
			Status:      g.Status,
		}
		if g.IsClosed() {
			base.Closed = g.LastActivity()
		}

		balances := calculator.MemberBalances(g, data.GlobalMembers)
		if len(balances) == 0 {
			rep.Rows = append(rep.Rows, base)
			continue
		}
		for i, b := range balances {
			row := base
			row.First = i == 0
			row.MemberID = b.MemberID
			row.MemberName = b.Name
			row.TotalExpenses = b.TotalExpenses
			row.TotalPayments = b.TotalPayments
			row.Balance = b.Balance
			rep.Rows = append(rep.Rows, row)
		}
	}
	return rep, nil
}

// Record returns the CSV fields of the row.
func (r Row) Record() []string {
	record := make([]string, 0, len(Header))
	if r.First {
		record = append(record, r.GatheringID, formatTime(r.Opened), formatTime(r.Closed), string(r.Status))
	} else {
		record = append(record, "", "", "", "")
	}
	return append(record,
		r.MemberID,
		r.MemberName,
		r.TotalExpenses.Fixed2(),
		r.TotalPayments.Fixed2(),
		r.Balance.Fixed2(),
	)
}

// WriteCSV writes the header and every row.
func (rep *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rep.Rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

//go:embed templates/*.md
var templatesFS embed.FS

var markdownTemplate = template.Must(template.New("report.md").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	},
	"bound": func(t time.Time, fallback string) string {
		if t.IsZero() {
			return fallback
		}
		return t.Format(DateLayout)
	},
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
}).ParseFS(templatesFS, "templates/report.md"))

// Markdown renders the report as a markdown table.
func (rep *Report) Markdown() (string, error) {
	var sb strings.Builder
	if err := markdownTemplate.Execute(&sb, rep); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
