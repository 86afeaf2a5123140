// Package report exports the employee roster, filtered by latest risk label, as CSV or JSON.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/safinirasol/WellMind-IBM/internal/dashboard"
	employeeservice "github.com/safinirasol/WellMind-IBM/internal/employee/service"
)

// Formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Columns is the CSV header row.
var Columns = []string{
	"id", "name", "department", "email", "latest_risk_score", "latest_risk_label",
	"work_hours", "stress_level", "last_submission", "hedera_verified",
}

// Request selects the rows and encoding of a report. An empty RiskFilter keeps every employee;
// an empty Format means CSV.
type Request struct {
	RiskFilter string `json:"riskFilter"`
	Format     string `json:"format"`
}

// Report is the JSON form of an export.
type Report struct {
	GeneratedAt string                `json:"generated_at"`
	RiskFilter  string                `json:"risk_filter,omitempty"`
	Summary     dashboard.Summary     `json:"summary"`
	Count       int                   `json:"count"`
	Employees   []employeeservice.Row `json:"employees"`
}

// Lister lists the roster rows.
type Lister interface {
	List(ctx context.Context) ([]employeeservice.Row, error)
}

// Summarizer builds the dashboard the report summary is taken from.
type Summarizer interface {
	Build(ctx context.Context) (*dashboard.Dashboard, error)
}

// Exporter builds reports.
type Exporter struct {
	roster    Lister
	dashboard Summarizer
	now       func() time.Time
}

// NewExporter returns an Exporter.
func NewExporter(roster Lister, dash Summarizer) *Exporter {
	return &Exporter{roster: roster, dashboard: dash, now: time.Now}
}

// Normalize validates req.Format, defaulting it to CSV.
func (r *Request) Normalize() error {
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	r.RiskFilter = strings.TrimSpace(r.RiskFilter)
	switch r.Format {
	case "":
		r.Format = FormatCSV
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unsupported format %q", r.Format)
	}
	return nil
}

// Build loads the roster and summary and applies the filter.
func (e *Exporter) Build(ctx context.Context, req Request) (*Report, error) {
	rows, err := e.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	d, err := e.dashboard.Build(ctx)
	if err != nil {
		return nil, err
	}
	filtered := Filter(rows, req.RiskFilter)
	return &Report{
		GeneratedAt: e.now().UTC().Format(time.RFC3339),
		RiskFilter:  req.RiskFilter,
		Summary:     d.Summary,
		Count:       len(filtered),
		Employees:   filtered,
	}, nil
}

// Filter keeps rows whose latest label equals label exactly. An empty label keeps every row.
func Filter(rows []employeeservice.Row, label string) []employeeservice.Row {
	out := make([]employeeservice.Row, 0, len(rows))
	for _, row := range rows {
		if label == "" || row.LatestRiskLabel == label {
			out = append(out, row)
		}
	}
	return out
}

// Filename returns the attachment name for a report generated at t.
func Filename(t time.Time, format string) string {
	return "burnout-report-" + t.UTC().Format("2006-01-02") + "." + format
}

// WriteJSON encodes rep as JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteCSV writes the header and one line per employee. Missing result fields are empty cells.
func WriteCSV(w io.Writer, rows []employeeservice.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Name,
			row.Department,
			row.Email,
			optInt(row.LatestRiskScore),
			row.LatestRiskLabel,
			optInt(row.WorkHours),
			optInt(row.StressLevel),
			optString(row.LastSubmission),
			strconv.FormatBool(row.HederaVerified),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
