package domain

import (
	"errors"
	"time"
)

// WorkflowStatusPending is the workflow status every result is created with.
const WorkflowStatusPending = "pending"

// Result is one scored survey submission. It is created with its score and label, gains a ledger
// reference once after audit, and is otherwise immutable.
type Result struct {
	ID             int64
	EmployeeID     int64
	RiskScore      int
	Label          string
	WorkHours      int
	StressLevel    int
	LedgerRef      string // empty until audit completes
	WorkflowStatus string
	SubmittedAt    time.Time
}

// Validate validates the result for persistence. Returns an error describing the first validation failure.
func (r *Result) Validate() error {
	if r.EmployeeID <= 0 {
		return errors.New("employee_id is required")
	}
	if r.Label == "" {
		return errors.New("label is required")
	}
	if r.WorkflowStatus == "" {
		r.WorkflowStatus = WorkflowStatusPending
	}
	return nil
}

// Verified reports whether the result carries a ledger reference.
func (r *Result) Verified() bool {
	return r != nil && r.LedgerRef != ""
}

// Record is the denormalised, client-facing view of a Result. The JSON keys are the wire names
// existing dashboards consume, and the audit digest is computed over this shape.
type Record struct {
	ID             int64   `json:"id"`
	EmployeeID     int64   `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	RiskScore      int     `json:"risk_score"`
	Label          string  `json:"label"`
	WorkHours      int     `json:"work_hours"`
	StressLevel    int     `json:"stress_level"`
	LedgerRef      *string `json:"hedera_txid"`
	WorkflowStatus string  `json:"orchestrate_status"`
	SubmittedAt    string  `json:"watson_timestamp"`
}

// Record returns the denormalised view of r for the given employee name and department.
func (r *Result) Record(employeeName, department string) Record {
	rec := Record{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   employeeName,
		Department:     department,
		RiskScore:      r.RiskScore,
		Label:          r.Label,
		WorkHours:      r.WorkHours,
		StressLevel:    r.StressLevel,
		WorkflowStatus: r.WorkflowStatus,
		SubmittedAt:    FormatTimestamp(r.SubmittedAt),
	}
	if r.LedgerRef != "" {
		ref := r.LedgerRef
		rec.LedgerRef = &ref
	}
	return rec
}

// FormatTimestamp renders t in UTC as an ISO-8601 timestamp without zone, with microseconds only
// when non-zero (e.g. 2025-03-01T09:30:00 or 2025-03-01T09:30:00.250000).
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}
