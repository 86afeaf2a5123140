// Package service joins employees with their burnout results for the HR views.
package service

import (
	"context"
	"errors"

	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	"github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

// NoDataLabel is the latest label reported for an employee without results.
const NoDataLabel = "No data"

// ErrEmployeeNotFound is returned by History for an unknown employee id.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepo is the minimal employee repository needed by the roster.
type EmployeeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}

// ResultRepo is the minimal result repository needed by the roster.
type ResultRepo interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]*burnoutdomain.Result, error)
	LatestByEmployee(ctx context.Context) (map[int64]*burnoutdomain.Result, error)
}

// Row is an employee with the fields of their newest result. Result fields are nil when there is none.
type Row struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Email           string  `json:"email"`
	LatestRiskScore *int    `json:"latest_risk_score"`
	LatestRiskLabel string  `json:"latest_risk_label"`
	WorkHours       *int    `json:"work_hours"`
	StressLevel     *int    `json:"stress_level"`
	LastSubmission  *string `json:"last_submission"`
	HederaVerified  bool    `json:"hedera_verified"`
}

// Profile is the employee block of a history response.
type Profile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// History is an employee with all their results, newest first.
type History struct {
	Employee    Profile                `json:"employee"`
	Submissions []burnoutdomain.Record `json:"submissions"`
}

// Roster serves the employee list and history views.
type Roster struct {
	employees EmployeeRepo
	results   ResultRepo
}

// NewRoster returns a Roster.
func NewRoster(employees EmployeeRepo, results ResultRepo) *Roster {
	return &Roster{employees: employees, results: results}
}

// List returns every employee, ordered by id, with their latest result.
func (r *Roster) List(ctx context.Context) ([]Row, error) {
	employees, err := r.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := r.results.LatestByEmployee(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, NewRow(e, latest[e.ID]))
	}
	return rows, nil
}

// NewRow builds the list row for e. latest may be nil.
func NewRow(e *domain.Employee, latest *burnoutdomain.Result) Row {
	row := Row{
		ID:              e.ID,
		Name:            e.Name,
		Department:      e.Department,
		Email:           e.Email,
		LatestRiskLabel: NoDataLabel,
	}
	if latest == nil {
		return row
	}
	score, hours, stress := latest.RiskScore, latest.WorkHours, latest.StressLevel
	ts := burnoutdomain.FormatTimestamp(latest.SubmittedAt)
	row.LatestRiskScore = &score
	row.LatestRiskLabel = latest.Label
	row.WorkHours = &hours
	row.StressLevel = &stress
	row.LastSubmission = &ts
	row.HederaVerified = latest.Verified()
	return row
}

// History returns the employee's results, newest first. Returns ErrEmployeeNotFound for an unknown id.
func (r *Roster) History(ctx context.Context, id int64) (*History, error) {
	e, err := r.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	results, err := r.results.ListByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	h := &History{
		Employee:    Profile{ID: e.ID, Name: e.Name, Department: e.Department, Email: e.Email},
		Submissions: make([]burnoutdomain.Record, 0, len(results)),
	}
	for _, res := range results {
		h.Submissions = append(h.Submissions, res.Record(e.Name, e.Department))
	}
	return h, nil
}
