// Package dashboard aggregates employees and burnout results into the HR dashboard view.
package dashboard

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

// RecentLimit is the number of newest results listed in RecentSubmissions.
const RecentLimit = 10

// Dashboard thresholds follow the simple scoring bands.
const (
	highRiskMin   = 70
	mediumRiskMin = 40
)

// Summary holds the headline counts and averages.
type Summary struct {
	TotalEmployees  int     `json:"total_employees"`
	TotalSurveys    int     `json:"total_surveys"`
	HighRiskCount   int     `json:"high_risk_count"`
	MediumRiskCount int     `json:"medium_risk_count"`
	LowRiskCount    int     `json:"low_risk_count"`
	AverageRisk     float64 `json:"average_risk"`
	AverageHours    float64 `json:"average_hours"`
	AverageStress   float64 `json:"average_stress"`
}

// Department is the per-department breakdown. Count is the number of employees in the department.
type Department struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	AvgRisk    float64 `json:"avg_risk"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Summary           Summary                `json:"summary"`
	Departments       []Department           `json:"departments"`
	RecentSubmissions []burnoutdomain.Record `json:"recent_submissions"`
}

// Summarize builds the dashboard from every employee and every result. It does not modify its inputs.
// Departments are listed by name and include those whose employees have no results.
func Summarize(employees []*employeedomain.Employee, results []*burnoutdomain.Result) *Dashboard {
	d := &Dashboard{
		Summary: Summary{
			TotalEmployees: len(employees),
			TotalSurveys:   len(results),
		},
		Departments:       []Department{},
		RecentSubmissions: []burnoutdomain.Record{},
	}

	byID := make(map[int64]*employeedomain.Employee, len(employees))
	type deptAcc struct {
		employees int
		scoreSum  int
		results   int
	}
	depts := map[string]*deptAcc{}
	for _, e := range employees {
		byID[e.ID] = e
		acc, ok := depts[e.Department]
		if !ok {
			acc = &deptAcc{}
			depts[e.Department] = acc
		}
		acc.employees++
	}

	var scoreSum, hoursSum, stressSum int
	for _, r := range results {
		switch {
		case r.RiskScore >= highRiskMin:
			d.Summary.HighRiskCount++
		case r.RiskScore >= mediumRiskMin:
			d.Summary.MediumRiskCount++
		default:
			d.Summary.LowRiskCount++
		}
		scoreSum += r.RiskScore
		hoursSum += r.WorkHours
		stressSum += r.StressLevel
		if e, ok := byID[r.EmployeeID]; ok {
			acc := depts[e.Department]
			acc.scoreSum += r.RiskScore
			acc.results++
		}
	}
	d.Summary.AverageRisk = mean(scoreSum, len(results))
	d.Summary.AverageHours = mean(hoursSum, len(results))
	d.Summary.AverageStress = mean(stressSum, len(results))

	for name, acc := range depts {
		d.Departments = append(d.Departments, Department{
			Department: name,
			Count:      acc.employees,
			AvgRisk:    mean(acc.scoreSum, acc.results),
		})
	}
	slices.SortFunc(d.Departments, func(a, b Department) int { return cmp.Compare(a.Department, b.Department) })

	recent := slices.Clone(results)
	SortNewestFirst(recent)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	for _, r := range recent {
		var name, dept string
		if e, ok := byID[r.EmployeeID]; ok {
			name, dept = e.Name, e.Department
		}
		d.RecentSubmissions = append(d.RecentSubmissions, r.Record(name, dept))
	}
	return d
}

// SortNewestFirst orders results by submission time descending, then id descending.
func SortNewestFirst(results []*burnoutdomain.Result) {
	slices.SortStableFunc(results, func(a, b *burnoutdomain.Result) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// mean returns sum/n rounded to one decimal place, or 0 when n is 0.
func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return Round1(float64(sum) / float64(n))
}

// Round1 rounds x to one decimal using the shortest correctly rounded decimal form, so exact ties
// round half to even and values like 0.35 (stored just below) round down.
func Round1(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return v
}

// EmployeeLister lists every employee.
type EmployeeLister interface {
	List(ctx context.Context) ([]*employeedomain.Employee, error)
}

// ResultLister lists every result.
type ResultLister interface {
	ListAll(ctx context.Context) ([]*burnoutdomain.Result, error)
}

// Service loads the dashboard from the repositories.
type Service struct {
	employees EmployeeLister
	results   ResultLister
}

// NewService returns a dashboard Service.
func NewService(employees EmployeeLister, results ResultLister) *Service {
	return &Service{employees: employees, results: results}
}

// Build loads all employees and results and summarizes them.
func (s *Service) Build(ctx context.Context) (*Dashboard, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(employees, results), nil
}
