package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func emp(id int64, name, dept string) *employeedomain.Employee {
	return &employeedomain.Employee{ID: id, Name: name, Email: name + "@example.com", Department: dept}
}

func result(id, empID int64, score, hours, stress int, at time.Duration) *burnoutdomain.Result {
	return &burnoutdomain.Result{
		ID: id, EmployeeID: empID, RiskScore: score, Label: "x",
		WorkHours: hours, StressLevel: stress, WorkflowStatus: "pending",
		SubmittedAt: base.Add(at),
	}
}

func TestSummarize_Empty(t *testing.T) {
	d := Summarize(nil, nil)
	if d.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", d.Summary)
	}
	if d.Departments == nil || d.RecentSubmissions == nil {
		t.Error("empty slices should be non-nil so they encode as []")
	}
}

func TestSummarize(t *testing.T) {
	employees := []*employeedomain.Employee{
		emp(1, "ana", "Engineering"),
		emp(2, "ben", "Engineering"),
		emp(3, "cid", "Sales"),
		emp(4, "dee", "Legal"),
	}
	results := []*burnoutdomain.Result{
		result(1, 1, 75, 40, 5, 0),
		result(2, 1, 70, 40, 4, time.Hour),
		result(3, 2, 69, 38, 5, 2*time.Hour),
		result(4, 3, 40, 32, 0, 3*time.Hour),
		result(5, 3, 39, 31, 0, 4*time.Hour),
	}

	d := Summarize(employees, results)

	want := Summary{
		TotalEmployees:  4,
		TotalSurveys:    5,
		HighRiskCount:   2,
		MediumRiskCount: 2,
		LowRiskCount:    1,
		AverageRisk:     58.6,
		AverageHours:    36.2,
		AverageStress:   2.8,
	}
	if d.Summary != want {
		t.Errorf("Summary = %+v, want %+v", d.Summary, want)
	}

	wantDepts := []Department{
		{Department: "Engineering", Count: 2, AvgRisk: 71.3},
		{Department: "Legal", Count: 1, AvgRisk: 0},
		{Department: "Sales", Count: 1, AvgRisk: 39.5},
	}
	if len(d.Departments) != len(wantDepts) {
		t.Fatalf("Departments = %+v", d.Departments)
	}
	for i := range wantDepts {
		if d.Departments[i] != wantDepts[i] {
			t.Errorf("Departments[%d] = %+v, want %+v", i, d.Departments[i], wantDepts[i])
		}
	}

	if len(d.RecentSubmissions) != 5 {
		t.Fatalf("RecentSubmissions = %d, want 5", len(d.RecentSubmissions))
	}
	if got := d.RecentSubmissions[0]; got.ID != 5 || got.EmployeeName != "cid" || got.Department != "Sales" {
		t.Errorf("newest = %+v", got)
	}
	if results[0].ID != 1 {
		t.Error("Summarize must not reorder its input")
	}
}

func TestSummarize_RecentLimitAndTies(t *testing.T) {
	employees := []*employeedomain.Employee{emp(1, "ana", "Ops")}
	var results []*burnoutdomain.Result
	for i := int64(1); i <= 12; i++ {
		results = append(results, result(i, 1, 50, 40, 5, 0))
	}
	d := Summarize(employees, results)
	if len(d.RecentSubmissions) != RecentLimit {
		t.Fatalf("RecentSubmissions = %d, want %d", len(d.RecentSubmissions), RecentLimit)
	}
	if d.RecentSubmissions[0].ID != 12 || d.RecentSubmissions[9].ID != 3 {
		t.Errorf("same-time results should order by id desc, got first=%d last=%d",
			d.RecentSubmissions[0].ID, d.RecentSubmissions[9].ID)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{71.33333, 71.3},
		{0.25, 0.2},
		{0.35, 0.3},
		{2.75, 2.8},
		{58.6, 58.6},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type stubEmployees struct {
	list []*employeedomain.Employee
	err  error
}

func (s stubEmployees) List(ctx context.Context) ([]*employeedomain.Employee, error) { return s.list, s.err }

type stubResults struct {
	list []*burnoutdomain.Result
	err  error
}

func (s stubResults) ListAll(ctx context.Context) ([]*burnoutdomain.Result, error) { return s.list, s.err }

func TestService_Build(t *testing.T) {
	svc := NewService(stubEmployees{list: []*employeedomain.Employee{emp(1, "ana", "Ops")}}, stubResults{})
	d, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Summary.TotalEmployees != 1 {
		t.Errorf("TotalEmployees = %d, want 1", d.Summary.TotalEmployees)
	}

	boom := errors.New("boom")
	if _, err := NewService(stubEmployees{}, stubResults{err: boom}).Build(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Build err = %v, want boom", err)
	}
}
