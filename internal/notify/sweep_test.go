package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
	"github.com/safinirasol/WellMind-IBM/internal/workflow"
)

type stubEmployees []*employeedomain.Employee

func (s stubEmployees) List(ctx context.Context) ([]*employeedomain.Employee, error) { return s, nil }

type stubLatest struct {
	m   map[int64]*burnoutdomain.Result
	err error
}

func (s stubLatest) LatestByEmployee(ctx context.Context) (map[int64]*burnoutdomain.Result, error) {
	return s.m, s.err
}

type recordingWorkflow struct {
	mu  sync.Mutex
	got []burnoutdomain.Record
}

func (w *recordingWorkflow) Run(ctx context.Context, rec burnoutdomain.Record) workflow.Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.got = append(w.got, rec)
	return workflow.Outcome{Actions: workflow.TableActions(rec.RiskScore)}
}

type sweepCounts struct{ notified, skipped int }

func (c *sweepCounts) ObserveSweep(notified, skipped int) {
	c.notified += notified
	c.skipped += skipped
}

func fixture() (stubEmployees, stubLatest) {
	employees := stubEmployees{
		{ID: 1, Name: "Ana", Department: "Ops"},
		{ID: 2, Name: "Ben", Department: "Ops"},
		{ID: 3, Name: "Cid", Department: "Sales"},
		{ID: 4, Name: "Dee", Department: "Legal"},
	}
	latest := stubLatest{m: map[int64]*burnoutdomain.Result{
		1: {ID: 10, EmployeeID: 1, RiskScore: 90, Label: "High"},
		2: {ID: 11, EmployeeID: 2, RiskScore: 50, Label: "Medium"},
		3: {ID: 12, EmployeeID: 3, RiskScore: 72, Label: "High"},
	}}
	return employees, latest
}

func TestSweeper_Run(t *testing.T) {
	employees, latest := fixture()
	wf := &recordingWorkflow{}
	store := NewMemoryCooldownStore()
	counts := &sweepCounts{}
	s := NewSweeper(employees, latest, wf, store, time.Hour, nil)
	s.SetObserver(counts)

	if s.Last() != nil {
		t.Error("Last should be nil before the first sweep")
	}

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Checked != 4 || res.Notified != 2 || res.Skipped != 0 {
		t.Errorf("first sweep = %+v, want checked 4 notified 2 skipped 0", res)
	}
	if len(wf.got) != 2 || wf.got[0].EmployeeName != "Ana" || wf.got[1].Department != "Sales" {
		t.Errorf("workflow records = %+v", wf.got)
	}

	res, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Notified != 0 || res.Skipped != 2 {
		t.Errorf("second sweep = %+v, want notified 0 skipped 2", res)
	}
	if len(wf.got) != 2 {
		t.Error("cooldown should suppress repeat notifications")
	}
	if counts.notified != 2 || counts.skipped != 2 {
		t.Errorf("observer = %+v", counts)
	}
	if last := s.Last(); last == nil || last.Skipped != 2 {
		t.Errorf("Last = %+v", last)
	}
}

func TestSweeper_CooldownExpires(t *testing.T) {
	employees, latest := fixture()
	wf := &recordingWorkflow{}
	store := NewMemoryCooldownStore()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	store.nowF = func() time.Time { return now }
	s := NewSweeper(employees, latest, wf, store, time.Hour, nil)
	s.nowF = func() time.Time { return now }

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	now = now.Add(61 * time.Minute)
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Notified != 2 {
		t.Errorf("Notified = %d after cooldown, want 2", res.Notified)
	}
}

func TestSweeper_RepositoryError(t *testing.T) {
	employees, _ := fixture()
	boom := errors.New("boom")
	s := NewSweeper(employees, stubLatest{err: boom}, &recordingWorkflow{}, NewMemoryCooldownStore(), 0, nil)
	if _, err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run err = %v, want boom", err)
	}
	if s.Cooldown() != DefaultCooldown {
		t.Errorf("Cooldown = %v, want default", s.Cooldown())
	}
}

func TestSchedule(t *testing.T) {
	employees, latest := fixture()
	s := NewSweeper(employees, latest, &recordingWorkflow{}, NewMemoryCooldownStore(), time.Hour, nil)

	c, err := Schedule("", s, nil)
	if err != nil || c != nil {
		t.Errorf("Schedule(empty) = %v, %v; want nil, nil", c, err)
	}
	if _, err := Schedule("not a spec", s, nil); err == nil {
		t.Error("Schedule should reject an invalid spec")
	}
	c, err = Schedule("@every 1h", s, nil)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}
