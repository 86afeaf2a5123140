package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
	"github.com/safinirasol/WellMind-IBM/internal/scoring"
	"github.com/safinirasol/WellMind-IBM/internal/workflow"
)

// DefaultCooldown is used when NewSweeper is given a non-positive cooldown.
const DefaultCooldown = 24 * time.Hour

// EmployeeLister lists every employee.
type EmployeeLister interface {
	List(ctx context.Context) ([]*employeedomain.Employee, error)
}

// LatestLister returns each employee's newest result.
type LatestLister interface {
	LatestByEmployee(ctx context.Context) (map[int64]*burnoutdomain.Result, error)
}

// Workflow triggers follow-up actions for a result.
type Workflow interface {
	Run(ctx context.Context, rec burnoutdomain.Record) workflow.Outcome
}

// Observer receives the counts of each completed sweep.
type Observer interface {
	ObserveSweep(notified, skipped int)
}

// Result summarises one sweep. Checked counts every employee examined; Skipped counts high-risk
// employees still inside their cooldown window.
type Result struct {
	Checked  int       `json:"checked"`
	Notified int       `json:"notified"`
	Skipped  int       `json:"skipped"`
	RanAt    time.Time `json:"ran_at"`
}

// Sweeper runs the high-risk sweep. Concurrent calls to Run are serialised.
type Sweeper struct {
	employees EmployeeLister
	results   LatestLister
	workflow  Workflow
	store     CooldownStore
	cooldown  time.Duration
	log       *zap.Logger
	observer  Observer
	nowF      func() time.Time

	mu     sync.Mutex
	lastMu sync.RWMutex
	last   *Result
}

// NewSweeper returns a Sweeper.
func NewSweeper(employees EmployeeLister, results LatestLister, wf Workflow, store CooldownStore, cooldown time.Duration, log *zap.Logger) *Sweeper {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		employees: employees,
		results:   results,
		workflow:  wf,
		store:     store,
		cooldown:  cooldown,
		log:       log.Named("notify"),
		nowF:      time.Now,
	}
}

// SetObserver registers o for sweep counts.
func (s *Sweeper) SetObserver(o Observer) {
	s.observer = o
}

// Cooldown returns the per-employee cooldown window.
func (s *Sweeper) Cooldown() time.Duration {
	return s.cooldown
}

// Last returns the result of the most recent sweep, or nil if none has run.
func (s *Sweeper) Last() *Result {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	if s.last == nil {
		return nil
	}
	cp := *s.last
	return &cp
}

// Run performs one sweep. Only repository failures are returned; workflow failures fall back to the
// local rules inside the workflow trigger.
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.results.LatestByEmployee(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Checked: len(employees), RanAt: s.nowF().UTC()}
	for _, e := range employees {
		r := latest[e.ID]
		if r == nil || r.Label != scoring.LabelHigh {
			continue
		}
		if s.store.Active(ctx, e.ID) {
			res.Skipped++
			continue
		}
		out := s.workflow.Run(ctx, r.Record(e.Name, e.Department))
		s.store.Mark(ctx, e.ID, s.nowF().Add(s.cooldown))
		res.Notified++
		s.log.Info("high-risk employee notified",
			zap.Int64("employee_id", e.ID),
			zap.Int64("result_id", r.ID),
			zap.Bool("delivered", out.Delivered),
			zap.Strings("actions", out.Actions),
		)
	}

	s.log.Info("high-risk sweep complete",
		zap.Int("checked", res.Checked),
		zap.Int("notified", res.Notified),
		zap.Int("skipped", res.Skipped),
	)
	if s.observer != nil {
		s.observer.ObserveSweep(res.Notified, res.Skipped)
	}
	s.lastMu.Lock()
	s.last = res
	s.lastMu.Unlock()
	cp := *res
	return &cp, nil
}
