// Package service implements the survey use cases: stateless prediction, questionnaire analysis and
// persisted submissions with their post-commit audit and workflow steps.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/aiscoring"
	"github.com/safinirasol/WellMind-IBM/internal/audit"
	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
	"github.com/safinirasol/WellMind-IBM/internal/scoring"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry"
	telemetrydomain "github.com/safinirasol/WellMind-IBM/internal/telemetry/domain"
	"github.com/safinirasol/WellMind-IBM/internal/workflow"
)

// FieldError reports a submission field that is missing, blank, or longer than Max characters.
type FieldError struct {
	Field string
	// Max is set when the field is too long.
	Max int
}

func (e *FieldError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("Field too long: %s (max %d characters)", e.Field, e.Max)
	}
	return "Missing required field: " + e.Field
}

// DatabaseError wraps a persistence failure that rolled the submission back.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string {
	return "Database error: " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// EmployeeRepo is the minimal employee repository needed by a submission.
type EmployeeRepo interface {
	FindOrCreate(ctx context.Context, e *employeedomain.Employee) (*employeedomain.Employee, bool, error)
}

// ResultRepo is the minimal result repository needed by a submission.
type ResultRepo interface {
	Create(ctx context.Context, r *burnoutdomain.Result) error
	AttachLedgerRef(ctx context.Context, id int64, ref string) (bool, error)
}

// Store scopes repositories to a transaction.
type Store interface {
	// InTx runs fn with repositories bound to one transaction. A non-nil error from fn rolls it back.
	InTx(ctx context.Context, fn func(employees EmployeeRepo, results ResultRepo) error) error
	// Results returns a result repository outside any transaction.
	Results() ResultRepo
}

// Auditor records a committed result on the ledger.
type Auditor interface {
	Record(ctx context.Context, rec burnoutdomain.Record) audit.Outcome
}

// Workflow triggers follow-up actions for a committed result.
type Workflow interface {
	Run(ctx context.Context, rec burnoutdomain.Record) workflow.Outcome
}

// Analyzer scores the five-input questionnaire.
type Analyzer interface {
	Analyze(ctx context.Context, answers scoring.Answers) aiscoring.Outcome
}

// Metrics counts committed submissions.
type Metrics interface {
	ObserveSubmission(label string)
}

// SubmitInput is a survey submission. Name, email and department are required.
type SubmitInput struct {
	Name       string
	Email      string
	Department string
	Answers    scoring.SimpleInput
}

// Prediction is a stateless simple-policy score.
type Prediction struct {
	Risk  string `json:"risk"`
	Score int    `json:"score"`
}

// SubmitResult is the outcome of a committed submission.
type SubmitResult struct {
	EmployeeID        int64
	ResultID          int64
	Risk              string
	Score             int
	LedgerRef         string
	LedgerDelivered   bool
	WorkflowDelivered bool
	Actions           []string
}

// SurveyService implements predict, analyze and submit.
type SurveyService struct {
	store    Store
	auditor  Auditor
	workflow Workflow
	analyzer Analyzer
	metrics  Metrics
	events   telemetry.EventEmitter
	log      *zap.Logger
}

// NewSurveyService returns a SurveyService. auditor, wf and analyzer are required; metrics and
// events are optional and set with SetMetrics and SetEmitter.
func NewSurveyService(store Store, auditor Auditor, wf Workflow, analyzer Analyzer, log *zap.Logger) *SurveyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SurveyService{
		store:    store,
		auditor:  auditor,
		workflow: wf,
		analyzer: analyzer,
		log:      log.Named("survey"),
	}
}

// SetMetrics registers m for submission counts.
func (s *SurveyService) SetMetrics(m Metrics) {
	s.metrics = m
}

// SetEmitter registers e for submission events.
func (s *SurveyService) SetEmitter(e telemetry.EventEmitter) {
	s.events = e
}

// Predict scores in with the simple policy. Nothing is persisted.
func (s *SurveyService) Predict(in scoring.SimpleInput) Prediction {
	hours, stress := in.Resolve()
	score := scoring.Simple(hours, stress)
	return Prediction{Risk: scoring.SimpleLabel(score), Score: score}
}

// Analyze scores the five-input questionnaire, preferring the AI scoring service.
func (s *SurveyService) Analyze(ctx context.Context, answers scoring.Answers) aiscoring.Outcome {
	return s.analyzer.Analyze(ctx, answers)
}

// Submit validates in, persists the employee and result in one transaction, then records the result on
// the ledger and triggers the workflow. Only validation (*FieldError) and persistence (*DatabaseError)
// failures are returned; ledger and workflow failures fall back to simulated outcomes.
func (s *SurveyService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	emp := &employeedomain.Employee{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
	}
	for _, f := range []struct{ name, value string }{
		{"name", emp.Name},
		{"email", emp.Email},
		{"department", emp.Department},
	} {
		if f.value == "" {
			return nil, &FieldError{Field: f.name}
		}
	}
	if err := emp.Validate(); err != nil {
		var le *employeedomain.LengthError
		if errors.As(err, &le) {
			return nil, &FieldError{Field: le.Field, Max: le.Max}
		}
		return nil, err
	}

	hours, stress := in.Answers.Resolve()
	score := scoring.Simple(hours, stress)
	res := &burnoutdomain.Result{
		RiskScore:   score,
		Label:       scoring.SimpleLabel(score),
		WorkHours:   hours,
		StressLevel: stress,
	}

	err := s.store.InTx(ctx, func(employees EmployeeRepo, results ResultRepo) error {
		stored, _, err := employees.FindOrCreate(ctx, emp)
		if err != nil {
			return fmt.Errorf("find or create employee: %w", err)
		}
		emp = stored
		res.EmployeeID = emp.ID
		if err := res.Validate(); err != nil {
			return err
		}
		if err := results.Create(ctx, res); err != nil {
			return fmt.Errorf("create result: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("survey submission rolled back", zap.String("email", emp.Email), zap.Error(err))
		return nil, &DatabaseError{Err: err}
	}
	s.log.Info("survey saved", zap.Int64("employee_id", emp.ID), zap.Int64("result_id", res.ID), zap.String("label", res.Label))

	// The submission is committed; the remaining steps must not be cut short by the client going away.
	ctx = context.WithoutCancel(ctx)

	auditOut := s.auditor.Record(ctx, res.Record(emp.Name, emp.Department))
	attached, err := s.store.Results().AttachLedgerRef(ctx, res.ID, auditOut.Reference)
	switch {
	case err != nil:
		s.log.Warn("attach ledger reference failed", zap.Int64("result_id", res.ID), zap.Error(err))
	case attached:
		res.LedgerRef = auditOut.Reference
	}

	wfOut := s.workflow.Run(ctx, res.Record(emp.Name, emp.Department))
	s.log.Info("workflow triggered",
		zap.Int64("result_id", res.ID),
		zap.Bool("delivered", wfOut.Delivered),
		zap.Strings("actions", wfOut.Actions),
	)

	if s.metrics != nil {
		s.metrics.ObserveSubmission(res.Label)
	}
	telemetry.EmitAsync(s.events, telemetrydomain.NewSubmissionEvent(
		emp.ID, res.ID, emp.Department, res.Label, res.RiskScore, auditOut.Delivered, wfOut.Delivered,
	), s.log)

	return &SubmitResult{
		EmployeeID:        emp.ID,
		ResultID:          res.ID,
		Risk:              res.Label,
		Score:             res.RiskScore,
		LedgerRef:         res.LedgerRef,
		LedgerDelivered:   auditOut.Delivered,
		WorkflowDelivered: wfOut.Delivered,
		Actions:           wfOut.Actions,
	}, nil
}

