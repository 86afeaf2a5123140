// Package workflow notifies the HR automation service about a scored result. When the service is not
// configured or fails, follow-up actions are derived locally from the workflow rules instead.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
)

// StatusTriggered is the status reported by simulated workflow runs.
const StatusTriggered = "triggered"

// Observer receives one call per Run with whether the automation service accepted the trigger.
type Observer interface {
	ObserveExternal(integration string, delivered bool)
}

// Outcome is the result of one workflow trigger.
type Outcome struct {
	// Response is the service's JSON response, or the simulated response on fallback.
	Response json.RawMessage
	// Delivered is true when the automation service accepted the trigger.
	Delivered bool
	// Actions lists the follow-up actions, when known.
	Actions []string
}

// Simulated is the response body produced by the local fallback.
type Simulated struct {
	WorkflowID string   `json:"workflow_id"`
	Status     string   `json:"status"`
	Actions    []string `json:"actions"`
	Level      string   `json:"level"`
}

// Trigger implements the workflow step of a submission.
type Trigger struct {
	client   *Client
	rules    Rules
	limiter  *rate.Limiter
	timeout  time.Duration
	log      *zap.Logger
	observer Observer
}

// NewTrigger returns a Trigger. client may be nil to always use the local rules; rules may be nil to
// use TableActions only. ratePerSec bounds outbound calls (burst equal to rate); zero disables limiting.
func NewTrigger(client *Client, rules Rules, ratePerSec int, timeout time.Duration, log *zap.Logger) *Trigger {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	t := &Trigger{client: client, rules: rules, timeout: timeout, log: log.Named("workflow")}
	if ratePerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)
	}
	return t
}

// SetObserver registers o for delivery outcomes.
func (t *Trigger) SetObserver(o Observer) {
	t.observer = o
}

// Run triggers the workflow for rec. It never fails: any service error yields the simulated response.
func (t *Trigger) Run(ctx context.Context, rec domain.Record) Outcome {
	if t.client != nil {
		out, err := t.deliver(ctx, rec)
		if err == nil {
			return t.done(out)
		}
		t.log.Warn("automation service failed, using local rules",
			zap.String("component", "workflow"),
			zap.Int64("record_id", rec.ID),
			zap.Error(err))
	}
	return t.done(t.simulate(ctx, rec))
}

func (t *Trigger) deliver(ctx context.Context, rec domain.Record) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return Outcome{}, fmt.Errorf("rate limit: %w", err)
		}
	}
	resp, err := t.client.Trigger(ctx, Request{
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName(rec.EmployeeName),
		RiskScore:    rec.RiskScore,
		Label:        rec.Label,
		Timestamp:    rec.SubmittedAt,
	})
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Response: resp, Delivered: true}
	if actions := gjson.GetBytes(resp, "actions"); actions.IsArray() {
		for _, a := range actions.Array() {
			out.Actions = append(out.Actions, a.String())
		}
	}
	t.log.Info("workflow triggered", zap.Int64("record_id", rec.ID), zap.String("workflow_id", gjson.GetBytes(resp, "workflow_id").String()))
	return out, nil
}

// simulate returns the locally derived outcome for rec without contacting the service.
func (t *Trigger) simulate(ctx context.Context, rec domain.Record) Outcome {
	actions := TableActions(rec.RiskScore)
	if t.rules != nil {
		got, err := t.rules.Actions(ctx, rec.RiskScore, rec.Label)
		if err != nil {
			t.log.Warn("workflow policy failed, using rule table", zap.Int64("record_id", rec.ID), zap.Error(err))
		} else {
			actions = got
		}
	}
	body, _ := json.Marshal(Simulated{
		WorkflowID: fmt.Sprintf("sim_%d", rec.ID),
		Status:     StatusTriggered,
		Actions:    actions,
		Level:      rec.Label,
	})
	return Outcome{Response: body, Actions: actions}
}

func (t *Trigger) done(out Outcome) Outcome {
	if t.observer != nil {
		t.observer.ObserveExternal("workflow", out.Delivered)
	}
	return out
}

func employeeName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
