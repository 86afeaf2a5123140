package workflow

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const rulesQuery = "data.wellmind.workflow.actions"

// DefaultPolicy maps a risk score to follow-up actions. Operators may replace it via WORKFLOW_POLICY_FILE;
// a replacement must define data.wellmind.workflow.actions as an array of strings.
const DefaultPolicy = `package wellmind.workflow

default actions := []

actions := ["urgent_hr_alert", "manager_notification", "schedule_1on1"] if {
	input.risk_score > 80
}

actions := ["hr_notification", "wellness_resources_email"] if {
	input.risk_score > 60
	input.risk_score <= 80
}

actions := ["wellness_nudge"] if {
	input.risk_score > 40
	input.risk_score <= 60
}
`

// Rules decides which follow-up actions a risk score calls for.
type Rules interface {
	Actions(ctx context.Context, score int, label string) ([]string, error)
}

// OPARules evaluates a Rego policy compiled once at construction.
type OPARules struct {
	query rego.PreparedEvalQuery
}

// NewOPARules compiles policy (DefaultPolicy when empty) and prepares the actions query.
func NewOPARules(ctx context.Context, policy string) (*OPARules, error) {
	if policy == "" {
		policy = DefaultPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{"workflow.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("compile workflow policy: %w", err)
	}
	pq, err := rego.New(
		rego.Query(rulesQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare workflow policy: %w", err)
	}
	return &OPARules{query: pq}, nil
}

// LoadOPARules reads a policy from path, or uses DefaultPolicy when path is empty.
func LoadOPARules(ctx context.Context, path string) (*OPARules, error) {
	if path == "" {
		return NewOPARules(ctx, "")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow policy: %w", err)
	}
	return NewOPARules(ctx, string(raw))
}

// Actions evaluates the policy for score and label.
func (r *OPARules) Actions(ctx context.Context, score int, label string) ([]string, error) {
	rs, err := r.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"risk_score": score,
		"label":      label,
	}))
	if err != nil {
		return nil, fmt.Errorf("eval workflow policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return nil, fmt.Errorf("workflow policy returned no result")
	}
	raw, ok := rs[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("workflow policy: actions is %T, want array", rs[0].Expressions[0].Value)
	}
	actions := make([]string, 0, len(raw))
	for _, a := range raw {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("workflow policy: action %v is not a string", a)
		}
		actions = append(actions, s)
	}
	return actions, nil
}

// HealthCheck verifies the prepared policy evaluates for a sample input.
func (r *OPARules) HealthCheck(ctx context.Context) error {
	_, err := r.Actions(ctx, 50, "Medium")
	return err
}

// TableActions is the built-in rule table used when no policy can be evaluated.
func TableActions(score int) []string {
	switch {
	case score > 80:
		return []string{"urgent_hr_alert", "manager_notification", "schedule_1on1"}
	case score > 60:
		return []string{"hr_notification", "wellness_resources_email"}
	case score > 40:
		return []string{"wellness_nudge"}
	default:
		return []string{}
	}
}
