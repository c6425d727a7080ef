package policy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"

	"github.com/macropower/folio/pkg/expr"
	"github.com/macropower/folio/pkg/paginator"
)

// ErrRuleNotCompiled is returned when a rule is evaluated before it was
// compiled.
var ErrRuleNotCompiled = errors.New("rule not compiled")

var env = expr.MustNewEnvironment(
	cel.Variable("proposed", cel.MapType(cel.StringType, cel.IntType)),
	cel.Variable("before", cel.MapType(cel.StringType, cel.IntType)),
)

// Rule is a named CEL expression that must evaluate to true for a change to
// be approved.
//
// Examples:
//   - proposed.rowsPerPage <= 500
//   - proposed.page <= 100 || before.page > 100
//   - totalPages(proposed.rowsPerPage, proposed.totalRecords) != UNLIMITED
type Rule struct {
	program cel.Program

	// Name identifies the rule in denials.
	Name string `json:"name" jsonschema:"title=Name"`
	// Allow is a CEL expression returning true when the change is allowed.
	Allow string `json:"allow" jsonschema:"title=Allow Expression,required"`
}

// NewRule creates and compiles a new [Rule].
func NewRule(name, allow string) (*Rule, error) {
	r := &Rule{Name: name, Allow: allow}

	err := r.Compile()
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}

	return r, nil
}

// MustNewRule creates a new [Rule] and panics on error.
func MustNewRule(name, allow string) *Rule {
	r, err := NewRule(name, allow)
	if err != nil {
		panic(err)
	}

	return r
}

// Compile compiles the rule's expression.
func (r *Rule) Compile() error {
	if r.program != nil {
		return nil
	}

	program, err := env.Compile(r.Allow)
	if err != nil {
		return err
	}

	r.program = program

	return nil
}

// Allows evaluates the rule against a proposed change.
func (r *Rule) Allows(ps paginator.ProposedState) (bool, error) {
	if r.program == nil {
		return false, fmt.Errorf("%q: %w", r.Name, ErrRuleNotCompiled)
	}

	ok, err := expr.EvalBool(r.program, map[string]any{
		"proposed": StateVars(ps.State),
		"before":   StateVars(ps.Before),
	})
	if err != nil {
		return false, fmt.Errorf("%q: %w", r.Name, err)
	}

	return ok, nil
}

// Decision is the result of evaluating a [Policy].
type Decision struct {
	// Err is set when a rule failed to evaluate. Such requests are denied.
	Err error
	// Rule names the rule that denied the change.
	Rule    string
	Allowed bool
}

// Policy is an ordered set of rules. A change is approved when every rule
// allows it. An empty policy approves everything.
type Policy struct {
	Rules []*Rule `json:"rules,omitempty" jsonschema:"title=Rules"`
}

// New creates a new [Policy].
func New(rules ...*Rule) *Policy {
	return &Policy{Rules: rules}
}

// Compile compiles every rule.
func (p *Policy) Compile() error {
	for _, r := range p.Rules {
		err := r.Compile()
		if err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}

	return nil
}

// Evaluate returns the decision for a proposed change. Evaluation stops at the
// first denying rule.
func (p *Policy) Evaluate(ps paginator.ProposedState) Decision {
	if p == nil {
		return Decision{Allowed: true}
	}

	for _, r := range p.Rules {
		ok, err := r.Allows(ps)
		if err != nil {
			slog.Warn("policy rule failed", slog.String("rule", r.Name), slog.Any("err", err))

			return Decision{Rule: r.Name, Err: err}
		}

		if !ok {
			return Decision{Rule: r.Name}
		}
	}

	return Decision{Allowed: true}
}

// StateVars converts a [paginator.State] to CEL variables.
func StateVars(s paginator.State) map[string]int64 {
	return map[string]int64{
		"page":         int64(s.Page),
		"rowsPerPage":  int64(s.RowsPerPage),
		"totalRecords": int64(s.TotalRecords),
		"recordOffset": int64(s.RecordOffset),
	}
}
