// Package policy evaluates configurable review rules over simulation results.
// Rules are CEL expressions so operations can tune when a quote needs manual
// review without a redeploy.
package policy

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"logiprofit/internal/domain/simulation"
)

// DefaultReviewExpr flags thin-margin or unusually large quotes.
const DefaultReviewExpr = `margin_percent < 10.0 || total_cost > 500000.0`

// ReviewPolicy decides whether a freshly simulated quote requires manual
// review before it may be sent. Compiled once, safe for concurrent use.
type ReviewPolicy struct {
	expr string
	prog cel.Program
}

// NewReviewPolicy compiles expr against the quote evaluation environment.
// The expression must produce a boolean.
func NewReviewPolicy(expr string) (*ReviewPolicy, error) {
	env, err := cel.NewEnv(
		cel.Variable("margin_percent", cel.DoubleType),
		cel.Variable("expected_profit", cel.DoubleType),
		cel.Variable("total_cost", cel.DoubleType),
		cel.Variable("quoted_price", cel.DoubleType),
		cel.Variable("total_km", cel.DoubleType),
		cel.Variable("travel_days", cel.IntType),
		cel.Variable("risk", cel.StringType),
		cel.Variable("requires_pilot_car", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("compile review expression: %w", iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("review expression must produce bool, got %s", ast.OutputType())
	}

	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build review program: %w", err)
	}
	return &ReviewPolicy{expr: expr, prog: prog}, nil
}

// MustReviewPolicy panics on a bad expression. For static built-in rules.
func MustReviewPolicy(expr string) *ReviewPolicy {
	p, err := NewReviewPolicy(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the source expression.
func (p *ReviewPolicy) Expr() string {
	return p.expr
}

// Evaluate reports whether the result trips the review rule.
func (p *ReviewPolicy) Evaluate(res *simulation.Result, requiresPilotCar bool) (bool, error) {
	out, _, err := p.prog.Eval(map[string]any{
		"margin_percent":     res.MarginPercent.InexactFloat64(),
		"expected_profit":    res.ExpectedProfit.InexactFloat64(),
		"total_cost":         res.TotalCost.InexactFloat64(),
		"quoted_price":       res.QuotedPrice.InexactFloat64(),
		"total_km":           res.TotalKm.InexactFloat64(),
		"travel_days":        res.TravelDays,
		"risk":               string(res.Risk),
		"requires_pilot_car": requiresPilotCar,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate review expression: %w", err)
	}
	flagged, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("review expression produced %T, want bool", out.Value())
	}
	return flagged, nil
}
