package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/domain/simulation"
)

func result(margin, totalCost string, risk simulation.RiskLevel) *simulation.Result {
	return &simulation.Result{
		MarginPercent:  decimal.RequireFromString(margin),
		TotalCost:      decimal.RequireFromString(totalCost),
		QuotedPrice:    decimal.RequireFromString(totalCost),
		ExpectedProfit: decimal.Zero,
		TotalKm:        decimal.NewFromInt(1000),
		TravelDays:     3,
		Risk:           risk,
	}
}

func TestReviewPolicy_Default(t *testing.T) {
	p, err := NewReviewPolicy(DefaultReviewExpr)
	require.NoError(t, err)

	tests := []struct {
		name string
		res  *simulation.Result
		want bool
	}{
		{"thin margin flagged", result("4.26", "208712.75", simulation.RiskHigh), true},
		{"healthy margin passes", result("28.5", "120000", simulation.RiskLow), false},
		{"large quote flagged despite margin", result("30", "750000", simulation.RiskLow), true},
		{"boundary margin passes", result("10.0", "100000", simulation.RiskMedium), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagged, err := p.Evaluate(tt.res, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flagged)
		})
	}
}

func TestReviewPolicy_CustomExpressions(t *testing.T) {
	t.Run("risk and escort rule", func(t *testing.T) {
		p, err := NewReviewPolicy(`risk == "HIGH" && requires_pilot_car`)
		require.NoError(t, err)

		flagged, err := p.Evaluate(result("5", "100000", simulation.RiskHigh), true)
		require.NoError(t, err)
		assert.True(t, flagged)

		flagged, err = p.Evaluate(result("5", "100000", simulation.RiskHigh), false)
		require.NoError(t, err)
		assert.False(t, flagged)
	})

	t.Run("travel days rule", func(t *testing.T) {
		p, err := NewReviewPolicy(`travel_days > 10`)
		require.NoError(t, err)

		flagged, err := p.Evaluate(result("15", "100000", simulation.RiskMedium), false)
		require.NoError(t, err)
		assert.False(t, flagged)
	})
}

func TestReviewPolicy_CompileErrors(t *testing.T) {
	_, err := NewReviewPolicy(`margin_percent <`)
	assert.Error(t, err)

	_, err = NewReviewPolicy(`total_cost + 1.0`)
	assert.Error(t, err, "non-boolean output must be rejected")

	_, err = NewReviewPolicy(`unknown_var == 1`)
	assert.Error(t, err)
}
