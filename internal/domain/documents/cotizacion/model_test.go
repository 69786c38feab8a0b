package cotizacion

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/simulation"
)

func dec(s string) types.Money {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *types.Money {
	v := dec(s)
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusApproved, false},
		{StatusSent, StatusApproved, true},
		{StatusSent, StatusRejected, true},
		{StatusSent, StatusCancelled, true},
		{StatusSent, StatusDraft, false},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusSent, false},
		{StatusRejected, StatusSent, true},
		{StatusRejected, StatusCancelled, true},
		{StatusRejected, StatusApproved, false},
		{StatusConverted, StatusCancelled, false},
		{StatusCancelled, StatusSent, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCotizacion_ChangeStatus(t *testing.T) {
	c := NewCotizacion(id.New(), "CDMX", "Monterrey")

	require.NoError(t, c.ChangeStatus(StatusSent))
	require.NoError(t, c.ChangeStatus(StatusApproved))

	err := c.ChangeStatus(StatusSent)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestCotizacion_ChangeStatus_Converted(t *testing.T) {
	c := NewCotizacion(id.New(), "CDMX", "Monterrey")
	c.Status = StatusConverted

	err := c.ChangeStatus(StatusCancelled)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuoteConverted, appErr.Code)
}

func TestCotizacion_MarkConverted(t *testing.T) {
	fleteID := id.New()

	t.Run("approved converts once", func(t *testing.T) {
		c := NewCotizacion(id.New(), "CDMX", "Monterrey")
		c.Status = StatusApproved

		require.NoError(t, c.MarkConverted(fleteID))
		assert.Equal(t, StatusConverted, c.Status)
		require.NotNil(t, c.ConvertedFleteID)
		assert.Equal(t, fleteID, *c.ConvertedFleteID)

		err := c.MarkConverted(id.New())
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeQuoteConverted, appErr.Code)
	})

	t.Run("draft does not convert", func(t *testing.T) {
		c := NewCotizacion(id.New(), "CDMX", "Monterrey")
		err := c.MarkConverted(fleteID)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
	})
}

func TestCotizacion_ApplySimulation(t *testing.T) {
	e := simulation.NewEngine(simulation.DefaultCosts())
	in := simulation.Input{
		LoadedKm:         dec("2500"),
		EmptyKm:          dec("2150"),
		QuotedPrice:      dec("218008.09"),
		RequiresPilotCar: true,
	}
	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	c := NewCotizacion(id.New(), "CDMX", "Monterrey")
	c.ApplySimulation(in, res)

	assert.True(t, c.LoadedKm.Equal(dec("2500")))
	assert.True(t, c.TotalKm.Equal(dec("4650")))
	assert.Equal(t, int64(12), c.TravelDays)
	assert.True(t, c.FuelCost.Equal(dec("41200.00")))
	assert.True(t, c.TollCost.Equal(dec("25575")))
	assert.True(t, c.PerDiemTotal.Equal(dec("6420")))
	assert.True(t, c.DriverPay.Equal(dec("7200")))
	assert.True(t, c.PilotCarTotal.Equal(dec("92140")))
	assert.True(t, c.TotalCost.Equal(dec("208712.75")))
	assert.True(t, c.ExpectedProfit.Equal(dec("9295.34")))
	assert.Equal(t, simulation.RiskHigh, c.RiskLevel)
	assert.True(t, c.Params.RequiresPilotCar)
	assert.True(t, c.Breakdown.Subtotal.Equal(dec("80395")))
}

func TestCotizacion_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := NewCotizacion(id.New(), "CDMX", "Monterrey")
		assert.NoError(t, c.Validate(context.Background()))
	})

	t.Run("missing client", func(t *testing.T) {
		c := NewCotizacion(id.Nil(), "CDMX", "Monterrey")
		assert.Error(t, c.Validate(context.Background()))
	})

	t.Run("missing route", func(t *testing.T) {
		c := NewCotizacion(id.New(), "", "Monterrey")
		assert.Error(t, c.Validate(context.Background()))
	})
}

func TestUpdatePatch_RequiresRecompute(t *testing.T) {
	tests := []struct {
		name  string
		patch UpdatePatch
		want  bool
	}{
		{"empty", UpdatePatch{}, false},
		{"descriptive only", UpdatePatch{Origin: strPtr("Puebla"), Comment: strPtr("urgent")}, false},
		{"toll actuals only", UpdatePatch{TollsLoaded: moneyPtr("100"), TollsEmpty: moneyPtr("90")}, false},
		{"loadedKm", UpdatePatch{LoadedKm: moneyPtr("3000")}, true},
		{"emptyKm", UpdatePatch{EmptyKm: moneyPtr("100")}, true},
		{"quotedPrice", UpdatePatch{QuotedPrice: moneyPtr("250000")}, true},
		{"pilot car toggle", UpdatePatch{RequiresPilotCar: boolPtr(false)}, true},
		{"maintenance percent", UpdatePatch{MaintenancePercent: moneyPtr("30")}, true},
		{"overhead percent", UpdatePatch{OverheadPercent: moneyPtr("15")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.RequiresRecompute())
		})
	}
}

func TestUpdatePatch_MergeParams(t *testing.T) {
	vehicleID := id.New()
	stored := simulation.Input{
		LoadedKm:         dec("2500"),
		EmptyKm:          dec("2150"),
		QuotedPrice:      dec("218008.09"),
		RequiresPilotCar: true,
		MiscPerDiem:      moneyPtr("750"),
	}

	patch := UpdatePatch{
		LoadedKm:  moneyPtr("3000"),
		VehicleID: &vehicleID,
	}
	merged := patch.MergeParams(stored)

	// patched fields win
	assert.True(t, merged.LoadedKm.Equal(dec("3000")))
	require.NotNil(t, merged.VehicleID)
	assert.Equal(t, vehicleID, *merged.VehicleID)

	// absent fields keep stored values
	assert.True(t, merged.EmptyKm.Equal(dec("2150")))
	assert.True(t, merged.QuotedPrice.Equal(dec("218008.09")))
	assert.True(t, merged.RequiresPilotCar)
	require.NotNil(t, merged.MiscPerDiem)
	assert.True(t, merged.MiscPerDiem.Equal(dec("750")))

	// stored snapshot untouched
	assert.True(t, stored.LoadedKm.Equal(dec("2500")))
	assert.Nil(t, stored.VehicleID)
}
