package simulation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

// Input and Result are persisted as JSONB snapshots on quotes, so a
// serialize/deserialize cycle must reproduce every numeric field exactly.

func assertMoneyEqual(t *testing.T, name string, want, got types.Money) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s: want %s, got %s", name, want, got)
}

func TestResultSnapshotRoundTrip(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:         dec("2500"),
		EmptyKm:          dec("2150"),
		QuotedPrice:      dec("218008.09"),
		MealCount:        int64Ptr(14),
		MealUnitPrice:    moneyPtr("135.50"),
		MiscPerDiem:      moneyPtr("750.25"),
		PermitCost:       moneyPtr("1200.75"),
		RequiresPilotCar: true,
	}

	orig, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Result
	require.NoError(t, json.Unmarshal(raw, &got))

	assertMoneyEqual(t, "totalKm", orig.TotalKm, got.TotalKm)
	assert.Equal(t, orig.TravelDays, got.TravelDays)

	assertMoneyEqual(t, "fuel.litersLoaded", orig.Fuel.LitersLoaded, got.Fuel.LitersLoaded)
	assertMoneyEqual(t, "fuel.litersEmpty", orig.Fuel.LitersEmpty, got.Fuel.LitersEmpty)
	assertMoneyEqual(t, "fuel.pricePerLiter", orig.Fuel.PricePerL, got.Fuel.PricePerL)
	assertMoneyEqual(t, "fuel.total", orig.Fuel.Total, got.Fuel.Total)

	assertMoneyEqual(t, "tollCost", orig.TollCost, got.TollCost)
	assert.Equal(t, orig.TollsActual, got.TollsActual)

	assertMoneyEqual(t, "perDiem.meals", orig.PerDiem.Meals, got.PerDiem.Meals)
	assertMoneyEqual(t, "perDiem.federalFees", orig.PerDiem.FederalFees, got.PerDiem.FederalFees)
	assertMoneyEqual(t, "perDiem.phone", orig.PerDiem.Phone, got.PerDiem.Phone)
	assertMoneyEqual(t, "perDiem.misc", orig.PerDiem.Misc, got.PerDiem.Misc)
	assertMoneyEqual(t, "perDiem.total", orig.PerDiem.Total, got.PerDiem.Total)

	assertMoneyEqual(t, "driverPay", orig.DriverPay, got.DriverPay)
	assertMoneyEqual(t, "permitCost", orig.PermitCost, got.PermitCost)

	assertMoneyEqual(t, "pilotCar.base", orig.PilotCar.Base, got.PilotCar.Base)
	assertMoneyEqual(t, "pilotCar.fuel", orig.PilotCar.Fuel, got.PilotCar.Fuel)
	assertMoneyEqual(t, "pilotCar.tolls", orig.PilotCar.Tolls, got.PilotCar.Tolls)
	assertMoneyEqual(t, "pilotCar.meals", orig.PilotCar.Meals, got.PilotCar.Meals)
	assertMoneyEqual(t, "pilotCar.misc", orig.PilotCar.Misc, got.PilotCar.Misc)
	assertMoneyEqual(t, "pilotCar.total", orig.PilotCar.Total, got.PilotCar.Total)

	assertMoneyEqual(t, "subtotal", orig.Subtotal, got.Subtotal)
	assertMoneyEqual(t, "maintenanceCost", orig.MaintenanceCost, got.MaintenanceCost)
	assertMoneyEqual(t, "indirectCost", orig.IndirectCost, got.IndirectCost)
	assertMoneyEqual(t, "totalCost", orig.TotalCost, got.TotalCost)

	assertMoneyEqual(t, "quotedPrice", orig.QuotedPrice, got.QuotedPrice)
	assertMoneyEqual(t, "expectedProfit", orig.ExpectedProfit, got.ExpectedProfit)
	assertMoneyEqual(t, "marginPercent", orig.MarginPercent, got.MarginPercent)
	assert.Equal(t, orig.Risk, got.Risk)

	assertMoneyEqual(t, "shares.fuel", orig.Shares.Fuel, got.Shares.Fuel)
	assertMoneyEqual(t, "shares.tolls", orig.Shares.Tolls, got.Shares.Tolls)
	assertMoneyEqual(t, "shares.perDiems", orig.Shares.PerDiems, got.Shares.PerDiems)
	assertMoneyEqual(t, "shares.driverPay", orig.Shares.DriverPay, got.Shares.DriverPay)
	assertMoneyEqual(t, "shares.permits", orig.Shares.Permits, got.Shares.Permits)
	assertMoneyEqual(t, "shares.maintenance", orig.Shares.Maintenance, got.Shares.Maintenance)
	assertMoneyEqual(t, "shares.overhead", orig.Shares.Overhead, got.Shares.Overhead)
	assertMoneyEqual(t, "shares.pilotCar", orig.Shares.PilotCar, got.Shares.PilotCar)
}

func TestInputSnapshotRoundTrip(t *testing.T) {
	vehicleID := id.New()
	driverID := id.New()

	orig := Input{
		LoadedKm:            dec("1234.56"),
		EmptyKm:             dec("789.01"),
		QuotedPrice:         dec("98765.43"),
		VehicleID:           &vehicleID,
		DriverID:            &driverID,
		TollsLoaded:         moneyPtr("3100.50"),
		TollsEmpty:          moneyPtr("2899.50"),
		MealCount:           int64Ptr(9),
		MealUnitPrice:       moneyPtr("120.00"),
		FederalFeeCount:     int64Ptr(3),
		FederalFeeUnitPrice: moneyPtr("100.00"),
		PhoneCount:          int64Ptr(2),
		PhoneUnitPrice:      moneyPtr("50.00"),
		MiscPerDiem:         moneyPtr("500.00"),
		PermitCost:          moneyPtr("1500.25"),
		MaintenancePercent:  moneyPtr("27.5"),
		OverheadPercent:     moneyPtr("18"),
		RequiresPilotCar:    true,
		PilotCarDays:        int64Ptr(4),
		PilotCarBaseCost:    moneyPtr("6000.00"),
	}

	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Input
	require.NoError(t, json.Unmarshal(raw, &got))

	assertMoneyEqual(t, "loadedKm", orig.LoadedKm, got.LoadedKm)
	assertMoneyEqual(t, "emptyKm", orig.EmptyKm, got.EmptyKm)
	assertMoneyEqual(t, "quotedPrice", orig.QuotedPrice, got.QuotedPrice)

	require.NotNil(t, got.VehicleID)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, vehicleID, *got.VehicleID)
	assert.Equal(t, driverID, *got.DriverID)

	for name, pair := range map[string][2]*types.Money{
		"tollsLoaded":         {orig.TollsLoaded, got.TollsLoaded},
		"tollsEmpty":          {orig.TollsEmpty, got.TollsEmpty},
		"mealUnitPrice":       {orig.MealUnitPrice, got.MealUnitPrice},
		"federalFeeUnitPrice": {orig.FederalFeeUnitPrice, got.FederalFeeUnitPrice},
		"phoneUnitPrice":      {orig.PhoneUnitPrice, got.PhoneUnitPrice},
		"miscPerDiem":         {orig.MiscPerDiem, got.MiscPerDiem},
		"permitCost":          {orig.PermitCost, got.PermitCost},
		"maintenancePercent":  {orig.MaintenancePercent, got.MaintenancePercent},
		"overheadPercent":     {orig.OverheadPercent, got.OverheadPercent},
		"pilotCarBaseCost":    {orig.PilotCarBaseCost, got.PilotCarBaseCost},
	} {
		require.NotNil(t, pair[1], name)
		assertMoneyEqual(t, name, *pair[0], *pair[1])
	}

	assert.Equal(t, orig.MealCount, got.MealCount)
	assert.Equal(t, orig.FederalFeeCount, got.FederalFeeCount)
	assert.Equal(t, orig.PhoneCount, got.PhoneCount)
	assert.Equal(t, orig.RequiresPilotCar, got.RequiresPilotCar)
	assert.Equal(t, orig.PilotCarDays, got.PilotCarDays)
}
