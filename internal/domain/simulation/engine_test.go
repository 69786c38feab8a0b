package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

func dec(s string) types.Money {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *types.Money {
	v := dec(s)
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestEngine() *Engine {
	return NewEngine(DefaultCosts())
}

func TestSimulate_FullScenario(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:         dec("2500"),
		EmptyKm:          dec("2150"),
		QuotedPrice:      dec("218008.09"),
		RequiresPilotCar: true,
	}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.TotalKm.Equal(dec("4650")), "totalKm = %s", res.TotalKm)
	assert.Equal(t, int64(12), res.TravelDays)

	assert.True(t, res.Fuel.LitersLoaded.Equal(dec("1000")), "litersLoaded = %s", res.Fuel.LitersLoaded)
	assert.True(t, res.Fuel.LitersEmpty.Equal(dec("716.67")), "litersEmpty = %s", res.Fuel.LitersEmpty)
	assert.True(t, res.Fuel.Total.Equal(dec("41200.00")), "fuelCost = %s", res.Fuel.Total)

	assert.True(t, res.TollCost.Equal(dec("25575")), "tollCost = %s", res.TollCost)
	assert.False(t, res.TollsActual)

	assert.True(t, res.PerDiem.Meals.Equal(dec("4320")), "meals = %s", res.PerDiem.Meals)
	assert.True(t, res.PerDiem.FederalFees.Equal(dec("1200")), "federalFees = %s", res.PerDiem.FederalFees)
	assert.True(t, res.PerDiem.Phone.Equal(dec("400")), "phone = %s", res.PerDiem.Phone)
	assert.True(t, res.PerDiem.Misc.Equal(dec("500")), "misc = %s", res.PerDiem.Misc)
	assert.True(t, res.PerDiem.Total.Equal(dec("6420")), "perDiemTotal = %s", res.PerDiem.Total)

	assert.True(t, res.DriverPay.Equal(dec("7200")), "driverPay = %s", res.DriverPay)
	assert.True(t, res.PermitCost.IsZero())

	assert.True(t, res.Subtotal.Equal(dec("80395")), "subtotal = %s", res.Subtotal)
	assert.True(t, res.MaintenanceCost.Equal(dec("20098.75")), "maintenanceCost = %s", res.MaintenanceCost)
	assert.True(t, res.IndirectCost.Equal(dec("16079")), "indirectCost = %s", res.IndirectCost)

	assert.True(t, res.PilotCar.Base.Equal(dec("5000")))
	assert.True(t, res.PilotCar.Fuel.Equal(dec("54000")))
	assert.True(t, res.PilotCar.Tolls.Equal(dec("24000")))
	assert.True(t, res.PilotCar.Meals.Equal(dec("8640")))
	assert.True(t, res.PilotCar.Misc.Equal(dec("500")))
	assert.True(t, res.PilotCar.Total.Equal(dec("92140")), "pilotCarTotal = %s", res.PilotCar.Total)

	assert.True(t, res.TotalCost.Equal(dec("208712.75")), "totalCost = %s", res.TotalCost)
	assert.True(t, res.ExpectedProfit.Equal(dec("9295.34")), "expectedProfit = %s", res.ExpectedProfit)
	assert.True(t, res.MarginPercent.Equal(dec("4.26")), "marginPercent = %s", res.MarginPercent)
	assert.Equal(t, RiskHigh, res.Risk)
}

func TestSimulate_Determinism(t *testing.T) {
	e := newTestEngine()
	vehicleID := id.New()
	driverID := id.New()
	in := Input{
		LoadedKm:         dec("812.5"),
		EmptyKm:          dec("407.3"),
		QuotedPrice:      dec("99000.55"),
		VehicleID:        &vehicleID,
		DriverID:         &driverID,
		RequiresPilotCar: true,
	}
	vehicles := func(ctx context.Context, _ id.ID) (*VehicleProfile, bool) {
		return &VehicleProfile{EfficiencyLoadedKmPerL: dec("2.2"), EfficiencyEmptyKmPerL: dec("3.1")}, true
	}
	drivers := func(ctx context.Context, _ id.ID) (*DriverProfile, bool) {
		return &DriverProfile{PayType: PayPerKm, Rate: dec("4.75")}, true
	}

	first, err := e.Simulate(context.Background(), in, vehicles, drivers)
	require.NoError(t, err)
	second, err := e.Simulate(context.Background(), in, vehicles, drivers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulate_Monotonicity(t *testing.T) {
	e := newTestEngine()
	base := Input{LoadedKm: dec("100"), EmptyKm: dec("50"), QuotedPrice: dec("10000")}
	longer := base
	longer.LoadedKm = dec("250")

	shortRes, err := e.Simulate(context.Background(), base, nil, nil)
	require.NoError(t, err)
	longRes, err := e.Simulate(context.Background(), longer, nil, nil)
	require.NoError(t, err)

	assert.True(t, longRes.Fuel.Total.GreaterThanOrEqual(shortRes.Fuel.Total))
	assert.True(t, longRes.TollCost.GreaterThanOrEqual(shortRes.TollCost))
	assert.True(t, longRes.TotalCost.GreaterThanOrEqual(shortRes.TotalCost))
}

func TestSimulate_ZeroQuotedPrice(t *testing.T) {
	e := newTestEngine()
	in := Input{LoadedKm: dec("500"), EmptyKm: dec("100")}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.MarginPercent.IsZero())
	assert.True(t, res.TotalCost.IsPositive())
	assert.True(t, res.ExpectedProfit.IsNegative())
	assert.Equal(t, RiskHigh, res.Risk)
}

func TestClassifyRisk_Boundaries(t *testing.T) {
	tests := []struct {
		margin string
		want   RiskLevel
	}{
		{"25.00", RiskLow},
		{"30.5", RiskLow},
		{"24.99", RiskMedium},
		{"10.00", RiskMedium},
		{"9.99", RiskHigh},
		{"0", RiskHigh},
		{"-12.4", RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.margin, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(dec(tt.margin)))
		})
	}
}

func TestSimulate_SharesSumToHundred(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:         dec("1200"),
		EmptyKm:          dec("300"),
		QuotedPrice:      dec("85000"),
		PermitCost:       moneyPtr("1500"),
		RequiresPilotCar: true,
	}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	sum := res.Shares.Fuel.
		Add(res.Shares.Tolls).
		Add(res.Shares.PerDiems).
		Add(res.Shares.DriverPay).
		Add(res.Shares.Permits).
		Add(res.Shares.Maintenance).
		Add(res.Shares.Overhead).
		Add(res.Shares.PilotCar)

	diff := sum.Sub(hundred).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.1")), "shares sum = %s", sum)
}

func TestSimulate_PilotCarZeroing(t *testing.T) {
	e := newTestEngine()
	in := Input{LoadedKm: dec("900"), EmptyKm: dec("900"), QuotedPrice: dec("50000")}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.PilotCar.Base.IsZero())
	assert.True(t, res.PilotCar.Fuel.IsZero())
	assert.True(t, res.PilotCar.Tolls.IsZero())
	assert.True(t, res.PilotCar.Meals.IsZero())
	assert.True(t, res.PilotCar.Misc.IsZero())
	assert.True(t, res.PilotCar.Total.IsZero())
	assert.True(t, res.Shares.PilotCar.IsZero())
}

func TestSimulate_PilotCarOverrides(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:         dec("2000"),
		EmptyKm:          dec("0"),
		QuotedPrice:      dec("150000"),
		RequiresPilotCar: true,
		PilotCarDays:     int64Ptr(3),
		PilotCarBaseCost: moneyPtr("8000"),
	}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	// base 8000 + fuel 4500*3 + tolls 2000*3 + meals 240*3*3 + misc 500
	assert.True(t, res.PilotCar.Base.Equal(dec("8000")))
	assert.True(t, res.PilotCar.Fuel.Equal(dec("13500")))
	assert.True(t, res.PilotCar.Tolls.Equal(dec("6000")))
	assert.True(t, res.PilotCar.Meals.Equal(dec("2160")))
	assert.True(t, res.PilotCar.Total.Equal(dec("30160")))
}

func TestSimulate_TollActuals(t *testing.T) {
	e := newTestEngine()

	t.Run("both legs override the estimate", func(t *testing.T) {
		in := Input{
			LoadedKm:    dec("1000"),
			EmptyKm:     dec("1000"),
			QuotedPrice: dec("70000"),
			TollsLoaded: moneyPtr("3100.50"),
			TollsEmpty:  moneyPtr("2899.50"),
		}
		res, err := e.Simulate(context.Background(), in, nil, nil)
		require.NoError(t, err)
		assert.True(t, res.TollCost.Equal(dec("6000.00")))
		assert.True(t, res.TollsActual)
	})

	t.Run("single leg keeps the estimate", func(t *testing.T) {
		in := Input{
			LoadedKm:    dec("1000"),
			EmptyKm:     dec("1000"),
			QuotedPrice: dec("70000"),
			TollsLoaded: moneyPtr("3100.50"),
		}
		res, err := e.Simulate(context.Background(), in, nil, nil)
		require.NoError(t, err)
		assert.True(t, res.TollCost.Equal(dec("11000")), "tollCost = %s", res.TollCost)
		assert.False(t, res.TollsActual)
	})
}

func TestSimulate_PerDiemOverrides(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:            dec("400"),
		EmptyKm:             dec("0"),
		QuotedPrice:         dec("20000"),
		MealCount:           int64Ptr(5),
		MealUnitPrice:       moneyPtr("150"),
		FederalFeeCount:     int64Ptr(2),
		FederalFeeUnitPrice: moneyPtr("90"),
		PhoneCount:          int64Ptr(0),
		MiscPerDiem:         moneyPtr("0"),
	}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.PerDiem.Meals.Equal(dec("750")))
	assert.True(t, res.PerDiem.FederalFees.Equal(dec("180")))
	assert.True(t, res.PerDiem.Phone.IsZero())
	assert.True(t, res.PerDiem.Misc.IsZero())
	assert.True(t, res.PerDiem.Total.Equal(dec("930")))
}

func TestSimulate_TravelDays(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		loadedKm string
		emptyKm  string
		want     int64
	}{
		{"zero distance", "0", "0", 0},
		{"partial day counts full", "1", "0", 1},
		{"exact boundary", "400", "0", 1},
		{"just over boundary", "400", "1", 2},
		{"long haul", "2500", "2150", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{LoadedKm: dec(tt.loadedKm), EmptyKm: dec(tt.emptyKm), QuotedPrice: dec("1000")}
			res, err := e.Simulate(context.Background(), in, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TravelDays)
		})
	}
}

func TestSimulate_DriverPayTypes(t *testing.T) {
	e := newTestEngine()
	driverID := id.New()

	// loaded 2500 + empty 2150 -> 12 travel days
	baseInput := func() Input {
		return Input{
			LoadedKm:    dec("2500"),
			EmptyKm:     dec("2150"),
			QuotedPrice: dec("200000"),
			DriverID:    &driverID,
		}
	}

	tests := []struct {
		name    string
		profile *DriverProfile
		found   bool
		want    string
	}{
		{"per day", &DriverProfile{PayType: PayPerDay, Rate: dec("850")}, true, "10200"},
		{"per km pays loaded leg only", &DriverProfile{PayType: PayPerKm, Rate: dec("3.5")}, true, "8750"},
		{"per trip", &DriverProfile{PayType: PayPerTrip, Rate: dec("9500")}, true, "9500"},
		{"biweekly prorated", &DriverProfile{PayType: PayBiweekly, Rate: dec("15000")}, true, "12000"},
		{"monthly prorated", &DriverProfile{PayType: PayMonthly, Rate: dec("30000")}, true, "12000"},
		{"miss falls back to default", nil, false, "7200"},
		{"zero rate falls back to default", &DriverProfile{PayType: PayPerDay, Rate: dec("0")}, true, "7200"},
		{"unknown pay type falls back to default", &DriverProfile{PayType: "HOURLY", Rate: dec("99")}, true, "7200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drivers := func(ctx context.Context, _ id.ID) (*DriverProfile, bool) {
				return tt.profile, tt.found
			}
			res, err := e.Simulate(context.Background(), baseInput(), nil, drivers)
			require.NoError(t, err)
			assert.True(t, res.DriverPay.Equal(dec(tt.want)), "driverPay = %s", res.DriverPay)
		})
	}
}

func TestSimulate_VehicleLookup(t *testing.T) {
	e := newTestEngine()
	vehicleID := id.New()
	in := Input{
		LoadedKm:    dec("1000"),
		EmptyKm:     dec("600"),
		QuotedPrice: dec("90000"),
		VehicleID:   &vehicleID,
	}

	t.Run("catalog efficiencies win", func(t *testing.T) {
		vehicles := func(ctx context.Context, _ id.ID) (*VehicleProfile, bool) {
			return &VehicleProfile{EfficiencyLoadedKmPerL: dec("2"), EfficiencyEmptyKmPerL: dec("4")}, true
		}
		res, err := e.Simulate(context.Background(), in, vehicles, nil)
		require.NoError(t, err)
		assert.True(t, res.Fuel.LitersLoaded.Equal(dec("500")))
		assert.True(t, res.Fuel.LitersEmpty.Equal(dec("150")))
		assert.True(t, res.Fuel.Total.Equal(dec("15600")))
	})

	t.Run("non-positive catalog value uses default", func(t *testing.T) {
		vehicles := func(ctx context.Context, _ id.ID) (*VehicleProfile, bool) {
			return &VehicleProfile{EfficiencyLoadedKmPerL: dec("0"), EfficiencyEmptyKmPerL: dec("4")}, true
		}
		res, err := e.Simulate(context.Background(), in, vehicles, nil)
		require.NoError(t, err)
		// loaded falls back to 2.5, empty honors the catalog
		assert.True(t, res.Fuel.LitersLoaded.Equal(dec("400")))
		assert.True(t, res.Fuel.LitersEmpty.Equal(dec("150")))
	})

	t.Run("miss uses defaults", func(t *testing.T) {
		vehicles := func(ctx context.Context, _ id.ID) (*VehicleProfile, bool) {
			return nil, false
		}
		res, err := e.Simulate(context.Background(), in, vehicles, nil)
		require.NoError(t, err)
		assert.True(t, res.Fuel.LitersLoaded.Equal(dec("400")))
		assert.True(t, res.Fuel.LitersEmpty.Equal(dec("200")))
	})
}

func TestSimulate_PercentageOverrides(t *testing.T) {
	e := newTestEngine()
	in := Input{
		LoadedKm:           dec("1000"),
		EmptyKm:            dec("0"),
		QuotedPrice:        dec("60000"),
		MaintenancePercent: moneyPtr("10"),
		OverheadPercent:    moneyPtr("0"),
	}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	expectedMaintenance := res.Subtotal.Mul(dec("0.1")).Round(2)
	assert.True(t, res.MaintenanceCost.Equal(expectedMaintenance), "maintenanceCost = %s", res.MaintenanceCost)
	assert.True(t, res.IndirectCost.IsZero())
}

func TestSimulate_ValidationErrors(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		in   Input
	}{
		{"negative loadedKm", Input{LoadedKm: dec("-1"), EmptyKm: dec("0")}},
		{"negative emptyKm", Input{LoadedKm: dec("0"), EmptyKm: dec("-1")}},
		{"negative quotedPrice", Input{LoadedKm: dec("0"), EmptyKm: dec("0"), QuotedPrice: dec("-0.01")}},
		{"negative toll actual", Input{LoadedKm: dec("1"), EmptyKm: dec("1"), TollsLoaded: moneyPtr("-5")}},
		{"negative meal count", Input{LoadedKm: dec("1"), EmptyKm: dec("1"), MealCount: int64Ptr(-1)}},
		{"negative maintenance percent", Input{LoadedKm: dec("1"), EmptyKm: dec("1"), MaintenancePercent: moneyPtr("-25")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Simulate(context.Background(), tt.in, nil, nil)
			require.Error(t, err)
			assert.Nil(t, res)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		})
	}
}

func TestSimulate_TotalCostZeroShares(t *testing.T) {
	e := NewEngine(Defaults{
		FuelPricePerLiter:      decimal.Zero,
		EfficiencyLoadedKmPerL: dec("2.5"),
		EfficiencyEmptyKmPerL:  dec("3"),
		TollCostPerKm:          decimal.Zero,
		KmPerDay:               400,
		MealUnitPrice:          decimal.Zero,
		FederalFeeUnitPrice:    decimal.Zero,
		PhoneUnitPrice:         decimal.Zero,
		MiscPerDiem:            decimal.Zero,
		DriverDayRate:          decimal.Zero,
		MaintenancePercent:     decimal.Zero,
		OverheadPercent:        decimal.Zero,
	})
	in := Input{LoadedKm: dec("0"), EmptyKm: dec("0"), QuotedPrice: dec("0")}

	res, err := e.Simulate(context.Background(), in, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.TotalCost.IsZero())
	assert.True(t, res.Shares.Fuel.IsZero())
	assert.True(t, res.Shares.Maintenance.IsZero())
	assert.True(t, res.MarginPercent.IsZero())
}
