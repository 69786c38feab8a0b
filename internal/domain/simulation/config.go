package simulation

import (
	"github.com/shopspring/decimal"

	"logiprofit/internal/core/types"
)

// Defaults holds the cost constants the engine falls back to when the caller
// supplies no override and no catalog entry resolves. Modeled as an explicit
// injected struct (not global state) so a future per-tenant tariff table can
// replace it without touching engine code.
type Defaults struct {
	// Fuel
	FuelPricePerLiter      types.Money // currency units per liter
	EfficiencyLoadedKmPerL types.Money // loaded tractor-trailer average
	EfficiencyEmptyKmPerL  types.Money // returning empty

	// Tolls (estimate when no actuals supplied)
	TollCostPerKm types.Money

	// Trip duration anchor
	KmPerDay int64

	// Per-diems
	MealsPerDay         int64
	MealUnitPrice       types.Money
	FederalFeeUnitPrice types.Money // one per travel day
	PhoneEveryDays      int64       // one phone card per N days
	PhoneUnitPrice      types.Money
	MiscPerDiem         types.Money // flat, no count/price split

	// Driver pay when no driver resolves
	DriverDayRate types.Money

	// Percentage overheads applied to the operating subtotal
	MaintenancePercent types.Money
	OverheadPercent    types.Money

	// Pilot-car escort
	PilotCarBaseCost     types.Money
	PilotCarFuelPerDay   types.Money
	PilotCarTollsPerDay  types.Money
	PilotCarMealsPerDay  int64
	PilotCarMealUnit     types.Money
	PilotCarMisc         types.Money
}

// DefaultCosts returns the stock tariff set.
func DefaultCosts() Defaults {
	return Defaults{
		FuelPricePerLiter:      decimal.NewFromInt(24),
		EfficiencyLoadedKmPerL: decimal.RequireFromString("2.5"),
		EfficiencyEmptyKmPerL:  decimal.NewFromInt(3),

		TollCostPerKm: decimal.RequireFromString("5.5"),

		KmPerDay: 400,

		MealsPerDay:         3,
		MealUnitPrice:       decimal.NewFromInt(120),
		FederalFeeUnitPrice: decimal.NewFromInt(100),
		PhoneEveryDays:      3,
		PhoneUnitPrice:      decimal.NewFromInt(100),
		MiscPerDiem:         decimal.NewFromInt(500),

		DriverDayRate: decimal.NewFromInt(600),

		MaintenancePercent: decimal.NewFromInt(25),
		OverheadPercent:    decimal.NewFromInt(20),

		PilotCarBaseCost:    decimal.NewFromInt(5000),
		PilotCarFuelPerDay:  decimal.NewFromInt(4500),
		PilotCarTollsPerDay: decimal.NewFromInt(2000),
		PilotCarMealsPerDay: 3,
		PilotCarMealUnit:    decimal.NewFromInt(240),
		PilotCarMisc:        decimal.NewFromInt(500),
	}
}
