package simulation

import (
	"context"

	"github.com/shopspring/decimal"

	"logiprofit/internal/core/types"
	"logiprofit/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// Engine computes the full cost breakdown for a trip. It is stateless apart
// from the injected default tariffs and safe for concurrent use.
type Engine struct {
	defaults Defaults
}

// NewEngine builds an engine over the given tariff set.
func NewEngine(defaults Defaults) *Engine {
	return &Engine{defaults: defaults}
}

// Defaults exposes the tariff set the engine was built with.
func (e *Engine) Defaults() Defaults {
	return e.defaults
}

// Simulate runs the cost pipeline for one input. Either lookup may be nil,
// in which case the corresponding catalog reference falls back to defaults.
// Intermediate values stay unrounded; only the returned Result is rounded.
func (e *Engine) Simulate(ctx context.Context, in Input, vehicles VehicleLookup, drivers DriverLookup) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := e.defaults

	// Distance
	totalKm := in.TotalKm()

	// Fuel
	effLoaded := d.EfficiencyLoadedKmPerL
	effEmpty := d.EfficiencyEmptyKmPerL
	if in.VehicleID != nil {
		var p *VehicleProfile
		ok := false
		if vehicles != nil {
			p, ok = vehicles(ctx, *in.VehicleID)
		}
		if ok && p != nil {
			if p.EfficiencyLoadedKmPerL.IsPositive() {
				effLoaded = p.EfficiencyLoadedKmPerL
			}
			if p.EfficiencyEmptyKmPerL.IsPositive() {
				effEmpty = p.EfficiencyEmptyKmPerL
			}
		} else {
			logger.Info(ctx, "vehicle not found, using default efficiencies", "vehicle_id", in.VehicleID.String())
		}
	}
	litersLoaded := safeDiv(in.LoadedKm, effLoaded)
	litersEmpty := safeDiv(in.EmptyKm, effEmpty)
	fuelCost := litersLoaded.Add(litersEmpty).Mul(d.FuelPricePerLiter)

	// Tolls: actuals win only when both legs are present
	var tollCost types.Money
	tollsActual := in.TollsLoaded != nil && in.TollsEmpty != nil
	if tollsActual {
		tollCost = in.TollsLoaded.Add(*in.TollsEmpty)
	} else {
		tollCost = totalKm.Mul(d.TollCostPerKm)
	}

	// Trip duration, ceiling so a partial day counts as a full day
	travelDays := ceilDays(totalKm, d.KmPerDay)

	// Per-diems
	mealCount := valueOrInt(in.MealCount, travelDays*d.MealsPerDay)
	mealPrice := valueOrMoney(in.MealUnitPrice, d.MealUnitPrice)
	meals := mealPrice.Mul(decimal.NewFromInt(mealCount))

	fedCount := valueOrInt(in.FederalFeeCount, travelDays)
	fedPrice := valueOrMoney(in.FederalFeeUnitPrice, d.FederalFeeUnitPrice)
	federalFees := fedPrice.Mul(decimal.NewFromInt(fedCount))

	phoneCount := valueOrInt(in.PhoneCount, ceilInt(travelDays, d.PhoneEveryDays))
	phonePrice := valueOrMoney(in.PhoneUnitPrice, d.PhoneUnitPrice)
	phone := phonePrice.Mul(decimal.NewFromInt(phoneCount))

	misc := valueOrMoney(in.MiscPerDiem, d.MiscPerDiem)

	perDiemTotal := meals.Add(federalFees).Add(phone).Add(misc)

	// Driver pay
	driverPay := e.driverPay(ctx, in, travelDays, drivers)

	// Permits
	permitCost := valueOrMoney(in.PermitCost, decimal.Zero)

	// Operating subtotal and percentage overheads
	subtotal := fuelCost.Add(tollCost).Add(perDiemTotal).Add(driverPay).Add(permitCost)
	maintenancePct := valueOrMoney(in.MaintenancePercent, d.MaintenancePercent)
	overheadPct := valueOrMoney(in.OverheadPercent, d.OverheadPercent)
	maintenanceCost := subtotal.Mul(maintenancePct).Div(hundred)
	indirectCost := subtotal.Mul(overheadPct).Div(hundred)

	// Pilot-car escort
	var pilot PilotCarBreakdown
	if in.RequiresPilotCar {
		escortDays := valueOrInt(in.PilotCarDays, travelDays)
		escortDaysDec := decimal.NewFromInt(escortDays)
		pilot.Base = valueOrMoney(in.PilotCarBaseCost, d.PilotCarBaseCost)
		pilot.Fuel = d.PilotCarFuelPerDay.Mul(escortDaysDec)
		pilot.Tolls = d.PilotCarTollsPerDay.Mul(escortDaysDec)
		pilot.Meals = d.PilotCarMealUnit.Mul(escortDaysDec).Mul(decimal.NewFromInt(d.PilotCarMealsPerDay))
		pilot.Misc = d.PilotCarMisc
		pilot.Total = pilot.Base.Add(pilot.Fuel).Add(pilot.Tolls).Add(pilot.Meals).Add(pilot.Misc)
	} else {
		pilot = PilotCarBreakdown{
			Base: decimal.Zero, Fuel: decimal.Zero, Tolls: decimal.Zero,
			Meals: decimal.Zero, Misc: decimal.Zero, Total: decimal.Zero,
		}
	}

	// Total and profitability
	totalCost := subtotal.Add(maintenanceCost).Add(indirectCost).Add(pilot.Total)
	expectedProfit := in.QuotedPrice.Sub(totalCost)
	margin := decimal.Zero
	if in.QuotedPrice.IsPositive() {
		margin = expectedProfit.Div(in.QuotedPrice).Mul(hundred)
	}
	risk := ClassifyRisk(margin)

	shares := costShares(totalCost, fuelCost, tollCost, perDiemTotal, driverPay, permitCost, maintenanceCost, indirectCost, pilot.Total)

	res := &Result{
		TotalKm:    totalKm.Round(2),
		TravelDays: travelDays,
		Fuel: FuelBreakdown{
			LitersLoaded: litersLoaded.Round(2),
			LitersEmpty:  litersEmpty.Round(2),
			PricePerL:    d.FuelPricePerLiter.Round(2),
			Total:        fuelCost.Round(2),
		},
		TollCost:    tollCost.Round(2),
		TollsActual: tollsActual,
		PerDiem: PerDiemBreakdown{
			Meals:       meals.Round(2),
			FederalFees: federalFees.Round(2),
			Phone:       phone.Round(2),
			Misc:        misc.Round(2),
			Total:       perDiemTotal.Round(2),
		},
		DriverPay:  driverPay.Round(2),
		PermitCost: permitCost.Round(2),
		PilotCar: PilotCarBreakdown{
			Base:  pilot.Base.Round(2),
			Fuel:  pilot.Fuel.Round(2),
			Tolls: pilot.Tolls.Round(2),
			Meals: pilot.Meals.Round(2),
			Misc:  pilot.Misc.Round(2),
			Total: pilot.Total.Round(2),
		},
		Subtotal:        subtotal.Round(2),
		MaintenanceCost: maintenanceCost.Round(2),
		IndirectCost:    indirectCost.Round(2),
		TotalCost:       totalCost.Round(2),
		QuotedPrice:     in.QuotedPrice.Round(2),
		ExpectedProfit:  expectedProfit.Round(2),
		MarginPercent:   margin.Round(2),
		Risk:            risk,
		Shares:          shares,
	}
	return res, nil
}

func (e *Engine) driverPay(ctx context.Context, in Input, travelDays int64, drivers DriverLookup) types.Money {
	d := e.defaults
	daysDec := decimal.NewFromInt(travelDays)
	fallback := d.DriverDayRate.Mul(daysDec)
	if in.DriverID == nil {
		return fallback
	}
	var p *DriverProfile
	ok := false
	if drivers != nil {
		p, ok = drivers(ctx, *in.DriverID)
	}
	if !ok || p == nil {
		logger.Info(ctx, "driver not found, using default day rate", "driver_id", in.DriverID.String())
		return fallback
	}
	if !p.Rate.IsPositive() {
		logger.Info(ctx, "driver rate not positive, using default day rate", "driver_id", in.DriverID.String())
		return fallback
	}
	switch p.PayType {
	case PayPerDay:
		return p.Rate.Mul(daysDec)
	case PayPerKm:
		// paid for loaded movement only
		return p.Rate.Mul(in.LoadedKm)
	case PayPerTrip:
		return p.Rate
	case PayBiweekly:
		return p.Rate.Div(decimal.NewFromInt(15)).Mul(daysDec)
	case PayMonthly:
		return p.Rate.Div(decimal.NewFromInt(30)).Mul(daysDec)
	default:
		logger.Info(ctx, "unknown driver pay type, using default day rate",
			"driver_id", in.DriverID.String(), "pay_type", string(p.PayType))
		return fallback
	}
}

func costShares(totalCost, fuel, tolls, perDiems, driverPay, permits, maintenance, overhead, pilotCar types.Money) CostShares {
	if !totalCost.IsPositive() {
		z := decimal.Zero
		return CostShares{Fuel: z, Tolls: z, PerDiems: z, DriverPay: z, Permits: z, Maintenance: z, Overhead: z, PilotCar: z}
	}
	share := func(part types.Money) types.Money {
		return part.Div(totalCost).Mul(hundred).Round(2)
	}
	return CostShares{
		Fuel:        share(fuel),
		Tolls:       share(tolls),
		PerDiems:    share(perDiems),
		DriverPay:   share(driverPay),
		Permits:     share(permits),
		Maintenance: share(maintenance),
		Overhead:    share(overhead),
		PilotCar:    share(pilotCar),
	}
}

func safeDiv(n, d types.Money) types.Money {
	if !d.IsPositive() {
		return decimal.Zero
	}
	return n.Div(d)
}

func ceilDays(totalKm types.Money, kmPerDay int64) int64 {
	if !totalKm.IsPositive() || kmPerDay <= 0 {
		return 0
	}
	days := totalKm.Div(decimal.NewFromInt(kmPerDay)).Ceil().IntPart()
	if days < 1 {
		days = 1
	}
	return days
}

func ceilInt(n, per int64) int64 {
	if per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

func valueOrInt(v *int64, def int64) int64 {
	if v != nil {
		return *v
	}
	return def
}

func valueOrMoney(v *types.Money, def types.Money) types.Money {
	if v != nil {
		return *v
	}
	return def
}
