package simulation

import (
	"context"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

// PayType selects how a driver's pay converts into a per-trip cost.
type PayType string

const (
	PayPerDay   PayType = "PER_DAY"
	PayPerKm    PayType = "PER_KM"
	PayPerTrip  PayType = "PER_TRIP"
	PayBiweekly PayType = "BIWEEKLY"
	PayMonthly  PayType = "MONTHLY"
)

// Valid reports whether the pay type is one of the known settlement schemes.
func (p PayType) Valid() bool {
	switch p {
	case PayPerDay, PayPerKm, PayPerTrip, PayBiweekly, PayMonthly:
		return true
	}
	return false
}

// VehicleProfile carries the cost-relevant slice of a vehicle catalog entry.
type VehicleProfile struct {
	EfficiencyLoadedKmPerL types.Money
	EfficiencyEmptyKmPerL  types.Money
}

// DriverProfile carries the cost-relevant slice of a driver catalog entry.
type DriverProfile struct {
	PayType PayType
	Rate    types.Money
}

// VehicleLookup resolves a vehicle profile by catalog id. The bool result
// distinguishes a miss from a zero-valued profile. Lookups must not return
// errors: hard storage failures are surfaced before the engine runs, and a
// miss simply falls back to defaults.
type VehicleLookup func(ctx context.Context, vehicleID id.ID) (*VehicleProfile, bool)

// DriverLookup resolves a driver profile by catalog id.
type DriverLookup func(ctx context.Context, driverID id.ID) (*DriverProfile, bool)

// Input is the full parameter set for one simulation run. It doubles as the
// persisted snapshot on a quote, so every field is serializable and pointer
// fields mean "not provided, use catalog or default".
type Input struct {
	LoadedKm types.Money `json:"loadedKm"`
	EmptyKm  types.Money `json:"emptyKm"`

	QuotedPrice types.Money `json:"quotedPrice"`

	VehicleID *id.ID `json:"vehicleId,omitempty"`
	DriverID  *id.ID `json:"driverId,omitempty"`

	// Toll actuals. When both legs are supplied they replace the per-km
	// estimate; a single leg alone is not enough.
	TollsLoaded *types.Money `json:"tollsLoaded,omitempty"`
	TollsEmpty  *types.Money `json:"tollsEmpty,omitempty"`

	// Per-diem overrides, each category independently count x unit price.
	MealCount           *int64       `json:"mealCount,omitempty"`
	MealUnitPrice       *types.Money `json:"mealUnitPrice,omitempty"`
	FederalFeeCount     *int64       `json:"federalFeeCount,omitempty"`
	FederalFeeUnitPrice *types.Money `json:"federalFeeUnitPrice,omitempty"`
	PhoneCount          *int64       `json:"phoneCount,omitempty"`
	PhoneUnitPrice      *types.Money `json:"phoneUnitPrice,omitempty"`
	MiscPerDiem         *types.Money `json:"miscPerDiem,omitempty"`

	PermitCost *types.Money `json:"permitCost,omitempty"`

	MaintenancePercent *types.Money `json:"maintenancePercent,omitempty"`
	OverheadPercent    *types.Money `json:"overheadPercent,omitempty"`

	RequiresPilotCar bool         `json:"requiresPilotCar"`
	PilotCarDays     *int64       `json:"pilotCarDays,omitempty"`
	PilotCarBaseCost *types.Money `json:"pilotCarBaseCost,omitempty"`
}

// Validate checks the hard preconditions. Catalog resolution problems are not
// validation errors, they fall back to defaults inside the engine.
func (in *Input) Validate() error {
	if in.LoadedKm.IsNegative() {
		return apperror.NewInvalidInput("loadedKm must not be negative")
	}
	if in.EmptyKm.IsNegative() {
		return apperror.NewInvalidInput("emptyKm must not be negative")
	}
	if in.QuotedPrice.IsNegative() {
		return apperror.NewInvalidInput("quotedPrice must not be negative")
	}
	if negMoney(in.TollsLoaded) || negMoney(in.TollsEmpty) {
		return apperror.NewInvalidInput("toll actuals must not be negative")
	}
	if negCount(in.MealCount) || negCount(in.FederalFeeCount) || negCount(in.PhoneCount) {
		return apperror.NewInvalidInput("per-diem counts must not be negative")
	}
	if negMoney(in.MealUnitPrice) || negMoney(in.FederalFeeUnitPrice) || negMoney(in.PhoneUnitPrice) || negMoney(in.MiscPerDiem) {
		return apperror.NewInvalidInput("per-diem prices must not be negative")
	}
	if negMoney(in.PermitCost) {
		return apperror.NewInvalidInput("permitCost must not be negative")
	}
	if negMoney(in.MaintenancePercent) {
		return apperror.NewInvalidInput("maintenancePercent must not be negative")
	}
	if negMoney(in.OverheadPercent) {
		return apperror.NewInvalidInput("overheadPercent must not be negative")
	}
	if negCount(in.PilotCarDays) {
		return apperror.NewInvalidInput("pilotCarDays must not be negative")
	}
	if negMoney(in.PilotCarBaseCost) {
		return apperror.NewInvalidInput("pilotCarBaseCost must not be negative")
	}
	return nil
}

// TotalKm is the loaded plus empty distance.
func (in *Input) TotalKm() types.Money {
	return in.LoadedKm.Add(in.EmptyKm)
}

func negMoney(v *types.Money) bool {
	return v != nil && v.IsNegative()
}

func negCount(v *int64) bool {
	return v != nil && *v < 0
}
