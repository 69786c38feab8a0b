package simulation

import (
	"github.com/shopspring/decimal"

	"logiprofit/internal/core/types"
)

// RiskLevel classifies a quote by its expected profit margin.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

var (
	lowMarginFloor    = decimal.NewFromInt(25)
	mediumMarginFloor = decimal.NewFromInt(10)
)

// ClassifyRisk maps an unrounded margin percent to a risk band.
func ClassifyRisk(marginPercent types.Money) RiskLevel {
	switch {
	case marginPercent.GreaterThanOrEqual(lowMarginFloor):
		return RiskLow
	case marginPercent.GreaterThanOrEqual(mediumMarginFloor):
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FuelBreakdown details stage outputs for fuel cost.
type FuelBreakdown struct {
	LitersLoaded types.Money `json:"litersLoaded"`
	LitersEmpty  types.Money `json:"litersEmpty"`
	PricePerL    types.Money `json:"pricePerLiter"`
	Total        types.Money `json:"total"`
}

// PerDiemBreakdown details the daily allowances over the whole trip.
type PerDiemBreakdown struct {
	Meals       types.Money `json:"meals"`
	FederalFees types.Money `json:"federalFees"`
	Phone       types.Money `json:"phone"`
	Misc        types.Money `json:"misc"`
	Total       types.Money `json:"total"`
}

// PilotCarBreakdown details escort costs. All zero when no escort is required.
type PilotCarBreakdown struct {
	Base  types.Money `json:"base"`
	Fuel  types.Money `json:"fuel"`
	Tolls types.Money `json:"tolls"`
	Meals types.Money `json:"meals"`
	Misc  types.Money `json:"misc"`
	Total types.Money `json:"total"`
}

// CostShares is the percentage each component contributes to the total cost.
type CostShares struct {
	Fuel        types.Money `json:"fuel"`
	Tolls       types.Money `json:"tolls"`
	PerDiems    types.Money `json:"perDiems"`
	DriverPay   types.Money `json:"driverPay"`
	Permits     types.Money `json:"permits"`
	Maintenance types.Money `json:"maintenance"`
	Overhead    types.Money `json:"overhead"`
	PilotCar    types.Money `json:"pilotCar"`
}

// Result is the materialized outcome of one simulation run. Monetary fields
// are rounded to 2 decimals on materialization; the engine never rounds
// between stages.
type Result struct {
	TotalKm    types.Money `json:"totalKm"`
	TravelDays int64       `json:"travelDays"`

	Fuel        FuelBreakdown     `json:"fuel"`
	TollCost    types.Money       `json:"tollCost"`
	TollsActual bool              `json:"tollsActual"` // true when caller supplied an actual toll total
	PerDiem     PerDiemBreakdown  `json:"perDiem"`
	DriverPay   types.Money       `json:"driverPay"`
	PermitCost  types.Money       `json:"permitCost"`
	PilotCar    PilotCarBreakdown `json:"pilotCar"`

	Subtotal        types.Money `json:"subtotal"`
	MaintenanceCost types.Money `json:"maintenanceCost"`
	IndirectCost    types.Money `json:"indirectCost"`
	TotalCost       types.Money `json:"totalCost"`

	QuotedPrice    types.Money `json:"quotedPrice"`
	ExpectedProfit types.Money `json:"expectedProfit"`
	MarginPercent  types.Money `json:"marginPercent"`
	Risk           RiskLevel   `json:"risk"`

	Shares CostShares `json:"shares"`
}
