// Package cotizacion provides the Cotizacion document: a freight quote built
// from a cost simulation, carrying its own lifecycle and sequential folio.
package cotizacion

import (
	"context"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/entity"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/simulation"
)

// Status is the quote lifecycle state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusConverted Status = "CONVERTED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions encodes the lifecycle state machine. CONVERTED and
// CANCELLED are terminal. Conversion itself goes through Convert, not
// through a plain status change.
var allowedTransitions = map[Status][]Status{
	StatusDraft:    {StatusSent, StatusCancelled},
	StatusSent:     {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
	StatusRejected: {StatusSent, StatusCancelled},
}

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved, StatusRejected, StatusConverted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves the status.
func (s Status) IsTerminal() bool {
	return s == StatusConverted || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cotizacion represents a freight quote. The simulation result is flattened
// into dedicated columns for querying; Params keeps the full input snapshot
// so updates can merge and re-simulate, and Breakdown keeps the itemized
// result for display.
type Cotizacion struct {
	entity.Document

	ClientID id.ID `db:"client_id" json:"clientId"`

	Origin      string `db:"origin" json:"origin"`
	Destination string `db:"destination" json:"destination"`

	CargoDescription *string `db:"cargo_description" json:"cargoDescription,omitempty"`

	VehicleID *id.ID `db:"vehicle_id" json:"vehicleId,omitempty"`
	DriverID  *id.ID `db:"driver_id" json:"driverId,omitempty"`

	Status Status `db:"status" json:"status"`

	// RequiresReview is set by the review policy at simulation time
	RequiresReview bool `db:"requires_review" json:"requiresReview"`

	// Params is the full simulation input snapshot (JSONB)
	Params simulation.Input `db:"params" json:"params"`

	// Breakdown is the full itemized result (JSONB)
	Breakdown simulation.Result `db:"breakdown" json:"breakdown"`

	// Flattened simulation outputs
	LoadedKm        types.Money          `db:"loaded_km" json:"loadedKm"`
	EmptyKm         types.Money          `db:"empty_km" json:"emptyKm"`
	TotalKm         types.Money          `db:"total_km" json:"totalKm"`
	TravelDays      int64                `db:"travel_days" json:"travelDays"`
	FuelCost        types.Money          `db:"fuel_cost" json:"fuelCost"`
	TollCost        types.Money          `db:"toll_cost" json:"tollCost"`
	PerDiemTotal    types.Money          `db:"per_diem_total" json:"perDiemTotal"`
	DriverPay       types.Money          `db:"driver_pay" json:"driverPay"`
	PermitCost      types.Money          `db:"permit_cost" json:"permitCost"`
	PilotCarTotal   types.Money          `db:"pilot_car_total" json:"pilotCarTotal"`
	Subtotal        types.Money          `db:"subtotal" json:"subtotal"`
	MaintenanceCost types.Money          `db:"maintenance_cost" json:"maintenanceCost"`
	IndirectCost    types.Money          `db:"indirect_cost" json:"indirectCost"`
	TotalCost       types.Money          `db:"total_cost" json:"totalCost"`
	QuotedPrice     types.Money          `db:"quoted_price" json:"quotedPrice"`
	ExpectedProfit  types.Money          `db:"expected_profit" json:"expectedProfit"`
	MarginPercent   types.Money          `db:"margin_percent" json:"marginPercent"`
	RiskLevel       simulation.RiskLevel `db:"risk_level" json:"riskLevel"`

	// ConvertedFleteID links to the trip created on conversion
	ConvertedFleteID *id.ID `db:"converted_flete_id" json:"convertedFleteId,omitempty"`
}

// NewCotizacion creates a draft quote for a client and route.
func NewCotizacion(clientID id.ID, origin, destination string) *Cotizacion {
	return &Cotizacion{
		Document:    entity.NewDocument(),
		ClientID:    clientID,
		Origin:      origin,
		Destination: destination,
		Status:      StatusDraft,
	}
}

// Validate implements entity.Validatable.
func (c *Cotizacion) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(c.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if c.Origin == "" {
		return apperror.NewValidation("origin is required").
			WithDetail("field", "origin")
	}
	if c.Destination == "" {
		return apperror.NewValidation("destination is required").
			WithDetail("field", "destination")
	}
	if !c.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	return nil
}

// ApplySimulation stores the input snapshot and flattens the result into the
// quote's own columns.
func (c *Cotizacion) ApplySimulation(in simulation.Input, res *simulation.Result) {
	c.Params = in
	c.Breakdown = *res

	c.VehicleID = in.VehicleID
	c.DriverID = in.DriverID

	c.LoadedKm = in.LoadedKm
	c.EmptyKm = in.EmptyKm
	c.TotalKm = res.TotalKm
	c.TravelDays = res.TravelDays
	c.FuelCost = res.Fuel.Total
	c.TollCost = res.TollCost
	c.PerDiemTotal = res.PerDiem.Total
	c.DriverPay = res.DriverPay
	c.PermitCost = res.PermitCost
	c.PilotCarTotal = res.PilotCar.Total
	c.Subtotal = res.Subtotal
	c.MaintenanceCost = res.MaintenanceCost
	c.IndirectCost = res.IndirectCost
	c.TotalCost = res.TotalCost
	c.QuotedPrice = res.QuotedPrice
	c.ExpectedProfit = res.ExpectedProfit
	c.MarginPercent = res.MarginPercent
	c.RiskLevel = res.Risk
}

// ChangeStatus moves the quote to the next lifecycle state, enforcing the
// state machine.
func (c *Cotizacion) ChangeStatus(next Status) error {
	if !next.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("value", string(next))
	}
	if c.Status == StatusConverted {
		return apperror.NewQuoteConverted(c.Number)
	}
	if !c.Status.CanTransitionTo(next) {
		return apperror.NewInvalidTransition(string(c.Status), string(next))
	}
	c.Status = next
	return nil
}

// MarkConverted records conversion. Only an approved quote converts, and
// only once.
func (c *Cotizacion) MarkConverted(fleteID id.ID) error {
	if c.Status == StatusConverted {
		return apperror.NewQuoteConverted(c.Number)
	}
	if c.Status != StatusApproved {
		return apperror.NewInvalidTransition(string(c.Status), string(StatusConverted))
	}
	c.Status = StatusConverted
	c.ConvertedFleteID = &fleteID
	return nil
}

// IsEditable reports whether content updates are allowed in the current state.
func (c *Cotizacion) IsEditable() bool {
	return !c.Status.IsTerminal()
}
