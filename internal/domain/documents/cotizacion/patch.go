package cotizacion

import (
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/simulation"
)

// UpdatePatch is an explicit patch over a quote: nil means "leave as is".
// Merging is field-by-field against the persisted entity, so an absent field
// can never overwrite a stored value.
type UpdatePatch struct {
	// Descriptive fields, updated verbatim
	Origin           *string `json:"origin,omitempty"`
	Destination      *string `json:"destination,omitempty"`
	CargoDescription *string `json:"cargoDescription,omitempty"`
	Comment          *string `json:"comment,omitempty"`
	ClientID         *id.ID  `json:"clientId,omitempty"`

	// Simulation inputs, merged into the stored snapshot
	LoadedKm    *types.Money `json:"loadedKm,omitempty"`
	EmptyKm     *types.Money `json:"emptyKm,omitempty"`
	QuotedPrice *types.Money `json:"quotedPrice,omitempty"`

	VehicleID *id.ID `json:"vehicleId,omitempty"`
	DriverID  *id.ID `json:"driverId,omitempty"`

	TollsLoaded *types.Money `json:"tollsLoaded,omitempty"`
	TollsEmpty  *types.Money `json:"tollsEmpty,omitempty"`

	PermitCost *types.Money `json:"permitCost,omitempty"`

	RequiresPilotCar *bool        `json:"requiresPilotCar,omitempty"`
	PilotCarDays     *int64       `json:"pilotCarDays,omitempty"`
	PilotCarBaseCost *types.Money `json:"pilotCarBaseCost,omitempty"`

	MaintenancePercent *types.Money `json:"maintenancePercent,omitempty"`
	OverheadPercent    *types.Money `json:"overheadPercent,omitempty"`
}

// RequiresRecompute reports whether the patch touches any field of the
// recompute trigger set. Only these fields force a re-simulation; the rest
// are written through verbatim.
func (p *UpdatePatch) RequiresRecompute() bool {
	return p.LoadedKm != nil ||
		p.EmptyKm != nil ||
		p.QuotedPrice != nil ||
		p.RequiresPilotCar != nil ||
		p.MaintenancePercent != nil ||
		p.OverheadPercent != nil
}

// MergeParams produces the merged simulation input: the stored snapshot with
// every present patch field written over it.
func (p *UpdatePatch) MergeParams(stored simulation.Input) simulation.Input {
	merged := stored

	if p.LoadedKm != nil {
		merged.LoadedKm = *p.LoadedKm
	}
	if p.EmptyKm != nil {
		merged.EmptyKm = *p.EmptyKm
	}
	if p.QuotedPrice != nil {
		merged.QuotedPrice = *p.QuotedPrice
	}
	if p.VehicleID != nil {
		merged.VehicleID = p.VehicleID
	}
	if p.DriverID != nil {
		merged.DriverID = p.DriverID
	}
	if p.TollsLoaded != nil {
		merged.TollsLoaded = p.TollsLoaded
	}
	if p.TollsEmpty != nil {
		merged.TollsEmpty = p.TollsEmpty
	}
	if p.PermitCost != nil {
		merged.PermitCost = p.PermitCost
	}
	if p.RequiresPilotCar != nil {
		merged.RequiresPilotCar = *p.RequiresPilotCar
	}
	if p.PilotCarDays != nil {
		merged.PilotCarDays = p.PilotCarDays
	}
	if p.PilotCarBaseCost != nil {
		merged.PilotCarBaseCost = p.PilotCarBaseCost
	}
	if p.MaintenancePercent != nil {
		merged.MaintenancePercent = p.MaintenancePercent
	}
	if p.OverheadPercent != nil {
		merged.OverheadPercent = p.OverheadPercent
	}
	return merged
}

// ApplyDescriptive writes the non-simulation fields onto the quote.
func (p *UpdatePatch) ApplyDescriptive(c *Cotizacion) {
	if p.Origin != nil {
		c.Origin = *p.Origin
	}
	if p.Destination != nil {
		c.Destination = *p.Destination
	}
	if p.CargoDescription != nil {
		c.CargoDescription = p.CargoDescription
	}
	if p.Comment != nil {
		c.Comment = *p.Comment
	}
	if p.ClientID != nil {
		c.ClientID = *p.ClientID
	}
	if p.VehicleID != nil {
		c.VehicleID = p.VehicleID
	}
	if p.DriverID != nil {
		c.DriverID = p.DriverID
	}
}
