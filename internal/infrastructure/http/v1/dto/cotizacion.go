package dto

import (
	"time"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/documents/cotizacion"
	"logiprofit/internal/domain/simulation"
)

// CreateCotizacionRequest for issuing a quote. Params is the full simulation
// input; omitted optional fields fall back to catalog values or defaults.
type CreateCotizacionRequest struct {
	ClientID         string           `json:"clientId" binding:"required,uuid"`
	Origin           string           `json:"origin" binding:"required"`
	Destination      string           `json:"destination" binding:"required"`
	CargoDescription *string          `json:"cargoDescription"`
	Comment          string           `json:"comment"`
	Params           simulation.Input `json:"params"`
}

// ToCreateInput converts to the domain create input.
func (r *CreateCotizacionRequest) ToCreateInput() (cotizacion.CreateInput, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return cotizacion.CreateInput{}, apperror.NewValidation("invalid clientId format")
	}
	return cotizacion.CreateInput{
		ClientID:         clientID,
		Origin:           r.Origin,
		Destination:      r.Destination,
		CargoDescription: r.CargoDescription,
		Comment:          r.Comment,
		Params:           r.Params,
	}, nil
}

// CotizacionResponse represents a quote in API responses.
type CotizacionResponse struct {
	ID           string    `json:"id"`
	Folio        string    `json:"folio"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`

	ClientID         string  `json:"clientId"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	CargoDescription *string `json:"cargoDescription,omitempty"`
	Comment          string  `json:"comment,omitempty"`

	VehicleID *string `json:"vehicleId,omitempty"`
	DriverID  *string `json:"driverId,omitempty"`

	RequiresReview bool `json:"requiresReview"`

	LoadedKm        types.Money `json:"loadedKm"`
	EmptyKm         types.Money `json:"emptyKm"`
	TotalKm         types.Money `json:"totalKm"`
	TravelDays      int64       `json:"travelDays"`
	FuelCost        types.Money `json:"fuelCost"`
	TollCost        types.Money `json:"tollCost"`
	PerDiemTotal    types.Money `json:"perDiemTotal"`
	DriverPay       types.Money `json:"driverPay"`
	PermitCost      types.Money `json:"permitCost"`
	PilotCarTotal   types.Money `json:"pilotCarTotal"`
	Subtotal        types.Money `json:"subtotal"`
	MaintenanceCost types.Money `json:"maintenanceCost"`
	IndirectCost    types.Money `json:"indirectCost"`
	TotalCost       types.Money `json:"totalCost"`
	QuotedPrice     types.Money `json:"quotedPrice"`
	ExpectedProfit  types.Money `json:"expectedProfit"`
	MarginPercent   types.Money `json:"marginPercent"`
	RiskLevel       string      `json:"riskLevel"`

	Params    simulation.Input  `json:"params"`
	Breakdown simulation.Result `json:"breakdown"`

	ConvertedFleteID *string `json:"convertedFleteId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// FromCotizacion creates CotizacionResponse from a domain quote.
func FromCotizacion(c *cotizacion.Cotizacion) *CotizacionResponse {
	return &CotizacionResponse{
		ID:           c.ID.String(),
		Folio:        c.Number,
		Date:         c.Date,
		Status:       string(c.Status),
		DeletionMark: c.DeletionMark,
		Version:      c.Version,

		ClientID:         c.ClientID.String(),
		Origin:           c.Origin,
		Destination:      c.Destination,
		CargoDescription: c.CargoDescription,
		Comment:          c.Comment,

		VehicleID: idString(c.VehicleID),
		DriverID:  idString(c.DriverID),

		RequiresReview: c.RequiresReview,

		LoadedKm:        c.LoadedKm,
		EmptyKm:         c.EmptyKm,
		TotalKm:         c.TotalKm,
		TravelDays:      c.TravelDays,
		FuelCost:        c.FuelCost,
		TollCost:        c.TollCost,
		PerDiemTotal:    c.PerDiemTotal,
		DriverPay:       c.DriverPay,
		PermitCost:      c.PermitCost,
		PilotCarTotal:   c.PilotCarTotal,
		Subtotal:        c.Subtotal,
		MaintenanceCost: c.MaintenanceCost,
		IndirectCost:    c.IndirectCost,
		TotalCost:       c.TotalCost,
		QuotedPrice:     c.QuotedPrice,
		ExpectedProfit:  c.ExpectedProfit,
		MarginPercent:   c.MarginPercent,
		RiskLevel:       string(c.RiskLevel),

		Params:    c.Params,
		Breakdown: c.Breakdown,

		ConvertedFleteID: idString(c.ConvertedFleteID),

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		CreatedBy: c.CreatedBy,
		UpdatedBy: c.UpdatedBy,
	}
}

// StatusSummaryResponse is the per-state quote count.
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// FromStatusCounts creates StatusSummaryResponse from domain counts.
func FromStatusCounts(counts map[cotizacion.Status]int64) StatusSummaryResponse {
	out := make(map[string]int64, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return StatusSummaryResponse{Counts: out}
}

func idString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
