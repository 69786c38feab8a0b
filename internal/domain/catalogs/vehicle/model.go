// Package vehicle provides the Vehicle catalog: the tractor-trailer fleet
// with the fuel-efficiency figures the cost simulation depends on.
package vehicle

import (
	"context"
	"regexp"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/entity"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/simulation"
)

var plateRE = regexp.MustCompile(`^[A-Z0-9-]{5,10}$`)

// VehicleType distinguishes the unit classes the fleet operates.
type VehicleType string

const (
	TypeTractor VehicleType = "tractor"
	TypeTorton  VehicleType = "torton"
	TypeRabon   VehicleType = "rabon"
	TypePickup  VehicleType = "pickup"
)

// Vehicle represents one fleet unit.
type Vehicle struct {
	entity.Catalog

	// Plate is the registration plate, unique within tenant
	Plate string `db:"plate" json:"plate"`

	Type VehicleType `db:"type" json:"type"`

	Brand *string `db:"brand" json:"brand,omitempty"`
	Model *string `db:"model" json:"model,omitempty"`
	Year  *int    `db:"year" json:"year,omitempty"`

	// EfficiencyLoadedKmPerL and EfficiencyEmptyKmPerL feed the fuel stage
	// of the cost simulation. Zero means "no measurement yet", the engine
	// then falls back to fleet-average defaults.
	EfficiencyLoadedKmPerL types.Money `db:"efficiency_loaded_km_l" json:"efficiencyLoadedKmPerL"`
	EfficiencyEmptyKmPerL  types.Money `db:"efficiency_empty_km_l" json:"efficiencyEmptyKmPerL"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewVehicle creates a new Vehicle with required fields.
func NewVehicle(code, name, plate string, vt VehicleType) *Vehicle {
	return &Vehicle{
		Catalog: entity.NewCatalog(code, name),
		Plate:   plate,
		Type:    vt,
	}
}

// Validate implements entity.Validatable.
func (v *Vehicle) Validate(ctx context.Context) error {
	if err := v.Catalog.Validate(ctx); err != nil {
		return err
	}
	if !isValidType(v.Type) {
		return apperror.NewValidation("invalid vehicle type").
			WithDetail("field", "type").
			WithDetail("value", string(v.Type))
	}
	if v.Plate == "" || !plateRE.MatchString(v.Plate) {
		return apperror.NewValidation("invalid plate format").
			WithDetail("field", "plate")
	}
	if v.EfficiencyLoadedKmPerL.IsNegative() || v.EfficiencyEmptyKmPerL.IsNegative() {
		return apperror.NewValidation("fuel efficiency must not be negative").
			WithDetail("field", "efficiency")
	}
	if v.Year != nil && (*v.Year < 1950 || *v.Year > 2100) {
		return apperror.NewValidation("year out of range").
			WithDetail("field", "year")
	}
	return nil
}

// Profile projects the vehicle into the slice the simulation engine consumes.
func (v *Vehicle) Profile() simulation.VehicleProfile {
	return simulation.VehicleProfile{
		EfficiencyLoadedKmPerL: v.EfficiencyLoadedKmPerL,
		EfficiencyEmptyKmPerL:  v.EfficiencyEmptyKmPerL,
	}
}

func isValidType(t VehicleType) bool {
	switch t {
	case TypeTractor, TypeTorton, TypeRabon, TypePickup:
		return true
	}
	return false
}
