package dto

import (
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/catalogs/vehicle"
)

// VehicleResponse represents a fleet unit in API responses.
type VehicleResponse struct {
	CatalogResponse
	Plate                  string      `json:"plate"`
	Type                   string      `json:"type"`
	Brand                  *string     `json:"brand,omitempty"`
	Model                  *string     `json:"model,omitempty"`
	Year                   *int        `json:"year,omitempty"`
	EfficiencyLoadedKmPerL types.Money `json:"efficiencyLoadedKmPerL"`
	EfficiencyEmptyKmPerL  types.Money `json:"efficiencyEmptyKmPerL"`
	Comment                *string     `json:"comment,omitempty"`
}

// FromVehicle creates VehicleResponse from a domain vehicle.
func FromVehicle(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		CatalogResponse:        FromCatalog(v.Catalog),
		Plate:                  v.Plate,
		Type:                   string(v.Type),
		Brand:                  v.Brand,
		Model:                  v.Model,
		Year:                   v.Year,
		EfficiencyLoadedKmPerL: v.EfficiencyLoadedKmPerL,
		EfficiencyEmptyKmPerL:  v.EfficiencyEmptyKmPerL,
		Comment:                v.Comment,
	}
}

// CreateVehicleRequest for creating vehicles.
type CreateVehicleRequest struct {
	Code                   string       `json:"code"`
	Name                   string       `json:"name" binding:"required"`
	Plate                  string       `json:"plate" binding:"required"`
	Type                   string       `json:"type" binding:"required"`
	Brand                  *string      `json:"brand"`
	Model                  *string      `json:"model"`
	Year                   *int         `json:"year"`
	EfficiencyLoadedKmPerL *types.Money `json:"efficiencyLoadedKmPerL"`
	EfficiencyEmptyKmPerL  *types.Money `json:"efficiencyEmptyKmPerL"`
	Comment                *string      `json:"comment"`
}

// ToEntity converts request to domain entity.
func (r *CreateVehicleRequest) ToEntity() *vehicle.Vehicle {
	v := vehicle.NewVehicle(r.Code, r.Name, r.Plate, vehicle.VehicleType(r.Type))
	v.Brand = r.Brand
	v.Model = r.Model
	v.Year = r.Year
	if r.EfficiencyLoadedKmPerL != nil {
		v.EfficiencyLoadedKmPerL = *r.EfficiencyLoadedKmPerL
	}
	if r.EfficiencyEmptyKmPerL != nil {
		v.EfficiencyEmptyKmPerL = *r.EfficiencyEmptyKmPerL
	}
	v.Comment = r.Comment
	return v
}

// UpdateVehicleRequest for updating vehicles. Nil fields are left untouched.
type UpdateVehicleRequest struct {
	Code                   *string      `json:"code"`
	Name                   *string      `json:"name"`
	Plate                  *string      `json:"plate"`
	Type                   *string      `json:"type"`
	Brand                  *string      `json:"brand"`
	Model                  *string      `json:"model"`
	Year                   *int         `json:"year"`
	EfficiencyLoadedKmPerL *types.Money `json:"efficiencyLoadedKmPerL"`
	EfficiencyEmptyKmPerL  *types.Money `json:"efficiencyEmptyKmPerL"`
	Comment                *string      `json:"comment"`
	Version                int          `json:"version" binding:"required,min=1"`
}

// ApplyTo writes the present fields onto an existing vehicle.
func (r *UpdateVehicleRequest) ApplyTo(v *vehicle.Vehicle) {
	if r.Code != nil {
		v.Code = *r.Code
	}
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.Plate != nil {
		v.Plate = *r.Plate
	}
	if r.Type != nil {
		v.Type = vehicle.VehicleType(*r.Type)
	}
	if r.Brand != nil {
		v.Brand = r.Brand
	}
	if r.Model != nil {
		v.Model = r.Model
	}
	if r.Year != nil {
		v.Year = r.Year
	}
	if r.EfficiencyLoadedKmPerL != nil {
		v.EfficiencyLoadedKmPerL = *r.EfficiencyLoadedKmPerL
	}
	if r.EfficiencyEmptyKmPerL != nil {
		v.EfficiencyEmptyKmPerL = *r.EfficiencyEmptyKmPerL
	}
	if r.Comment != nil {
		v.Comment = r.Comment
	}
	v.Version = r.Version
}
