package dto

import (
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/catalogs/driver"
	"logiprofit/internal/domain/simulation"
)

// DriverResponse represents an operator in API responses.
type DriverResponse struct {
	CatalogResponse
	LicenseNumber string      `json:"licenseNumber"`
	Phone         *string     `json:"phone,omitempty"`
	PayType       string      `json:"payType"`
	Rate          types.Money `json:"rate"`
	Comment       *string     `json:"comment,omitempty"`
}

// FromDriver creates DriverResponse from a domain driver.
func FromDriver(d *driver.Driver) DriverResponse {
	return DriverResponse{
		CatalogResponse: FromCatalog(d.Catalog),
		LicenseNumber:   d.LicenseNumber,
		Phone:           d.Phone,
		PayType:         string(d.PayType),
		Rate:            d.Rate,
		Comment:         d.Comment,
	}
}

// CreateDriverRequest for creating drivers.
type CreateDriverRequest struct {
	Code          string      `json:"code"`
	Name          string      `json:"name" binding:"required"`
	LicenseNumber string      `json:"licenseNumber" binding:"required"`
	Phone         *string     `json:"phone"`
	PayType       string      `json:"payType" binding:"required"`
	Rate          types.Money `json:"rate"`
	Comment       *string     `json:"comment"`
}

// ToEntity converts request to domain entity.
func (r *CreateDriverRequest) ToEntity() *driver.Driver {
	d := driver.NewDriver(r.Code, r.Name, r.LicenseNumber, simulation.PayType(r.PayType), r.Rate)
	d.Phone = r.Phone
	d.Comment = r.Comment
	return d
}

// UpdateDriverRequest for updating drivers. Nil fields are left untouched.
type UpdateDriverRequest struct {
	Code          *string      `json:"code"`
	Name          *string      `json:"name"`
	LicenseNumber *string      `json:"licenseNumber"`
	Phone         *string      `json:"phone"`
	PayType       *string      `json:"payType"`
	Rate          *types.Money `json:"rate"`
	Comment       *string      `json:"comment"`
	Version       int          `json:"version" binding:"required,min=1"`
}

// ApplyTo writes the present fields onto an existing driver.
func (r *UpdateDriverRequest) ApplyTo(d *driver.Driver) {
	if r.Code != nil {
		d.Code = *r.Code
	}
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.LicenseNumber != nil {
		d.LicenseNumber = *r.LicenseNumber
	}
	if r.Phone != nil {
		d.Phone = r.Phone
	}
	if r.PayType != nil {
		d.PayType = simulation.PayType(*r.PayType)
	}
	if r.Rate != nil {
		d.Rate = *r.Rate
	}
	if r.Comment != nil {
		d.Comment = r.Comment
	}
	d.Version = r.Version
}
