// Package driver provides the Driver catalog: operators with the settlement
// scheme and rate the cost simulation prices driver pay from.
package driver

import (
	"context"
	"regexp"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/entity"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/simulation"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

// Driver represents one operator.
type Driver struct {
	entity.Catalog

	// LicenseNumber is the federal license, unique within tenant
	LicenseNumber string `db:"license_number" json:"licenseNumber"`

	Phone *string `db:"phone" json:"phone,omitempty"`

	// PayType and Rate define how a trip converts into driver pay.
	PayType simulation.PayType `db:"pay_type" json:"payType"`
	Rate    types.Money        `db:"rate" json:"rate"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewDriver creates a new Driver with required fields.
func NewDriver(code, name, license string, payType simulation.PayType, rate types.Money) *Driver {
	return &Driver{
		Catalog:       entity.NewCatalog(code, name),
		LicenseNumber: license,
		PayType:       payType,
		Rate:          rate,
	}
}

// Validate implements entity.Validatable.
func (d *Driver) Validate(ctx context.Context) error {
	if err := d.Catalog.Validate(ctx); err != nil {
		return err
	}
	if d.LicenseNumber == "" {
		return apperror.NewValidation("license number is required").
			WithDetail("field", "licenseNumber")
	}
	if !d.PayType.Valid() {
		return apperror.NewValidation("invalid pay type").
			WithDetail("field", "payType").
			WithDetail("value", string(d.PayType))
	}
	if d.Rate.IsNegative() {
		return apperror.NewValidation("rate must not be negative").
			WithDetail("field", "rate")
	}
	if d.Phone != nil && *d.Phone != "" && !phoneRE.MatchString(*d.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}
	return nil
}

// Profile projects the driver into the slice the simulation engine consumes.
func (d *Driver) Profile() simulation.DriverProfile {
	return simulation.DriverProfile{
		PayType: d.PayType,
		Rate:    d.Rate,
	}
}
