package driver

import (
	"context"
	"fmt"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/simulation"
)

// Service provides business logic for the Driver catalog.
type Service struct {
	*domain.CatalogService[*Driver]
	repo    Repository
	numbers folio.Generator
}

// NewService creates a new Driver service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, numbers folio.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Driver]{
		Repo:       repo,
		EntityName: "driver",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numbers:        numbers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkLicenseUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, d *Driver) error {
	if d.Code == "" {
		code, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("DRV"))
		if err != nil {
			return fmt.Errorf("generate driver code: %w", err)
		}
		d.Code = code
	}
	return s.checkLicenseUnique(ctx, d)
}

func (s *Service) checkLicenseUnique(ctx context.Context, d *Driver) error {
	existing, err := s.repo.FindByLicense(ctx, d.LicenseNumber)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != d.ID {
		return apperror.NewConflict("driver with this license already exists").
			WithDetail("license", d.LicenseNumber)
	}
	return nil
}

// FindByLicense retrieves a driver by license number.
func (s *Service) FindByLicense(ctx context.Context, license string) (*Driver, error) {
	return s.repo.FindByLicense(ctx, license)
}

// Lookup adapts the catalog into the simulation engine's driver lookup.
func (s *Service) Lookup() simulation.DriverLookup {
	return func(ctx context.Context, driverID id.ID) (*simulation.DriverProfile, bool) {
		d, err := s.repo.GetByID(ctx, driverID)
		if err != nil || d == nil || d.DeletionMark {
			return nil, false
		}
		p := d.Profile()
		return &p, true
	}
}
