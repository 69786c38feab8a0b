package vehicle

import (
	"context"
	"fmt"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/simulation"
)

// Service provides business logic for the Vehicle catalog.
type Service struct {
	*domain.CatalogService[*Vehicle]
	repo    Repository
	numbers folio.Generator
}

// NewService creates a new Vehicle service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, numbers folio.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Vehicle]{
		Repo:       repo,
		EntityName: "vehicle",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numbers:        numbers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkPlateUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, v *Vehicle) error {
	if v.Code == "" {
		code, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("VEH"))
		if err != nil {
			return fmt.Errorf("generate vehicle code: %w", err)
		}
		v.Code = code
	}
	return s.checkPlateUnique(ctx, v)
}

func (s *Service) checkPlateUnique(ctx context.Context, v *Vehicle) error {
	existing, err := s.repo.FindByPlate(ctx, v.Plate)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != v.ID {
		return apperror.NewConflict("vehicle with this plate already exists").
			WithDetail("plate", v.Plate)
	}
	return nil
}

// FindByPlate retrieves a vehicle by its registration plate.
func (s *Service) FindByPlate(ctx context.Context, plate string) (*Vehicle, error) {
	return s.repo.FindByPlate(ctx, plate)
}

// Lookup adapts the catalog into the simulation engine's vehicle lookup.
// A miss or a soft-deleted vehicle reports not-found; hard storage errors
// also read as a miss here, callers that must distinguish resolve first.
func (s *Service) Lookup() simulation.VehicleLookup {
	return func(ctx context.Context, vehicleID id.ID) (*simulation.VehicleProfile, bool) {
		v, err := s.repo.GetByID(ctx, vehicleID)
		if err != nil || v == nil || v.DeletionMark {
			return nil, false
		}
		p := v.Profile()
		return &p, true
	}
}
