package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/domain/catalogs/vehicle"
	"logiprofit/internal/infrastructure/storage/postgres"
)

const vehicleTable = "cat_vehicles"

// VehicleRepo implements vehicle.Repository.
type VehicleRepo struct {
	*BaseCatalogRepo[*vehicle.Vehicle]
}

// NewVehicleRepo creates a new vehicle repository.
func NewVehicleRepo() *VehicleRepo {
	return &VehicleRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*vehicle.Vehicle](
			vehicleTable,
			postgres.ExtractDBColumns[vehicle.Vehicle](),
			func() *vehicle.Vehicle { return &vehicle.Vehicle{} },
		),
	}
}

// FindByPlate retrieves vehicle by plate.
func (r *VehicleRepo) FindByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"plate": plate}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	v, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("vehicle", plate)
		}
		return nil, err
	}
	return v, nil
}
