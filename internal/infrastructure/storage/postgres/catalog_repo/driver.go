package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/domain/catalogs/driver"
	"logiprofit/internal/infrastructure/storage/postgres"
)

const driverTable = "cat_drivers"

// DriverRepo implements driver.Repository.
type DriverRepo struct {
	*BaseCatalogRepo[*driver.Driver]
}

// NewDriverRepo creates a new driver repository.
func NewDriverRepo() *DriverRepo {
	return &DriverRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*driver.Driver](
			driverTable,
			postgres.ExtractDBColumns[driver.Driver](),
			func() *driver.Driver { return &driver.Driver{} },
		),
	}
}

// FindByLicense retrieves driver by license number.
func (r *DriverRepo) FindByLicense(ctx context.Context, license string) (*driver.Driver, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"license_number": license}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	d, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("driver", license)
		}
		return nil, err
	}
	return d, nil
}
