package driver

import (
	"context"

	"logiprofit/internal/domain"
)

// Repository defines the interface for Driver persistence.
type Repository interface {
	domain.CatalogRepository[*Driver]

	// FindByLicense retrieves a driver by license number (unique within tenant).
	FindByLicense(ctx context.Context, license string) (*Driver, error)
}
