package vehicle

import (
	"context"

	"logiprofit/internal/domain"
)

// Repository defines the interface for Vehicle persistence.
type Repository interface {
	domain.CatalogRepository[*Vehicle]

	// FindByPlate retrieves a vehicle by plate (unique within tenant).
	FindByPlate(ctx context.Context, plate string) (*Vehicle, error)
}
