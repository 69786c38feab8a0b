package client

import (
	"context"

	"logiprofit/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByRFC retrieves a client by tax id (unique within tenant).
	FindByRFC(ctx context.Context, rfc string) (*Client, error)
}
