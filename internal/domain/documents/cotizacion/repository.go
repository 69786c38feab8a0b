package cotizacion

import (
	"context"
	"time"

	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/simulation"
)

// Filter narrows quote listings.
type Filter struct {
	domain.ListFilter

	Statuses   []Status
	ClientID   *id.ID
	RiskLevels []simulation.RiskLevel
	DateFrom   *time.Time
	DateTo     *time.Time
}

// DefaultFilter returns quote listing defaults, newest first.
func DefaultFilter() Filter {
	f := Filter{ListFilter: domain.DefaultListFilter()}
	f.OrderBy = "-date"
	return f
}

// Repository defines the interface for Cotizacion persistence.
type Repository interface {
	// Create inserts a new quote
	Create(ctx context.Context, c *Cotizacion) error

	// GetByID retrieves a quote by ID
	GetByID(ctx context.Context, id id.ID) (*Cotizacion, error)

	// GetByFolio retrieves a quote by its folio (unique within tenant)
	GetByFolio(ctx context.Context, folio string) (*Cotizacion, error)

	// GetForUpdate retrieves a quote with a row lock, for conversion
	GetForUpdate(ctx context.Context, id id.ID) (*Cotizacion, error)

	// Update modifies an existing quote (with optimistic locking)
	Update(ctx context.Context, c *Cotizacion) error

	// List retrieves quotes with filtering and pagination
	List(ctx context.Context, filter Filter) (domain.ListResult[*Cotizacion], error)

	// CountByStatus aggregates live quotes per lifecycle state
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
