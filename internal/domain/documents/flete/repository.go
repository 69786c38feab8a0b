package flete

import (
	"context"
	"time"

	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
)

// Filter narrows trip listings.
type Filter struct {
	domain.ListFilter

	Statuses      []Status
	ClientID      *id.ID
	SourceQuoteID *id.ID
	DateFrom      *time.Time
	DateTo        *time.Time
}

// DefaultFilter returns trip listing defaults, newest first.
func DefaultFilter() Filter {
	f := Filter{ListFilter: domain.DefaultListFilter()}
	f.OrderBy = "-date"
	return f
}

// Repository defines the interface for Flete persistence.
type Repository interface {
	// Create inserts a new trip with its expense lines
	Create(ctx context.Context, f *Flete) error

	// GetByID retrieves a trip with expense lines
	GetByID(ctx context.Context, id id.ID) (*Flete, error)

	// GetByFolio retrieves a trip by its folio
	GetByFolio(ctx context.Context, folio string) (*Flete, error)

	// GetBySourceQuote retrieves the trip created from a quote, if any
	GetBySourceQuote(ctx context.Context, quoteID id.ID) (*Flete, error)

	// Update modifies an existing trip and replaces its expense lines
	Update(ctx context.Context, f *Flete) error

	// List retrieves trips with filtering and pagination
	List(ctx context.Context, filter Filter) (domain.ListResult[*Flete], error)
}
