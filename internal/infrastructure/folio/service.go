// Package folio implements sequential folio allocation on PostgreSQL.
//
// Allocation is strict: every folio comes from a single UPSERT..RETURNING
// against sys_folios, so concurrent callers are serialized by the database
// and numbers are gapless per prefix. When the caller runs inside a
// transaction the allocated folio commits or rolls back with it.
package folio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	corefolio "logiprofit/internal/core/folio"
	"logiprofit/internal/infrastructure/storage/postgres"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service provides folio allocation backed by sys_folios.
// In Database-per-Tenant mode, the querier is obtained from context.
type Service struct {
	// staticQuerier is used for single-tenant mode and tests
	staticQuerier Querier
	// useContext indicates whether to get querier from context
	useContext bool
}

// New creates a folio service with a static querier.
// Use for single-tenant or testing scenarios.
func New(querier Querier) *Service {
	return &Service{staticQuerier: querier}
}

// NewFromContext creates a folio service that gets the querier from context.
// Use for Database-per-Tenant architecture.
func NewFromContext() *Service {
	return &Service{useContext: true}
}

func (s *Service) getQuerier(ctx context.Context) Querier {
	if s.useContext {
		// Resolve through the tenant TxManager so allocations join the
		// caller's transaction when one is open.
		return postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	}
	return s.staticQuerier
}

// NextFolio allocates and formats the next folio for cfg.Prefix.
func (s *Service) NextFolio(ctx context.Context, cfg corefolio.Config) (string, error) {
	if s == nil {
		return "", fmt.Errorf("folio service is not initialized")
	}

	querier := s.getQuerier(ctx)

	var num int64
	err := querier.QueryRow(ctx, `
		INSERT INTO sys_folios (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_folios.current_val + 1
		RETURNING current_val
	`, cfg.Prefix).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next folio %s: %w", cfg.Prefix, err)
	}

	return cfg.Format(num), nil
}

// SetNextValue sets the next raw sequence value (for migrations).
func (s *Service) SetNextValue(ctx context.Context, cfg corefolio.Config, value int64) error {
	if value < 1 {
		return fmt.Errorf("next value must be positive, got %d", value)
	}

	querier := s.getQuerier(ctx)

	// current_val stores the last allocated value.
	var current int64
	err := querier.QueryRow(ctx, `
		INSERT INTO sys_folios (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, cfg.Prefix, value-1).Scan(&current)
	if err != nil {
		return fmt.Errorf("set next value %s: %w", cfg.Prefix, err)
	}

	return nil
}

// Ensure interface compliance
var _ corefolio.Generator = (*Service)(nil)
