package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"logiprofit/internal/domain"
	"logiprofit/internal/domain/documents/cotizacion"
	"logiprofit/internal/infrastructure/storage/postgres"
)

const cotizacionTable = "doc_cotizaciones"

// CotizacionRepo implements cotizacion.Repository.
// Simulation params and breakdown are stored as JSONB alongside the
// flattened money columns used for listing and reporting.
type CotizacionRepo struct {
	*BaseDocumentRepo[*cotizacion.Cotizacion]
}

// NewCotizacionRepo creates a new quote repository.
func NewCotizacionRepo() *CotizacionRepo {
	return &CotizacionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*cotizacion.Cotizacion](
			cotizacionTable,
			postgres.ExtractDBColumns[cotizacion.Cotizacion](),
			func() *cotizacion.Cotizacion { return &cotizacion.Cotizacion{} },
		),
	}
}

// GetByFolio retrieves a quote by folio number.
func (r *CotizacionRepo) GetByFolio(ctx context.Context, folio string) (*cotizacion.Cotizacion, error) {
	return r.GetByNumber(ctx, folio)
}

// List retrieves quotes with quote-specific filtering.
func (r *CotizacionRepo) List(ctx context.Context, filter cotizacion.Filter) (domain.ListResult[*cotizacion.Cotizacion], error) {
	result := domain.ListResult[*cotizacion.Cotizacion]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": filter.Statuses})
	}

	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	if len(filter.RiskLevels) > 0 {
		q = q.Where(squirrel.Eq{"risk_level": filter.RiskLevels})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"origin": searchPattern},
			squirrel.ILike{"destination": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}

// CountByStatus aggregates live quotes per lifecycle state.
func (r *CotizacionRepo) CountByStatus(ctx context.Context) (map[cotizacion.Status]int64, error) {
	q := r.Builder().
		Select("status", "COUNT(*)").
		From(cotizacionTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		GroupBy("status")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.getTxManager(ctx).GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[cotizacion.Status]int64)
	for rows.Next() {
		var status cotizacion.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
