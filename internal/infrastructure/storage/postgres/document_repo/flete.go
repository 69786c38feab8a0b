package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/documents/flete"
	"logiprofit/internal/infrastructure/storage/postgres"
)

const (
	fleteTable        = "doc_fletes"
	fleteExpenseTable = "doc_flete_expenses"
)

// FleteRepo implements flete.Repository.
// Expense lines live in a separate table and are replaced wholesale on update,
// so reads always load the trip header plus its lines.
type FleteRepo struct {
	*BaseDocumentRepo[*flete.Flete]
}

// NewFleteRepo creates a new trip repository.
func NewFleteRepo() *FleteRepo {
	return &FleteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*flete.Flete](
			fleteTable,
			postgres.ExtractDBColumns[flete.Flete](),
			func() *flete.Flete { return &flete.Flete{} },
		),
	}
}

// Create inserts a trip with its expense lines.
func (r *FleteRepo) Create(ctx context.Context, f *flete.Flete) error {
	if err := r.BaseDocumentRepo.Create(ctx, f); err != nil {
		return err
	}
	return r.saveExpenses(ctx, f.ID, f.Expenses)
}

// Update modifies a trip and replaces its expense lines.
func (r *FleteRepo) Update(ctx context.Context, f *flete.Flete) error {
	if err := r.BaseDocumentRepo.Update(ctx, f); err != nil {
		return err
	}
	return r.saveExpenses(ctx, f.ID, f.Expenses)
}

// GetByID retrieves a trip with its expense lines.
func (r *FleteRepo) GetByID(ctx context.Context, entityID id.ID) (*flete.Flete, error) {
	f, err := r.BaseDocumentRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if f.Expenses, err = r.getExpenses(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByFolio retrieves a trip by folio number, with expense lines.
func (r *FleteRepo) GetByFolio(ctx context.Context, folio string) (*flete.Flete, error) {
	f, err := r.GetByNumber(ctx, folio)
	if err != nil {
		return nil, err
	}
	if f.Expenses, err = r.getExpenses(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// GetForUpdate retrieves a trip with a row lock and its expense lines.
func (r *FleteRepo) GetForUpdate(ctx context.Context, entityID id.ID) (*flete.Flete, error) {
	f, err := r.BaseDocumentRepo.GetForUpdate(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if f.Expenses, err = r.getExpenses(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// GetBySourceQuote retrieves the trip created from a quote, if any.
func (r *FleteRepo) GetBySourceQuote(ctx context.Context, quoteID id.ID) (*flete.Flete, error) {
	f := &flete.Flete{}

	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"source_quote_id": quoteID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, f, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("flete", quoteID.String())
		}
		return nil, fmt.Errorf("get by source quote: %w", err)
	}

	if f.Expenses, err = r.getExpenses(ctx, f.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves trips with trip-specific filtering. Expense lines are not
// loaded for listings.
func (r *FleteRepo) List(ctx context.Context, filter flete.Filter) (domain.ListResult[*flete.Flete], error) {
	result := domain.ListResult[*flete.Flete]{
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

	if filter.SourceQuoteID != nil {
		q = q.Where(squirrel.Eq{"source_quote_id": *filter.SourceQuoteID})
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

// getExpenses retrieves expense lines for a trip.
func (r *FleteRepo) getExpenses(ctx context.Context, tripID id.ID) ([]flete.ExpenseLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "category", "description", "amount", "incurred_at").
		From(fleteExpenseTable).
		Where(squirrel.Eq{"document_id": tripID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []flete.ExpenseLine
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get expenses: %w", err)
	}

	return lines, nil
}

// saveExpenses replaces expense lines for a trip (delete existing + insert new).
func (r *FleteRepo) saveExpenses(ctx context.Context, tripID id.ID, lines []flete.ExpenseLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + fleteExpenseTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, tripID); err != nil {
		return fmt.Errorf("delete existing expenses: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(fleteExpenseTable).
		Columns("line_id", "document_id", "line_no", "category", "description", "amount", "incurred_at")

	for _, line := range lines {
		q = q.Values(
			line.LineID, tripID, line.LineNo,
			line.Category, line.Description, line.Amount, line.IncurredAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert expenses: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}

	return nil
}
