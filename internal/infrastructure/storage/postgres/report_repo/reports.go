// Package report_repo provides PostgreSQL implementations for report repositories.
// In Database-per-Tenant architecture, TxManager is obtained from context.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"logiprofit/internal/domain/reports"
	"logiprofit/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
// Reports read the flattened money columns on quotes and trips, never the
// JSONB payloads, so they stay index-friendly.
type ReportRepo struct {
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// getTxManager retrieves TxManager from context.
func (r *ReportRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// GetQuoteFunnel summarizes quotes per lifecycle state over a period.
func (r *ReportRepo) GetQuoteFunnel(ctx context.Context, filter reports.QuoteFunnelFilter) (*reports.QuoteFunnel, error) {
	q := r.builder.
		Select(
			"status",
			"COUNT(*) AS count",
			"COALESCE(SUM(quoted_price), 0) AS total_quoted",
		).
		From("doc_cotizaciones").
		Where(squirrel.Eq{"deletion_mark": false}).
		GroupBy("status").
		OrderBy("status")

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	report := &reports.QuoteFunnel{GeneratedAt: time.Now().UTC()}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Rows, sql, args...); err != nil {
		return nil, fmt.Errorf("quote funnel: %w", err)
	}

	return report, nil
}

// GetRiskDistribution shows how quoted volume splits across risk bands.
func (r *ReportRepo) GetRiskDistribution(ctx context.Context, filter reports.RiskDistributionFilter) (*reports.RiskDistribution, error) {
	q := r.builder.
		Select(
			"risk_level",
			"COUNT(*) AS count",
			"COALESCE(SUM(quoted_price), 0) AS total_quoted",
			"COALESCE(ROUND(AVG(margin_percent), 2), 0) AS avg_margin",
		).
		From("doc_cotizaciones").
		Where(squirrel.Eq{"deletion_mark": false}).
		GroupBy("risk_level").
		OrderBy("risk_level")

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	report := &reports.RiskDistribution{GeneratedAt: time.Now().UTC()}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Rows, sql, args...); err != nil {
		return nil, fmt.Errorf("risk distribution: %w", err)
	}

	return report, nil
}

// GetClientProfitability aggregates quoted volume and margin per client.
func (r *ReportRepo) GetClientProfitability(ctx context.Context, filter reports.ClientProfitabilityFilter) (*reports.ClientProfitability, error) {
	q := r.builder.
		Select(
			"q.client_id",
			"c.name AS client_name",
			"COUNT(*) AS quote_count",
			"COUNT(*) FILTER (WHERE q.status = 'CONVERTED') AS converted_count",
			"COALESCE(SUM(q.quoted_price), 0) AS total_quoted",
			"COALESCE(SUM(q.total_cost), 0) AS total_cost",
			"COALESCE(ROUND(AVG(q.margin_percent), 2), 0) AS avg_margin",
		).
		From("doc_cotizaciones q").
		Join("cat_clients c ON c.id = q.client_id").
		Where(squirrel.Eq{"q.deletion_mark": false}).
		Where(squirrel.GtOrEq{"q.date": filter.FromDate}).
		Where(squirrel.LtOrEq{"q.date": filter.ToDate}).
		GroupBy("q.client_id", "c.name").
		OrderBy("total_quoted DESC")

	if len(filter.ClientIDs) > 0 {
		q = q.Where(squirrel.Eq{"q.client_id": filter.ClientIDs})
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	report := &reports.ClientProfitability{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Rows, sql, args...); err != nil {
		return nil, fmt.Errorf("client profitability: %w", err)
	}

	return report, nil
}

// GetTripPerformance compares closed trips against their budget.
func (r *ReportRepo) GetTripPerformance(ctx context.Context, filter reports.TripPerformanceFilter) (*reports.TripPerformance, error) {
	q := r.builder.
		Select(
			"f.id AS flete_id",
			"f.number AS folio",
			"c.name AS client_name",
			"f.agreed_price",
			"f.budgeted_cost",
			"f.total_expenses AS actual_cost",
			"f.total_expenses - f.budgeted_cost AS cost_variance",
			"f.actual_margin_percent AS actual_margin",
			"CASE WHEN f.agreed_price > 0 THEN ROUND((f.agreed_price - f.budgeted_cost) / f.agreed_price * 100, 2) ELSE 0 END AS planned_margin",
		).
		From("doc_fletes f").
		Join("cat_clients c ON c.id = f.client_id").
		Where(squirrel.Eq{"f.deletion_mark": false}).
		Where(squirrel.Eq{"f.status": []string{"DELIVERED", "CLOSED"}}).
		Where(squirrel.GtOrEq{"f.date": filter.FromDate}).
		Where(squirrel.LtOrEq{"f.date": filter.ToDate}).
		OrderBy("cost_variance DESC")

	if len(filter.ClientIDs) > 0 {
		q = q.Where(squirrel.Eq{"f.client_id": filter.ClientIDs})
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	report := &reports.TripPerformance{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &report.Rows, sql, args...); err != nil {
		return nil, fmt.Errorf("trip performance: %w", err)
	}

	return report, nil
}
