package reports

import (
	"context"
	"fmt"

	"logiprofit/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetQuoteFunnel generates the quote funnel report.
func (s *Service) GetQuoteFunnel(ctx context.Context, filter QuoteFunnelFilter) (*QuoteFunnel, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	report, err := s.repo.GetQuoteFunnel(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get quote funnel report: %w", err)
	}
	return report, nil
}

// GetRiskDistribution generates the margin-by-risk-band report.
func (s *Service) GetRiskDistribution(ctx context.Context, filter RiskDistributionFilter) (*RiskDistribution, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	report, err := s.repo.GetRiskDistribution(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get risk distribution report: %w", err)
	}
	return report, nil
}

// GetClientProfitability generates the per-client margin report.
func (s *Service) GetClientProfitability(ctx context.Context, filter ClientProfitabilityFilter) (*ClientProfitability, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	clampLimit(&filter.Limit, 100, 1000)

	report, err := s.repo.GetClientProfitability(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get client profitability report: %w", err)
	}
	return report, nil
}

// GetTripPerformance generates the budget-vs-actual report over closed trips.
func (s *Service) GetTripPerformance(ctx context.Context, filter TripPerformanceFilter) (*TripPerformance, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	clampLimit(&filter.Limit, 100, 1000)

	report, err := s.repo.GetTripPerformance(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get trip performance report: %w", err)
	}
	return report, nil
}

func clampLimit(limit *int, def, max int) {
	if *limit <= 0 {
		*limit = def
	}
	if *limit > max {
		*limit = max
	}
}
