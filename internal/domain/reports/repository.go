package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	GetQuoteFunnel(ctx context.Context, filter QuoteFunnelFilter) (*QuoteFunnel, error)
	GetRiskDistribution(ctx context.Context, filter RiskDistributionFilter) (*RiskDistribution, error)
	GetClientProfitability(ctx context.Context, filter ClientProfitabilityFilter) (*ClientProfitability, error)
	GetTripPerformance(ctx context.Context, filter TripPerformanceFilter) (*TripPerformance, error)
}
