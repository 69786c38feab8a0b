package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/apperror"
)

type stubRepo struct {
	funnel        *QuoteFunnel
	risk          *RiskDistribution
	profitability *ClientProfitability
	performance   *TripPerformance

	lastProfitFilter ClientProfitabilityFilter
	lastTripFilter   TripPerformanceFilter
}

func (s *stubRepo) GetQuoteFunnel(ctx context.Context, filter QuoteFunnelFilter) (*QuoteFunnel, error) {
	return s.funnel, nil
}

func (s *stubRepo) GetRiskDistribution(ctx context.Context, filter RiskDistributionFilter) (*RiskDistribution, error) {
	return s.risk, nil
}

func (s *stubRepo) GetClientProfitability(ctx context.Context, filter ClientProfitabilityFilter) (*ClientProfitability, error) {
	s.lastProfitFilter = filter
	return s.profitability, nil
}

func (s *stubRepo) GetTripPerformance(ctx context.Context, filter TripPerformanceFilter) (*TripPerformance, error) {
	s.lastTripFilter = filter
	return s.performance, nil
}

func TestGetQuoteFunnel_RejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&stubRepo{})

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)

	_, err := svc.GetQuoteFunnel(context.Background(), QuoteFunnelFilter{
		FromDate: &from,
		ToDate:   &to,
	})
	require.Error(t, err)
	requireValidation(t, err)
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGetQuoteFunnel_OpenPeriodAllowed(t *testing.T) {
	repo := &stubRepo{funnel: &QuoteFunnel{GeneratedAt: time.Now()}}
	svc := NewService(repo)

	report, err := svc.GetQuoteFunnel(context.Background(), QuoteFunnelFilter{})
	require.NoError(t, err)
	assert.NotNil(t, report)
}

func TestGetRiskDistribution_RejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&stubRepo{})

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -7)

	_, err := svc.GetRiskDistribution(context.Background(), RiskDistributionFilter{
		FromDate: &from,
		ToDate:   &to,
	})
	require.Error(t, err)
	requireValidation(t, err)
}

func TestGetClientProfitability_RequiresPeriod(t *testing.T) {
	svc := NewService(&stubRepo{})

	_, err := svc.GetClientProfitability(context.Background(), ClientProfitabilityFilter{})
	require.Error(t, err)
	requireValidation(t, err)
}

func TestGetClientProfitability_ClampsLimit(t *testing.T) {
	repo := &stubRepo{profitability: &ClientProfitability{}}
	svc := NewService(repo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 6, 0)

	_, err := svc.GetClientProfitability(context.Background(), ClientProfitabilityFilter{
		FromDate: from,
		ToDate:   to,
		Limit:    99999,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, repo.lastProfitFilter.Limit)

	_, err = svc.GetClientProfitability(context.Background(), ClientProfitabilityFilter{
		FromDate: from,
		ToDate:   to,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastProfitFilter.Limit)
}

func TestGetTripPerformance_RejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&stubRepo{})

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := svc.GetTripPerformance(context.Background(), TripPerformanceFilter{
		FromDate: from,
		ToDate:   to,
	})
	require.Error(t, err)
	requireValidation(t, err)
}
