// Package reports provides report generation services.
package reports

import (
	"time"

	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

// --- Quote Funnel Report ---

// QuoteFunnelFilter defines filter for the quote funnel report.
type QuoteFunnelFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// QuoteFunnelRow is one lifecycle state with its volume.
type QuoteFunnelRow struct {
	Status      string      `db:"status" json:"status"`
	Count       int64       `db:"count" json:"count"`
	TotalQuoted types.Money `db:"total_quoted" json:"totalQuoted"`
}

// QuoteFunnel summarizes quotes per lifecycle state over a period.
type QuoteFunnel struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Rows        []QuoteFunnelRow `json:"rows"`
}

// --- Risk Distribution Report ---

// RiskDistributionFilter defines filter for the margin-by-risk report.
type RiskDistributionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// RiskDistributionRow is one risk band with its volume and average margin.
type RiskDistributionRow struct {
	RiskLevel   string      `db:"risk_level" json:"riskLevel"`
	Count       int64       `db:"count" json:"count"`
	TotalQuoted types.Money `db:"total_quoted" json:"totalQuoted"`
	AvgMargin   types.Money `db:"avg_margin" json:"avgMargin"`
}

// RiskDistribution shows how quoted volume splits across risk bands.
type RiskDistribution struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Rows        []RiskDistributionRow `json:"rows"`
}

// --- Client Profitability Report ---

// ClientProfitabilityFilter defines filter for the client profitability report.
type ClientProfitabilityFilter struct {
	FromDate time.Time
	ToDate   time.Time

	ClientIDs []id.ID

	Limit  int
	Offset int
}

// ClientProfitabilityRow aggregates quoted margin per client.
type ClientProfitabilityRow struct {
	ClientID       id.ID       `db:"client_id" json:"clientId"`
	ClientName     string      `db:"client_name" json:"clientName"`
	QuoteCount     int64       `db:"quote_count" json:"quoteCount"`
	ConvertedCount int64       `db:"converted_count" json:"convertedCount"`
	TotalQuoted    types.Money `db:"total_quoted" json:"totalQuoted"`
	TotalCost      types.Money `db:"total_cost" json:"totalCost"`
	AvgMargin      types.Money `db:"avg_margin" json:"avgMargin"`
}

// ClientProfitability is the per-client margin report.
type ClientProfitability struct {
	FromDate time.Time                `json:"fromDate"`
	ToDate   time.Time                `json:"toDate"`
	Rows     []ClientProfitabilityRow `json:"rows"`
}

// --- Trip Performance Report ---

// TripPerformanceFilter defines filter for the budget-vs-actual trip report.
type TripPerformanceFilter struct {
	FromDate time.Time
	ToDate   time.Time

	ClientIDs []id.ID

	Limit  int
	Offset int
}

// TripPerformanceRow compares one closed trip against its budget.
type TripPerformanceRow struct {
	FleteID       id.ID       `db:"flete_id" json:"fleteId"`
	Folio         string      `db:"folio" json:"folio"`
	ClientName    string      `db:"client_name" json:"clientName"`
	AgreedPrice   types.Money `db:"agreed_price" json:"agreedPrice"`
	BudgetedCost  types.Money `db:"budgeted_cost" json:"budgetedCost"`
	ActualCost    types.Money `db:"actual_cost" json:"actualCost"`
	CostVariance  types.Money `db:"cost_variance" json:"costVariance"`
	ActualMargin  types.Money `db:"actual_margin" json:"actualMargin"`
	PlannedMargin types.Money `db:"planned_margin" json:"plannedMargin"`
}

// TripPerformance is the budget-vs-actual report over closed trips.
type TripPerformance struct {
	FromDate time.Time            `json:"fromDate"`
	ToDate   time.Time            `json:"toDate"`
	Rows     []TripPerformanceRow `json:"rows"`
}
