package dto

// QuoteFunnelRequest filters the quote funnel report. Dates are RFC3339.
type QuoteFunnelRequest struct {
	FromDate *string `form:"fromDate"`
	ToDate   *string `form:"toDate"`
}

// ClientProfitabilityRequest filters the per-client margin report.
type ClientProfitabilityRequest struct {
	FromDate  string   `form:"fromDate" binding:"required"`
	ToDate    string   `form:"toDate" binding:"required"`
	ClientIDs []string `form:"clientIds"`
	Limit     int      `form:"limit"`
	Offset    int      `form:"offset"`
}

// TripPerformanceRequest filters the budget-vs-actual trip report.
type TripPerformanceRequest struct {
	FromDate  string   `form:"fromDate" binding:"required"`
	ToDate    string   `form:"toDate" binding:"required"`
	ClientIDs []string `form:"clientIds"`
	Limit     int      `form:"limit"`
	Offset    int      `form:"offset"`
}
