package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain/reports"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetQuoteFunnel handles GET /reports/quote-funnel
func (h *ReportsHandler) GetQuoteFunnel(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteFunnelRequest
	if !h.BindQuery(c, &req) {
		return
	}

	var filter reports.QuoteFunnelFilter
	var err error
	if filter.FromDate, err = parseOptionalDate(req.FromDate, "fromDate"); err != nil {
		h.Error(c, err)
		return
	}
	if filter.ToDate, err = parseOptionalDate(req.ToDate, "toDate"); err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetQuoteFunnel(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRiskDistribution handles GET /reports/risk-distribution
func (h *ReportsHandler) GetRiskDistribution(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteFunnelRequest
	if !h.BindQuery(c, &req) {
		return
	}

	var filter reports.RiskDistributionFilter
	var err error
	if filter.FromDate, err = parseOptionalDate(req.FromDate, "fromDate"); err != nil {
		h.Error(c, err)
		return
	}
	if filter.ToDate, err = parseOptionalDate(req.ToDate, "toDate"); err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetRiskDistribution(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetClientProfitability handles GET /reports/client-profitability
func (h *ReportsHandler) GetClientProfitability(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ClientProfitabilityRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, toDate, err := parseReportPeriod(req.FromDate, req.ToDate)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := reports.ClientProfitabilityFilter{
		FromDate: fromDate,
		ToDate:   toDate,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	for _, cStr := range req.ClientIDs {
		if cID, err := id.Parse(cStr); err == nil {
			filter.ClientIDs = append(filter.ClientIDs, cID)
		}
	}

	report, err := h.service.GetClientProfitability(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTripPerformance handles GET /reports/trip-performance
func (h *ReportsHandler) GetTripPerformance(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TripPerformanceRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, toDate, err := parseReportPeriod(req.FromDate, req.ToDate)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := reports.TripPerformanceFilter{
		FromDate: fromDate,
		ToDate:   toDate,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	for _, cStr := range req.ClientIDs {
		if cID, err := id.Parse(cStr); err == nil {
			filter.ClientIDs = append(filter.ClientIDs, cID)
		}
	}

	report, err := h.service.GetTripPerformance(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quote-funnel", h.GetQuoteFunnel)
	rg.GET("/risk-distribution", h.GetRiskDistribution)
	rg.GET("/client-profitability", h.GetClientProfitability)
	rg.GET("/trip-performance", h.GetTripPerformance)
}

func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid " + field + " format, expected RFC3339")
	}
	return &t, nil
}

func parseReportPeriod(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid fromDate format, expected RFC3339")
	}
	toDate, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid toDate format, expected RFC3339")
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, apperror.NewValidation("toDate must not be before fromDate")
	}
	return fromDate, toDate, nil
}
