package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain/documents/flete"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// FleteHandler serves trip execution: planning, expense capture and
// lifecycle transitions.
type FleteHandler struct {
	*BaseHandler
	service *flete.Service
}

// NewFleteHandler creates a new trip handler.
func NewFleteHandler(base *BaseHandler, service *flete.Service) *FleteHandler {
	return &FleteHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /fletes - plan an ad-hoc trip.
func (h *FleteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateFleteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToCreateInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	trip, err := h.service.Create(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromFlete(trip))
}

// Get handles GET /fletes/:id
func (h *FleteHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	fleteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	trip, err := h.service.GetByID(ctx, fleteID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFlete(trip))
}

// GetByFolio handles GET /fletes/by-folio/:folio
func (h *FleteHandler) GetByFolio(c *gin.Context) {
	ctx := c.Request.Context()

	folio := c.Param("folio")
	if folio == "" {
		h.Error(c, apperror.NewValidation("folio is required"))
		return
	}

	trip, err := h.service.GetByFolio(ctx, folio)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFlete(trip))
}

// List handles GET /fletes
func (h *FleteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := flete.DefaultFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	for _, s := range c.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, flete.Status(s))
	}
	if clientStr := c.Query("clientId"); clientStr != "" {
		clientID, err := id.Parse(clientStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid clientId format"))
			return
		}
		filter.ClientID = &clientID
	}
	if quoteStr := c.Query("sourceQuoteId"); quoteStr != "" {
		quoteID, err := id.Parse(quoteStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid sourceQuoteId format"))
			return
		}
		filter.SourceQuoteID = &quoteID
	}
	if from := c.Query("dateFrom"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom format, expected RFC3339"))
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("dateTo"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo format, expected RFC3339"))
			return
		}
		filter.DateTo = &t
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, trip := range result.Items {
		items[i] = dto.FromFlete(trip)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// AddExpense handles POST /fletes/:id/expenses
func (h *FleteHandler) AddExpense(c *gin.Context) {
	ctx := c.Request.Context()

	fleteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AddExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	trip, err := h.service.AddExpense(ctx, fleteID, req.ToExpenseInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFlete(trip))
}

// ChangeStatus handles POST /fletes/:id/status
func (h *FleteHandler) ChangeStatus(c *gin.Context) {
	ctx := c.Request.Context()

	fleteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ChangeStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	trip, err := h.service.ChangeStatus(ctx, fleteID, flete.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromFlete(trip))
}
