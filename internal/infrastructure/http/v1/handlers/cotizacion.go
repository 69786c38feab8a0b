package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain/documents/cotizacion"
	"logiprofit/internal/domain/simulation"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// CotizacionHandler serves the quote lifecycle: simulation preview, creation,
// patch updates with recompute, status transitions and conversion to a trip.
type CotizacionHandler struct {
	*BaseHandler
	service *cotizacion.Service
}

// NewCotizacionHandler creates a new quote handler.
func NewCotizacionHandler(base *BaseHandler, service *cotizacion.Service) *CotizacionHandler {
	return &CotizacionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Simulate handles POST /cotizaciones/simulate - preview without persistence.
func (h *CotizacionHandler) Simulate(c *gin.Context) {
	ctx := c.Request.Context()

	var in simulation.Input
	if !h.BindJSON(c, &in) {
		return
	}

	result, err := h.service.Simulate(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create handles POST /cotizaciones - simulate, allocate folio, persist draft.
func (h *CotizacionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCotizacionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToCreateInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	quote, err := h.service.Create(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCotizacion(quote))
}

// Get handles GET /cotizaciones/:id
func (h *CotizacionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	quoteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	quote, err := h.service.GetByID(ctx, quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCotizacion(quote))
}

// GetByFolio handles GET /cotizaciones/by-folio/:folio
func (h *CotizacionHandler) GetByFolio(c *gin.Context) {
	ctx := c.Request.Context()

	folio := c.Param("folio")
	if folio == "" {
		h.Error(c, apperror.NewValidation("folio is required"))
		return
	}

	quote, err := h.service.GetByFolio(ctx, folio)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCotizacion(quote))
}

// List handles GET /cotizaciones
func (h *CotizacionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := cotizacion.DefaultFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	for _, s := range c.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, cotizacion.Status(s))
	}
	for _, r := range c.QueryArray("riskLevel") {
		filter.RiskLevels = append(filter.RiskLevels, simulation.RiskLevel(r))
	}
	if clientStr := c.Query("clientId"); clientStr != "" {
		clientID, err := id.Parse(clientStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid clientId format"))
			return
		}
		filter.ClientID = &clientID
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
	for i, quote := range result.Items {
		items[i] = dto.FromCotizacion(quote)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Update handles PATCH /cotizaciones/:id - merge patch, recompute if needed.
func (h *CotizacionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	quoteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var patch cotizacion.UpdatePatch
	if !h.BindJSON(c, &patch) {
		return
	}

	quote, err := h.service.Update(ctx, quoteID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCotizacion(quote))
}

// Send handles POST /cotizaciones/:id/send
func (h *CotizacionHandler) Send(c *gin.Context) {
	h.transition(c, h.service.Send)
}

// Approve handles POST /cotizaciones/:id/approve
func (h *CotizacionHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Reject handles POST /cotizaciones/:id/reject
func (h *CotizacionHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

// Cancel handles POST /cotizaciones/:id/cancel
func (h *CotizacionHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Convert handles POST /cotizaciones/:id/convert - approved quote to trip.
func (h *CotizacionHandler) Convert(c *gin.Context) {
	ctx := c.Request.Context()

	quoteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	trip, err := h.service.Convert(ctx, quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromFlete(trip))
}

// StatusSummary handles GET /cotizaciones/status-summary
func (h *CotizacionHandler) StatusSummary(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.service.CountByStatus(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStatusCounts(counts))
}

func (h *CotizacionHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, quoteID id.ID) (*cotizacion.Cotizacion, error),
) {
	ctx := c.Request.Context()

	quoteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	quote, err := fn(ctx, quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCotizacion(quote))
}
