package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/domain/catalogs/vehicle"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// VehicleHandler serves the fleet catalog: generic CRUD plus plate lookup.
type VehicleHandler struct {
	*CatalogHandler[*vehicle.Vehicle, dto.CreateVehicleRequest, dto.UpdateVehicleRequest]
	service *vehicle.Service
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(base *BaseHandler, service *vehicle.Service) *VehicleHandler {
	config := CatalogHandlerConfig[*vehicle.Vehicle, dto.CreateVehicleRequest, dto.UpdateVehicleRequest]{
		Service:    service.CatalogService,
		EntityName: "vehicle",
		MapCreateDTO: func(req dto.CreateVehicleRequest) *vehicle.Vehicle {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateVehicleRequest, existing *vehicle.Vehicle) *vehicle.Vehicle {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(v *vehicle.Vehicle) any {
			return dto.FromVehicle(v)
		},
	}

	return &VehicleHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// GetByPlate handles GET /vehicles/by-plate/:plate
func (h *VehicleHandler) GetByPlate(c *gin.Context) {
	ctx := c.Request.Context()

	plate := c.Param("plate")
	if plate == "" {
		h.Error(c, apperror.NewValidation("plate is required"))
		return
	}

	v, err := h.service.FindByPlate(ctx, plate)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromVehicle(v))
}
