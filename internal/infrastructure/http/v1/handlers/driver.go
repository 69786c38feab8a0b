package handlers

import (
	"logiprofit/internal/domain/catalogs/driver"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// DriverHTTPHandler aliases the generic handler so signatures stay readable.
type DriverHTTPHandler = CatalogHandler[
	*driver.Driver,
	dto.CreateDriverRequest,
	dto.UpdateDriverRequest,
]

// NewDriverHandler wires the generic catalog handler for drivers.
func NewDriverHandler(base *BaseHandler, service *driver.Service) *DriverHTTPHandler {
	config := CatalogHandlerConfig[
		*driver.Driver,
		dto.CreateDriverRequest,
		dto.UpdateDriverRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "driver",

		MapCreateDTO: func(req dto.CreateDriverRequest) *driver.Driver {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateDriverRequest, existing *driver.Driver) *driver.Driver {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(d *driver.Driver) any {
			return dto.FromDriver(d)
		},
	}

	return NewCatalogHandler(base, config)
}
