package handlers

import (
	"logiprofit/internal/domain/catalogs/client"
	"logiprofit/internal/infrastructure/http/v1/dto"
)

// ClientHTTPHandler aliases the generic handler so signatures stay readable.
type ClientHTTPHandler = CatalogHandler[
	*client.Client,
	dto.CreateClientRequest,
	dto.UpdateClientRequest,
]

// NewClientHandler wires the generic catalog handler for clients.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHTTPHandler {
	config := CatalogHandlerConfig[
		*client.Client,
		dto.CreateClientRequest,
		dto.UpdateClientRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "client",

		MapCreateDTO: func(req dto.CreateClientRequest) *client.Client {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) *client.Client {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(c *client.Client) any {
			return dto.FromClient(c)
		},
	}

	return NewCatalogHandler(base, config)
}
