// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"logiprofit/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetByCode(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require one of the
// given roles (admins always pass).
//
// Usage:
//
//	repo := catalog_repo.NewVehicleRepo()
//	service := vehicle.NewService(repo, folios)
//	handler := handlers.NewVehicleHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/vehicles"), handler, auth.RoleDispatcher)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, writeRoles ...string) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.GET("/by-code/:code", handler.GetByCode)
	group.POST("", middleware.RequireRole(writeRoles...), handler.Create)
	group.PUT("/:id", middleware.RequireRole(writeRoles...), handler.Update)
	group.DELETE("/:id", middleware.RequireRole(writeRoles...), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequireRole(writeRoles...), handler.SetDeletionMark)
}
