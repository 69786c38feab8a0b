// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"logiprofit/internal/core/tenant"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/auth"
	"logiprofit/internal/domain/catalogs/client"
	"logiprofit/internal/domain/catalogs/driver"
	"logiprofit/internal/domain/catalogs/vehicle"
	"logiprofit/internal/domain/documents/cotizacion"
	"logiprofit/internal/domain/documents/flete"
	"logiprofit/internal/domain/policy"
	"logiprofit/internal/domain/reports"
	"logiprofit/internal/domain/simulation"
	"logiprofit/internal/infrastructure/cache"
	"logiprofit/internal/infrastructure/folio"
	"logiprofit/internal/infrastructure/http/v1/handlers"
	"logiprofit/internal/infrastructure/http/v1/middleware"
	"logiprofit/internal/infrastructure/storage/postgres"
	"logiprofit/internal/infrastructure/storage/postgres/catalog_repo"
	"logiprofit/internal/infrastructure/storage/postgres/document_repo"
	"logiprofit/internal/infrastructure/storage/postgres/report_repo"
	"logiprofit/pkg/logger"
)

// RouterConfig holds router configuration for multi-tenant architecture.
type RouterConfig struct {
	// TenantManager manages database connections for all tenants
	TenantManager *tenant.Manager

	// MetaPool is connection to meta-database (for health checks)
	MetaPool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Costs is the simulation tariff set
	Costs simulation.Defaults

	// Review flags quotes for manual review, nil disables flagging
	Review *policy.ReviewPolicy

	// Redis enables profile caching for simulation lookups, nil disables it
	Redis *redis.Client
}

// NewRouter creates and configures the Gin router for multi-tenant architecture.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.MetaPool, cfg.TenantManager)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Audit sink shared by all tenant-scoped services; the actual TxManager
	// is resolved from the request context per call.
	auditor, err := postgres.NewAuditServiceFromContext()
	if err != nil {
		return nil, err
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes - need TenantDB middleware BEFORE auth
		registerAuthRoutes(v1, cfg)

		// Protected endpoints - TenantDB runs first, then Auth
		protected := v1.Group("")
		protected.Use(middleware.TenantDB(cfg.TenantManager)) // 1. Resolve tenant, get DB pool
		protected.Use(middleware.Auth(cfg.JWTValidator))      // 2. Validate JWT, inject user

		registerTenantRoutes(protected, cfg, auditor)
	}

	return router, nil
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required, but need tenant for DB access)
	publicAuth := rg.Group("/auth")
	publicAuth.Use(middleware.TenantDB(cfg.TenantManager))

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.TenantDB(cfg.TenantManager))
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerTenantRoutes wires the catalogs, documents and reports. Repos and
// services are created once; the TxManager is obtained from context
// per-request.
func registerTenantRoutes(rg *gin.RouterGroup, cfg RouterConfig, auditor *postgres.AuditService) {
	baseHandler := handlers.NewBaseHandler()

	// Folio allocation joins whatever transaction is open in the context.
	folios := folio.NewFromContext()

	// --- Catalogs ---

	vehicleRepo := catalog_repo.NewVehicleRepo()
	vehicleService := vehicle.NewService(vehicleRepo, folios)

	driverRepo := catalog_repo.NewDriverRepo()
	driverService := driver.NewService(driverRepo, folios)

	clientRepo := catalog_repo.NewClientRepo()
	clientService := client.NewService(clientRepo, folios)

	// Simulation lookups, optionally read-through cached in Redis.
	vehicles := vehicleService.Lookup()
	drivers := driverService.Lookup()
	if cfg.Redis != nil {
		pc := cache.NewProfileCache(cfg.Redis)
		vehicles = pc.VehicleLookup(vehicles)
		drivers = pc.DriverLookup(drivers)

		// Keep cached profiles honest across catalog writes.
		vehicleService.Hooks().On(domain.AfterUpdate, func(ctx context.Context, v *vehicle.Vehicle) error {
			pc.InvalidateVehicle(ctx, v.ID)
			return nil
		})
		vehicleService.Hooks().On(domain.AfterDelete, func(ctx context.Context, v *vehicle.Vehicle) error {
			pc.InvalidateVehicle(ctx, v.ID)
			return nil
		})
		driverService.Hooks().On(domain.AfterUpdate, func(ctx context.Context, d *driver.Driver) error {
			pc.InvalidateDriver(ctx, d.ID)
			return nil
		})
		driverService.Hooks().On(domain.AfterDelete, func(ctx context.Context, d *driver.Driver) error {
			pc.InvalidateDriver(ctx, d.ID)
			return nil
		})
	}

	catalogs := rg.Group("/catalog")
	{
		vehicleHandler := handlers.NewVehicleHandler(baseHandler, vehicleService)
		vehicleGroup := catalogs.Group("/vehicles")
		vehicleGroup.GET("/by-plate/:plate", vehicleHandler.GetByPlate)
		RegisterCatalogRoutes(vehicleGroup, vehicleHandler, auth.RoleDispatcher)

		driverHandler := handlers.NewDriverHandler(baseHandler, driverService)
		RegisterCatalogRoutes(catalogs.Group("/drivers"), driverHandler, auth.RoleDispatcher)

		clientHandler := handlers.NewClientHandler(baseHandler, clientService)
		RegisterCatalogRoutes(catalogs.Group("/clients"), clientHandler, auth.RoleDispatcher, auth.RoleSales)
	}

	// --- Documents ---

	engine := simulation.NewEngine(cfg.Costs)

	cotizacionRepo := document_repo.NewCotizacionRepo()
	fleteRepo := document_repo.NewFleteRepo()

	quoteService := cotizacion.NewService(cotizacion.ServiceConfig{
		Repo:      cotizacionRepo,
		FleteRepo: fleteRepo,
		Numbers:   folios,
		Engine:    engine,
		Vehicles:  vehicles,
		Drivers:   drivers,
		Clients:   clientService,
		Review:    cfg.Review,
		Auditor:   auditor,
	})

	fleteService := flete.NewService(flete.ServiceConfig{
		Repo:    fleteRepo,
		Numbers: folios,
		Auditor: auditor,
	})

	quoteHandler := handlers.NewCotizacionHandler(baseHandler, quoteService)
	quotes := rg.Group("/cotizaciones")
	{
		quotes.GET("", quoteHandler.List)
		quotes.GET("/status-summary", quoteHandler.StatusSummary)
		quotes.GET("/by-folio/:folio", quoteHandler.GetByFolio)
		quotes.GET("/:id", quoteHandler.Get)
		quotes.POST("/simulate", quoteHandler.Simulate)
		quotes.POST("", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Create)
		quotes.PATCH("/:id", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Update)
		quotes.POST("/:id/send", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Send)
		quotes.POST("/:id/approve", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Approve)
		quotes.POST("/:id/reject", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Reject)
		quotes.POST("/:id/cancel", middleware.RequireRole(auth.RoleSales, auth.RoleDispatcher), quoteHandler.Cancel)
		quotes.POST("/:id/convert", middleware.RequireRole(auth.RoleDispatcher), quoteHandler.Convert)
	}

	fleteHandler := handlers.NewFleteHandler(baseHandler, fleteService)
	fletes := rg.Group("/fletes")
	{
		fletes.GET("", fleteHandler.List)
		fletes.GET("/by-folio/:folio", fleteHandler.GetByFolio)
		fletes.GET("/:id", fleteHandler.Get)
		fletes.POST("", middleware.RequireRole(auth.RoleDispatcher), fleteHandler.Create)
		fletes.POST("/:id/expenses", middleware.RequireRole(auth.RoleDispatcher), fleteHandler.AddExpense)
		fletes.POST("/:id/status", middleware.RequireRole(auth.RoleDispatcher), fleteHandler.ChangeStatus)
	}

	// --- Reports ---

	reportRepo := report_repo.NewReportRepo()
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)
	reportHandler.RegisterRoutes(rg.Group("/reports"))
}
