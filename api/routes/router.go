// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"stagepass/internal/admin"
	"stagepass/internal/bookings"
	"stagepass/internal/cart"
	"stagepass/internal/catalog"
	"stagepass/internal/ledger"
	"stagepass/internal/notifications"
	"stagepass/internal/pricing"
	"stagepass/internal/seatmap"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/database"
	"stagepass/internal/shared/middleware"
	"stagepass/pkg/cache"
	"stagepass/pkg/storage"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	cacheService  cache.Service
	receipts      storage.ReceiptStore
	notifications notifications.Service

	// services shared across route groups
	catalogService catalog.Service
	ledgerService  ledger.Service
	seatmapService seatmap.Service
	pricingService pricing.Service
	cartService    cart.Service
	adminService   admin.Service

	bookingsController *bookings.Controller
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, receipts storage.ReceiptStore, notificationService notifications.Service) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		cacheService:  cacheService,
		receipts:      receipts,
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.buildServices()

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupPublicRoutes(api)
		r.setupAdminRoutes(api)
	}
}

// buildServices wires the dependency graph once so both route groups can
// share the same service instances.
func (r *Router) buildServices() {
	pg := r.db.GetPostgreSQL()

	catalogRepo := catalog.NewRepository(pg)
	r.catalogService = catalog.NewService(catalogRepo)
	r.catalogService.SetCacheService(r.cacheService)

	bookingRepo := bookings.NewRepository(pg)

	ledgerRepo := ledger.NewRepository(pg)
	r.ledgerService = ledger.NewService(ledgerRepo, r.catalogService, bookingRepo)
	r.ledgerService.SetCacheService(r.cacheService)

	layout := seatmap.NewLayout(r.config.Venue)
	r.seatmapService = seatmap.NewService(layout, r.ledgerService)
	r.seatmapService.SetCacheService(r.cacheService)

	engine := pricing.NewEngine(r.config.Pricing, layout)
	r.pricingService = pricing.NewService(engine, r.catalogService)

	r.cartService = cart.NewService(r.config.Redis, r.cacheService, r.seatmapService, r.pricingService, r.catalogService)

	bookingService := bookings.NewService(bookingRepo, r.cartService, r.ledgerService, r.catalogService, r.receipts, r.notifications, r.config.Upload)
	r.bookingsController = bookings.NewController(bookingService)

	r.adminService = admin.NewService(r.config.Admin)
}

// setupPublicRoutes configures the storefront surface
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	seatmap.SetupSeatMapRoutes(rg, seatmap.NewController(r.seatmapService))
	pricing.SetupPricingRoutes(rg, pricing.NewController(r.pricingService))
	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalogService))
	cart.SetupCartRoutes(rg, cart.NewController(r.cartService))
	bookings.SetupBookingRoutes(rg, r.bookingsController)
	admin.SetupAdminRoutes(rg, admin.NewController(r.adminService))
}

// setupAdminRoutes configures the operator surface behind token auth
func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	protected := rg.Group("/admin")
	protected.Use(middleware.AdminAuth(r.adminService))
	bookings.SetupAdminBookingRoutes(protected, r.bookingsController)
}

// StartJanitor launches the stale seat hold sweeper. Call after
// SetupRoutes so the ledger service exists.
func (r *Router) StartJanitor(ctx context.Context) {
	janitor := ledger.NewJanitor(r.ledgerService, time.Minute, r.config.Redis.SessionTTL)
	janitor.Start(ctx)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "stagepass-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "stagepass-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}
