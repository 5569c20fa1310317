package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonhq/salon-api/internal/config"
	domainRepo "github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/internal/presentation/http/handler"
	"github.com/salonhq/salon-api/internal/presentation/http/middleware"
	"github.com/salonhq/salon-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Client      *handler.ClientHandler
	Catalog     *handler.CatalogHandler
	Appointment *handler.AppointmentHandler
	Billing     *handler.BillingHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)

	// Dashboard
	protected.GET("/dashboard/metrics", h.Dashboard.GetMetrics)
	protected.GET("/dashboard/upcoming", h.Dashboard.GetUpcoming)
	protected.GET("/dashboard/notifications", h.Dashboard.GetNotifications)

	// Reports
	protected.GET("/reports", h.Report.GetPeriodReport)

	registerClientRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerAppointmentRoutes(protected, h)
	registerBillingRoutes(protected, h, deps)
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.ListServices)
		services.POST("", h.Catalog.CreateService)
		services.GET("/:id", h.Catalog.GetService)
		services.PUT("/:id", h.Catalog.UpdateService)
		services.DELETE("/:id", h.Catalog.DeleteService)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", h.Catalog.CreateProduct)
		products.GET("/low-stock", h.Catalog.GetLowStock)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
		products.DELETE("/:id", h.Catalog.DeleteProduct)
	}
}

func registerAppointmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	appointments := protected.Group("/appointments")
	{
		appointments.GET("", h.Appointment.List)
		appointments.POST("", h.Appointment.Create)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.POST("/:id/cancel", h.Appointment.Cancel)
	}
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	billing := protected.Group("/billing")
	{
		// Finalization uses idempotency middleware to prevent duplicate invoices
		billing.POST("/finalize", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Billing.Finalize)
	}

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Billing.ListInvoices)
		invoices.GET("/:id", h.Billing.GetInvoice)
	}
}
