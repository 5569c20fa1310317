package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonhq/salon-api/internal/application/service"
	"github.com/salonhq/salon-api/internal/config"
	"github.com/salonhq/salon-api/internal/infrastructure/database"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/salonhq/salon-api/internal/presentation/http/handler"
	"github.com/salonhq/salon-api/internal/presentation/http/routes"
	"github.com/salonhq/salon-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	uow := repository.NewUnitOfWork(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Purge expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: failed to purge expired idempotency keys: %v", err)
			}
		}
	}()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	catalogService := service.NewCatalogService(serviceRepo, productRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, clientRepo, serviceRepo)
	billingService := service.NewBillingService(uow, invoiceRepo, clientRepo, productRepo, serviceRepo, appointmentRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, cfg.Dashboard)
	reportService := service.NewReportService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Client:      handler.NewClientHandler(clientService),
		Catalog:     handler.NewCatalogHandler(catalogService, cfg.Dashboard.LowStockThreshold),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Billing:     handler.NewBillingHandler(billingService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Report:      handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
