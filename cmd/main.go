package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"nutrition-catalog-service/internal/clients"
	"nutrition-catalog-service/internal/config"
	"nutrition-catalog-service/internal/events"
	"nutrition-catalog-service/internal/handlers"
	"nutrition-catalog-service/internal/middleware"
	"nutrition-catalog-service/internal/notifications"
	"nutrition-catalog-service/internal/repository"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title Nutrition Catalog API
// @version 1.0.0
// @description Import reconciliation service for the nutrition product catalog: spreadsheet import/export, duplicate detection and interoperability sync

// @contact.name Catalog API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8093
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	// Set Redis password from GCP Secret Manager
	redisOpts.Password = secrets.GetRedisPassword()
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
		redisClient = nil
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize notification sink and repository
	notifier := notifications.NewNotifier(logger)
	catalogRepo := repository.NewCatalogRepository(redisClient, cfg.DefaultPageSize, notifier, logger)

	// Initialize event publisher for audit trail only if NATS_URL is set
	var eventsPublisher *events.Publisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL != "" {
		var err error
		eventsPublisher, err = events.NewPublisher(logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize interoperability client
	interopClient := clients.NewInteropClient()

	// Initialize handlers with event publisher (may be nil if NATS not configured)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, interopClient, notifier, eventsPublisher, cfg.MaxPageSize, cfg.TenantID)
	importHandler := handlers.NewImportHandler(catalogRepo, eventsPublisher, cfg.TenantID)

	// Populate the catalog from the interoperability service at startup; a
	// failure is survivable, the catalog can be reloaded via the API later.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogRepo.Reload(startupCtx, interopClient); err != nil {
		log.Printf("WARNING: Initial catalog load failed: %v (use POST /api/v1/catalog/reload to retry)", err)
	} else {
		log.Println("✓ Catalog loaded from interoperability service")
	}
	startupCancel()

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.Environment == "production" {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("nutrition-catalog-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("nutrition-catalog-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("tesseract", "nutrition_catalog_service")
	log.Println("✓ Prometheus metrics initialized")

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("nutrition-catalog-service"))
	router.Use(gosharedmw.CompressionMiddleware())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", gosharedmw.Handler())

	// API routes
	v1 := router.Group("/api/v1")
	{
		cat := v1.Group("/catalog")
		{
			cat.GET("/products", catalogHandler.GetProducts)
			cat.POST("/reload", catalogHandler.ReloadCatalog)
			cat.POST("/push", catalogHandler.PushCatalog)

			cat.GET("/manufacturers", catalogHandler.GetManufacturers)
			cat.GET("/formfactor-types", catalogHandler.GetFormFactorTypes)

			cat.GET("/import/template", importHandler.GetImportTemplate)
			cat.POST("/import", importHandler.ImportCatalog)
			cat.GET("/export", importHandler.ExportCatalog)

			cat.GET("/notifications", catalogHandler.GetNotifications)
			cat.DELETE("/notifications/:id", catalogHandler.DeleteNotification)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Nutrition catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down nutrition-catalog-service...")

	// Shutdown tracer provider
	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	log.Println("Nutrition catalog service stopped")
}
