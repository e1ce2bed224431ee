package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/prexcol/backend/internal/application/catalog"
	orderapp "github.com/prexcol/backend/internal/application/order"
	paymentapp "github.com/prexcol/backend/internal/application/payment"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/infrastructure/config"
	"github.com/prexcol/backend/internal/infrastructure/logger"
	"github.com/prexcol/backend/internal/infrastructure/notification"
	"github.com/prexcol/backend/internal/infrastructure/persistence"
	"github.com/prexcol/backend/internal/interfaces/http/handler"
	"github.com/prexcol/backend/internal/interfaces/http/middleware"
	"github.com/prexcol/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Prexcol Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	methodRepo := persistence.NewGormPaymentMethodRepository(db.DB)

	// Transaction scope for the order workflow
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Role capability table shared by all services
	permissions := identity.NewCapabilityChecker()

	// Initialize application services
	orderService := orderapp.NewOrderService(txScope, orderRepo, permissions)
	storeService := catalogapp.NewStoreService(storeRepo, permissions)
	productService := catalogapp.NewProductService(txScope, productRepo, storeRepo, permissions)
	methodService := paymentapp.NewPaymentMethodService(methodRepo, permissions)

	// Order events go to Kafka when the notifier is enabled
	if cfg.Notifier.Enabled {
		publisher := notification.NewKafkaEventPublisher(cfg.Notifier, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Error closing event publisher", zap.Error(err))
			}
		}()
		orderService.SetEventPublisher(publisher)
		log.Info("Kafka event publisher enabled",
			zap.Strings("brokers", cfg.Notifier.Brokers),
			zap.String("topic", cfg.Notifier.Topic),
		)
	} else {
		orderService.SetEventPublisher(notification.NewNoOpEventPublisher())
	}

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService)
	storeHandler := handler.NewStoreHandler(storeService)
	productHandler := handler.NewProductHandler(productService)
	methodHandler := handler.NewPaymentMethodHandler(methodService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so panics and request logs carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning, no identity required)
	engine.GET("/health", healthHandler(db))

	// API routes require a resolved caller identity
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Identity())

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/mine", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/status", orderHandler.ChangeStatus)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/stores", storeHandler.Create)
	catalogRoutes.GET("/stores", storeHandler.List)
	catalogRoutes.GET("/stores/:id", storeHandler.GetByID)
	catalogRoutes.PUT("/stores/:id/active", storeHandler.SetActive)
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.POST("/products/:id/restock", productHandler.Restock)
	catalogRoutes.PUT("/products/:id/price", productHandler.ChangePrice)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)

	paymentRoutes := router.NewDomainGroup("payments", "/payment-methods")
	paymentRoutes.POST("", methodHandler.Create)
	paymentRoutes.GET("", methodHandler.List)
	paymentRoutes.POST("/:id/activate", methodHandler.Activate)
	paymentRoutes.POST("/:id/deactivate", methodHandler.Deactivate)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(orderRoutes).
		Register(catalogRoutes).
		Register(paymentRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
