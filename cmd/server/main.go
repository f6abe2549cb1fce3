package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartapp "github.com/tommyfx/storefront/internal/application/cart"
	catalogapp "github.com/tommyfx/storefront/internal/application/catalog"
	checkoutapp "github.com/tommyfx/storefront/internal/application/checkout"
	orderapp "github.com/tommyfx/storefront/internal/application/order"
	domainnotification "github.com/tommyfx/storefront/internal/domain/notification"
	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/infrastructure/auth"
	"github.com/tommyfx/storefront/internal/infrastructure/cache"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
	"github.com/tommyfx/storefront/internal/infrastructure/logger"
	"github.com/tommyfx/storefront/internal/infrastructure/notification"
	"github.com/tommyfx/storefront/internal/infrastructure/persistence"
	"github.com/tommyfx/storefront/internal/interfaces/http/handler"
	"github.com/tommyfx/storefront/internal/interfaces/http/middleware"
	"github.com/tommyfx/storefront/internal/interfaces/http/router"
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

	log.Info("Starting storefront backend",
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

	// Cart store (Redis, with in-memory fallback)
	cartStore, err := cache.NewCartStoreFactory(cfg.Redis, cfg.Cart.TTL,
		cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}
	defer func() {
		if closer, ok := cartStore.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Error("Error closing cart store", zap.Error(err))
			}
		}
	}()

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Shipping policy from config
	shippingPolicy, err := shippingPolicyFromConfig(cfg.Shipping)
	if err != nil {
		log.Fatal("Invalid shipping configuration", zap.Error(err))
	}

	// Order confirmation notifier
	var notifier domainnotification.Notifier
	if cfg.Notification.Enabled {
		httpNotifier, err := notification.NewHTTPNotifier(&cfg.Notification, log)
		if err != nil {
			log.Fatal("Failed to create notifier", zap.Error(err))
		}
		notifier = httpNotifier
		log.Info("Order confirmation notifier enabled",
			zap.String("endpoint", cfg.Notification.Endpoint))
	} else {
		notifier = notification.NewNoopNotifier()
		log.Info("Order confirmation notifier disabled")
	}

	// Initialize application services
	cartService := cartapp.NewService(cartStore, productRepo)
	checkoutService := checkoutapp.NewService(cartStore, orderRepo, notifier, shippingPolicy, log)
	orderService := orderapp.NewService(orderRepo)
	productService := catalogapp.NewProductService(productRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. CartSession - Resolve or mint the cart session id
	// 8. OptionalAuth - Attach user identity when a token is present
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", middleware.CartSessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.CartSession(middleware.CartSessionConfig{
		CookieName:   cfg.Cart.CookieName,
		CookieMaxAge: cfg.Cart.TTL,
		CookieSecure: cfg.Cart.CookieSecure,
	}))
	engine.Use(middleware.OptionalAuth(jwtService))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(cartHandler).
		Register(checkoutHandler).
		Register(orderHandler).
		Register(productHandler).
		Register(systemHandler)
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

	// Let in-flight confirmation dispatches finish
	checkoutService.Wait()

	log.Info("Server exited gracefully")
}

// shippingPolicyFromConfig parses the configured shipping rates
func shippingPolicyFromConfig(cfg config.ShippingConfig) (*order.ShippingPolicy, error) {
	standard, err := decimal.NewFromString(cfg.StandardCost)
	if err != nil {
		return nil, err
	}
	express, err := decimal.NewFromString(cfg.ExpressCost)
	if err != nil {
		return nil, err
	}
	threshold, err := decimal.NewFromString(cfg.FreeThreshold)
	if err != nil {
		return nil, err
	}
	return order.NewShippingPolicy(standard, express, threshold)
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
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
