package main

import (
	"service-plus/internal/auth"
	"service-plus/internal/dashboard"
	"service-plus/internal/directory"
	"service-plus/internal/handler"
	"service-plus/internal/middleware"
	"service-plus/pkg/config"
	"service-plus/pkg/database"
	"service-plus/pkg/jwtutil"
	"service-plus/pkg/logger"
	"service-plus/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting service-plus server...", cfg.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)

	// Connection routing core: directory pool plus lazy per-tenant pools
	router := database.NewRouter(cfg, log)
	executor := database.NewExecutor(router, log)

	// Core services
	resolver := directory.NewResolver(executor, log)
	jwt := jwtutil.New(&cfg.JWT)
	authenticator := auth.NewAuthenticator(executor, resolver, jwt, &cfg.Auth, log)
	aggregator := dashboard.NewAggregator(executor, resolver, cfg.Dashboard.FanoutLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authenticator, resolver)
	clientHandler := handler.NewClientHandler(resolver)
	dashboardHandler := handler.NewDashboardHandler(aggregator)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.GET("/clients", authHandler.GetClients)
	authGroup.POST("/login", authHandler.Login)

	// API routes - all require a valid token
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware(jwt))

	// Superadmin routes
	superadmin := api.Group("")
	superadmin.Use(middleware.RequireSuperAdmin)
	superadmin.GET("/dashboard/stats", dashboardHandler.GetStats)
	superadmin.POST("/clients", clientHandler.CreateClient)
	superadmin.DELETE("/clients/:id", clientHandler.DeactivateClient)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
