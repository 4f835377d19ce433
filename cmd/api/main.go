package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"botfolio/internal/config"
	"botfolio/internal/database"
	"botfolio/internal/fixtures"
	"botfolio/internal/handlers"
	"botfolio/internal/logger"
	"botfolio/internal/middleware"
	"botfolio/internal/services"
	"botfolio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"botfolio/internal/docstore"
	_ "botfolio/internal/docs" // Import swagger docs
)

// @title           Botfolio API
// @version         1.0
// @description     Back-office API for an algorithmic trading bot vendor: portfolio catalog management, performance analytics, activity logging, and backups.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Load embedded fixture catalogs
	fixtureCatalog, err := fixtures.Load()
	if err != nil {
		return fmt.Errorf("failed to load fixture catalogs: %w", err)
	}

	// Initialize services
	store := docstore.New(dbManager.DB())
	logService := services.NewActivityLogService(store)
	backupService := services.NewBackupService(store, logService)
	authService := services.NewAuthService(store, logService)
	portfolioService := services.NewPortfolioService(store, logService, backupService, fixtureCatalog)
	analyticsService := services.NewAnalyticsService(fixtureCatalog)
	extractionService := services.NewExtractionService(logService, appConfig.ExtractionDelay, time.Now().UnixNano())
	contactService := services.NewContactService(store)

	// Restore a persisted operator session, clearing it if malformed
	if session, err := authService.RestoreSession(); err == nil {
		log.Infow("Restored operator session", "username", session.Username)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	catalogHandler := handlers.NewCatalogHandler(fixtureCatalog, analyticsService)
	activityHandler := handlers.NewActivityHandler(logService)
	backupHandler := handlers.NewBackupHandler(backupService)
	extractionHandler := handlers.NewExtractionHandler(extractionService, logService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/contact", contactHandler.SubmitContact)

	// Public fixture catalog and chart statistics
	portfolios := v1.Group("/portfolios")
	portfolios.GET("", catalogHandler.ListPortfolios)
	portfolios.GET("/:id", catalogHandler.GetEntry(services.SourcePortfolio))
	portfolios.GET("/:id/equity", catalogHandler.GetEquity(services.SourcePortfolio))
	portfolios.GET("/:id/drawdown", catalogHandler.GetDrawdown(services.SourcePortfolio))
	portfolios.GET("/:id/monthly-returns", catalogHandler.GetMonthlyReturns(services.SourcePortfolio))
	portfolios.GET("/:id/heatmap", catalogHandler.GetHeatmap(services.SourcePortfolio))

	bots := v1.Group("/bots")
	bots.GET("", catalogHandler.ListBots)
	bots.GET("/:id", catalogHandler.GetEntry(services.SourceBot))
	bots.GET("/:id/equity", catalogHandler.GetEquity(services.SourceBot))
	bots.GET("/:id/drawdown", catalogHandler.GetDrawdown(services.SourceBot))
	bots.GET("/:id/monthly-returns", catalogHandler.GetMonthlyReturns(services.SourceBot))
	bots.GET("/:id/heatmap", catalogHandler.GetHeatmap(services.SourceBot))

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Admin routes
	admin := protected.Group("/admin")

	admin.GET("/dashboard", portfolioHandler.GetDashboard)

	adminPortfolios := admin.Group("/portfolios")
	adminPortfolios.GET("", portfolioHandler.GetPortfolios)
	adminPortfolios.POST("", portfolioHandler.CreatePortfolio)
	adminPortfolios.GET("/:id", portfolioHandler.GetPortfolio)
	adminPortfolios.PATCH("/:id/field", portfolioHandler.UpdatePortfolioField)
	adminPortfolios.PATCH("/:id/metric", portfolioHandler.UpdatePortfolioMetric)
	adminPortfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)

	logs := admin.Group("/logs")
	logs.GET("", activityHandler.GetLogs)
	logs.GET("/stats", activityHandler.GetLogStats)
	logs.GET("/export", activityHandler.ExportLogs)
	logs.DELETE("", activityHandler.ClearLogs)

	backups := admin.Group("/backups")
	backups.GET("", backupHandler.GetBackups)
	backups.POST("", backupHandler.CreateBackup)
	backups.POST("/import", backupHandler.ImportBackup)
	backups.POST("/:id/restore", backupHandler.RestoreBackup)
	backups.GET("/:id/export", backupHandler.ExportBackup)
	backups.DELETE("/:id", backupHandler.DeleteBackup)

	admin.POST("/reports/extract", extractionHandler.ExtractReport)
	admin.GET("/contact", contactHandler.GetContactMessages)

	log.Infof("Starting botfolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
