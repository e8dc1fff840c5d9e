package main

import (
	"fmt"
	"net/http"
	"os"

	"moneybook/internal/config"
	"moneybook/internal/database"
	"moneybook/internal/handlers"
	"moneybook/internal/logger"
	"moneybook/internal/middleware"
	"moneybook/internal/oauth"
	"moneybook/internal/services"
	"moneybook/internal/validator"

	"github.com/gin-gonic/gin"
)

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
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create the database manager; this is the only storage connection the
	// process holds, injected into every service.
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, cfg.SessionTTL)
	transactionService := services.NewTransactionService(db)
	assetService := services.NewAssetService(db)
	dataService := services.NewDataService(db)
	provider := oauth.NewProvider(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(
		userService, sessionService, provider,
		cfg.SessionSecret, int(cfg.SessionTTL.Seconds()), cfg.IsProduction())
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	assetHandler := handlers.NewAssetHandler(assetService)
	dataHandler := handlers.NewDataHandler(dataService)
	pageHandler := handlers.NewPageHandler(sessionService, "public")

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	gate := middleware.StorageGate(dbManager)
	sessionAuth := middleware.SessionAuth(sessionService)

	// Health check endpoint (deliberately not behind the storage gate)
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Entry point and static assets
	router.GET("/", gate, pageHandler.Home)
	router.StaticFile("/script.js", "./public/script.js")

	// Login flow
	auth := router.Group("/auth/kakao", gate)
	auth.GET("", authHandler.Login)
	auth.GET("/callback", authHandler.Callback)
	router.GET("/logout", gate, authHandler.Logout)

	// Session-gated identity endpoint
	router.GET("/user", gate, sessionAuth, authHandler.GetUser)

	// Owner-scoped data API
	api := router.Group("/api", gate, sessionAuth)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	assets := api.Group("/assets")
	assets.GET("", assetHandler.ListAssets)
	assets.POST("", assetHandler.CreateAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	api.DELETE("/data", dataHandler.ResetData)

	log.Infof("Starting moneybook server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
