package main

import (
	"net/http"
	"os"
	"strconv"

	"todoview-api/internal/database"
	"todoview-api/internal/handlers"
	"todoview-api/internal/logging"
	"todoview-api/internal/middleware"
	"todoview-api/internal/storage"
	apptls "todoview-api/internal/tls"
	"todoview-api/internal/view"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Initialize logging first
	logConfig := logging.NewLogConfigFromEnv()
	logging.InitLogger(logConfig)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	pageSize, err := strconv.Atoi(os.Getenv("VIEW_PAGE_SIZE"))
	if err != nil || pageSize < 1 {
		pageSize = 5
	}

	// Check if we should use in-memory storage (for development)
	useInMemory := os.Getenv("USE_MEMORY_STORAGE") == "true"

	var store storage.Store
	var db *gorm.DB

	if useInMemory {
		logging.Logger.Info("Using in-memory storage")
		store = storage.NewStorage()
	} else {
		dbConfig := database.NewConfigFromEnv()
		db, err = database.Connect(dbConfig)
		if err != nil {
			logging.Logger.Fatalf("Failed to connect to database: %v", err)
		}

		if err := database.AutoMigrate(db); err != nil {
			logging.Logger.Fatalf("Failed to run migrations: %v", err)
		}

		logging.Logger.Info("PostgreSQL storage initialized successfully")
		store = storage.NewPostgresStorage(db)
	}

	controller := view.NewController(store)
	viewHandler := handlers.NewViewHandler(controller, pageSize)
	healthHandler := handlers.NewHealthHandler(db)

	// Set up Gin router (without default logger since we use our own)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.SecurityHeaders())

	corsConfig := middleware.NewCORSConfigFromEnv()
	router.Use(middleware.CORS(corsConfig))

	securityConfig := middleware.NewSecurityConfigFromEnv()
	router.Use(middleware.RequestSizeLimit(securityConfig.MaxRequestBodySize))

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorSanitizer())

	rateLimitConfig := middleware.NewRateLimitConfigFromEnv()
	router.Use(middleware.GlobalRateLimiter(rateLimitConfig))

	// API version 1 routes
	v1 := router.Group("/api/v1")
	{
		viewGroup := v1.Group("/view")
		{
			viewGroup.GET("", viewHandler.Render)
			viewGroup.POST("/todos", viewHandler.AddTodo)
			viewGroup.PUT("/todos/:todoId", middleware.UUIDValidator("todoId"), viewHandler.EditTodo)
			viewGroup.DELETE("/todos/:todoId", middleware.UUIDValidator("todoId"), viewHandler.DeleteTodo)
			viewGroup.POST("/todos/:todoId/toggle", middleware.UUIDValidator("todoId"), viewHandler.ToggleTodo)
			viewGroup.POST("/toggle-page", viewHandler.TogglePage)
			viewGroup.POST("/clear-completed", viewHandler.ClearCompleted)
		}
	}

	// Health check endpoints
	router.GET("/health", healthHandler.BasicHealth)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
	router.GET("/health/live", healthHandler.LivenessProbe)

	tlsConfig := apptls.NewConfigFromEnv()
	if tlsConfig.Enabled {
		runTLS(router, tlsConfig)
		return
	}

	logging.Logger.Infof("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}

// runTLS serves HTTPS, optionally redirecting plain HTTP to it
func runTLS(router *gin.Engine, cfg *apptls.Config) {
	serverTLSConfig, err := cfg.CreateTLSConfig()
	if err != nil {
		logging.Logger.Fatalf("Failed to configure TLS: %v", err)
	}

	if cfg.RedirectHTTP {
		go func() {
			logging.Logger.Infof("Starting HTTP redirect server on port %s...", cfg.HTTPPort)
			redirectServer := &http.Server{
				Addr:    ":" + cfg.HTTPPort,
				Handler: apptls.HTTPSRedirectHandler(cfg.Port),
			}
			if err := redirectServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Logger.Errorf("HTTP redirect server failed: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: serverTLSConfig,
	}

	logging.Logger.Infof("Starting HTTPS server on port %s...", cfg.Port)
	if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
		logging.Logger.Fatalf("Failed to start HTTPS server: %v", err)
	}
}
