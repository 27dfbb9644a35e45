package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orbitpm/api/audit"
	"github.com/orbitpm/api/auth"
	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/config"
	"github.com/orbitpm/api/controller"
	"github.com/orbitpm/api/dao"
	"github.com/orbitpm/api/db"
	"github.com/orbitpm/api/geoip"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/middleware"
	"github.com/orbitpm/api/scope"
	"github.com/orbitpm/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger("logging")
	defer logger.Sync()

	// Initialize the primary database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()

	registry := authz.DefaultRegistry()
	evaluator := authz.NewEvaluator(registry)
	scoper := scope.NewScoper(registry)

	geoClient := geoip.NewClient(config.GetString("geoip.endpoint"), config.GetDuration("geoip.timeout"))

	var auditRepository audit.Repository
	if config.GetString("audit.sink") == "elasticsearch" {
		esRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch audit sink", zap.Error(err))
		}
		auditRepository = esRepository
	} else {
		auditRepository = audit.NewGormRepository(db.DB)
	}
	auditService := audit.NewService(auditRepository, geoClient, config.GetDuration("geoip.timeout"))

	// Initialize DAOs
	principalDAO := dao.NewPrincipalDAO(db.DB)
	workspaceDAO := dao.NewWorkspaceDAO(db.DB)
	resourceDAO := dao.NewResourceDAO(db.DB, scoper)

	// Initialize the login guard
	limiter := auth.NewRedisRateLimiter(db.RedisClient)
	sessions := auth.NewRedisSessionManager(
		db.RedisClient,
		[]byte(config.GetString("auth.sessionKey")),
		config.GetDuration("auth.sessionTTL"),
	)
	loginService := auth.NewService(
		principalDAO,
		limiter,
		sessions,
		auditService,
		notificationService,
		validationUtil,
		auth.Config{
			MaxAttempts:     config.GetInt("auth.maxAttempts"),
			LockoutDuration: config.GetDuration("auth.lockoutDuration"),
		},
	)

	// Initialize controllers
	authController := controller.NewAuthController(loginService, sessions, principalDAO, workspaceDAO, resourceDAO, evaluator)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(100, time.Minute)) // 100 requests per minute

	// Register routes
	authController.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
