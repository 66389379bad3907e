package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/middleware"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/registry"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/database"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/logger"
)

// Run boots one service binary: config, logger, database, redis, router,
// then every module the binary blank-imported. It blocks until SIGINT or
// SIGTERM and drains in-flight requests before exiting.
func Run(serviceName string) {
	config.LoadConfig()
	cfg := config.GlobalConfig

	logger.Init(serviceName, cfg.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	redisClient := database.InitRedis()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  redisClient,
		Router: router,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to initialize modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting",
			zap.String("service", serviceName), zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Log.Info("Shutting down server", zap.String("service", serviceName))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}

	if err := registry.CloseModules(); err != nil {
		logger.Log.Warn("Failed to close modules", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Log.Warn("Failed to close redis client", zap.Error(err))
	}
	logger.Log.Info("Server stopped", zap.String("service", serviceName))
}
