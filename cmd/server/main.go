package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-api/internal/config"
	"fitness-api/internal/handlers"
	"fitness-api/internal/middleware"
	"fitness-api/pkg/server"
)

// main runs every Lambda handler behind one local gin server
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()
	logger := container.Logger

	adapters, err := handlers.NewAdapters(container)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build handlers")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	routerConfig := &handlers.RouterConfig{
		Adapters:    adapters,
		Config:      cfg,
		Logger:      logger,
		HealthCheck: container.CheckHealth,
	}
	if cfg.Auth.JWTSecret != "" {
		routerConfig.AuthService = middleware.NewAuthService(&middleware.AuthConfig{
			JWTSecret:     cfg.Auth.JWTSecret,
			TokenDuration: time.Duration(cfg.Auth.ExpiryHours) * time.Hour,
			Issuer:        cfg.Auth.Issuer,
		})
	} else {
		logger.Warn("JWT_SECRET is not set; every request is anonymous")
	}

	router := gin.New()
	handlers.SetupMiddleware(router, routerConfig)
	handlers.SetupRoutes(router, routerConfig)
	if !cfg.IsProduction() {
		handlers.SetupDevelopmentRoutes(router, routerConfig)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"port":     cfg.Port,
		"store":    cfg.Store.Driver,
		"handlers": handlers.Names(),
	}).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
