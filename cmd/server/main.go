// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/api"
	"github.com/Toyz-Mini/abangbob-forecast/internal/cache"
	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/forecast"
	"github.com/Toyz-Mini/abangbob-forecast/internal/repository/postgres"
	"github.com/Toyz-Mini/abangbob-forecast/internal/service"
	"github.com/Toyz-Mini/abangbob-forecast/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache (noop when disabled)
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without memoization")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Initialize services
	engine := forecast.NewEngine(forecast.Config{
		ConsumptionWindowDays: cfg.Engine.ConsumptionWindowDays,
		LeadTimeDays:          cfg.Engine.LeadTimeDays,
		SafetyStockFactor:     cfg.Engine.SafetyStockFactor,
		CoverageDays:          cfg.Engine.CoverageDays,
		TrendUpThreshold:      cfg.Engine.TrendUpThreshold,
		TrendDownThreshold:    cfg.Engine.TrendDownThreshold,
	})
	forecastService := service.NewForecastService(
		postgres.NewOrderRepository(db),
		postgres.NewInventoryRepository(db),
		engine,
		forecastCache,
		cfg.Engine,
	)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{ForecastService: forecastService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
