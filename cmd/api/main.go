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

	"github.com/openride/ride-server/internal/api/handlers"
	"github.com/openride/ride-server/internal/api/routes"
	"github.com/openride/ride-server/internal/config"
	"github.com/openride/ride-server/internal/service/geocoding"
	"github.com/openride/ride-server/internal/service/notify"
	"github.com/openride/ride-server/internal/service/routing"
	"github.com/openride/ride-server/pkg/database"
	"github.com/openride/ride-server/pkg/logger"
	"github.com/openride/ride-server/pkg/monitoring"
	"github.com/openride/ride-server/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting OpenRide server",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp, _ = monitoring.New(monitoring.Config{})
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized",
			logger.String("app_name", cfg.NewRelic.AppName))
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Open the database; schema is created on first boot
	db, err := database.Open(database.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		appLogger.Fatal("Failed to open database", logger.Err(err))
	}
	defer database.Close(db)

	appLogger.Info("Database ready",
		logger.String("driver", cfg.Database.Driver),
	)

	// Outbound service clients
	routingClient := routing.NewClient(cfg.Routing.BaseURL, cfg.Routing.Timeout)
	geocodingClient := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout)
	notifier := notify.New(cfg.Notify.WebhookURL, cfg.Notify.Token, cfg.Notify.Timeout, appLogger)

	// Chat hub
	hub := websocket.NewHub(appLogger)
	go hub.Run()

	// Handlers with dependencies
	h := handlers.NewHandlers(db, appLogger, routingClient, geocodingClient, notifier, hub, nrApp)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if nrApp.IsEnabled() {
		routes.SetupRoutes(router, h, cfg, nrApp.Application)
	} else {
		routes.SetupRoutes(router, h, cfg, nil)
	}

	appLogger.Info("Routes configured")

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
