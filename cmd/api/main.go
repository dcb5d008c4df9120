package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/api/routes"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/handlers"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/services"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Log.Warnf("Failed to read .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(".")
	if err != nil {
		logging.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Bootstrap(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Log.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.AdminEnabled() {
		logging.Log.Warn("No admin account configured, admin API is disabled")
	}

	// Validate the prize table before accepting traffic
	prizes, err := services.NewPrizeTable(cfg.Prizes)
	if err != nil {
		logging.Log.Fatalf("Invalid prize table: %v", err)
	}

	// Open the spin store
	ctx := context.Background()
	spinRepo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logging.Log.Fatalf("Failed to open spin store: %v", err)
	}
	defer func() {
		if err := spinRepo.Close(context.Background()); err != nil {
			logging.Log.Errorf("Error closing spin store: %v", err)
		}
	}()

	// Initialize Services
	spinService := services.NewSpinService(spinRepo, prizes)
	reportService := services.NewReportService(spinRepo, prizes)
	authService := services.NewAuthService(cfg.Admin, cfg.JWT)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		SpinHandler:  handlers.NewSpinHandler(spinService),
		AuthHandler:  handlers.NewAuthHandler(authService),
		AdminHandler: handlers.NewAdminHandler(reportService, spinService.Today),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Log.Infof("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalf("listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
	}

	logging.Log.Info("Server exiting")
}
