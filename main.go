package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/houseofcoffee/US-Chamber/auth"
	"github.com/houseofcoffee/US-Chamber/config"
	"github.com/houseofcoffee/US-Chamber/directory"
	"github.com/houseofcoffee/US-Chamber/handlers"
	"github.com/houseofcoffee/US-Chamber/middleware"
	"github.com/houseofcoffee/US-Chamber/pkg/monitoring"
	"github.com/houseofcoffee/US-Chamber/services"
	"github.com/houseofcoffee/US-Chamber/shared/utils"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting chamber directory server")

	cfg := config.Load()
	if cfg.SheetsAPIURL == "" {
		slog.Error("SHEETS_API_URL is required")
		os.Exit(1)
	}

	shutdownMetrics, err := monitoring.Setup(context.Background(), monitoring.Config{
		ServiceName: "chamber-directory",
	})
	if err != nil {
		slog.Error("Failed to set up metrics", "error", err)
		os.Exit(1)
	}

	store := directory.NewStore()
	sheets := services.NewHTTPSheetsClient(cfg.SheetsAPIURL, cfg.SheetsTimeout)
	members := services.NewMemberService(store, sheets)
	sessions := auth.NewSessionManager(cfg.DirectoryPassword, cfg.SessionSigningKey, cfg.SessionTTL)

	// Sample generation is optional; the route reports not-available when
	// no API key is configured.
	var samples handlers.SampleGenerator
	if cfg.GeminiAPIKey != "" {
		sampleService, err := services.NewSampleService(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			slog.Error("Failed to initialize sample generator", "error", err)
			os.Exit(1)
		}
		samples = sampleService
	}

	// Initial load. A fetch failure degrades to an empty directory; the
	// server still starts and the next reload can recover.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.SheetsTimeout)
	if err := members.LoadDirectory(loadCtx); err != nil {
		slog.Warn("Initial directory load failed", "error", err)
	}
	cancelLoad()

	handler := handlers.NewDirectoryHandler(members, sessions, samples)

	mux := http.NewServeMux()
	handler.SetupRoutes(mux, middleware.SessionAuthMiddleware(sessions))
	mux.Handle("/health", utils.HealthHandler("chamber-directory"))
	mux.Handle("/metrics", monitoring.Handler())

	// Apply CORS and metrics middleware
	root := middleware.CORSMiddleware()(monitoring.HTTPMetricsMiddleware(mux))

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Chamber directory server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down chamber directory server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownMetrics(ctx); err != nil {
		slog.Error("Failed to shut down metrics", "error", err)
	}

	slog.Info("Chamber directory server exited")
}
