package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/api"
	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/internal/repository/memory"
	"github.com/bookdragons/storefront/internal/repository/postgres"
	"github.com/bookdragons/storefront/internal/seed"
	"github.com/bookdragons/storefront/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting Bookdragons API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("storage_driver", cfg.StorageDriver),
	)

	// Initialize repositories
	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = memory.NewRepositories(logger)
		if _, err := seed.Load(context.Background(), repos, logger); err != nil {
			logger.Fatal("Failed to seed demo catalog", zap.Error(err))
		}
	default:
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		// Run migrations
		if _, err := os.Stat(cfg.MigrationsDir); err == nil {
			if _, err := postgres.RunMigrations(context.Background(), db, cfg.MigrationsDir, logger); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		} else {
			logger.Warn("Migrations directory not found, skipping", zap.String("dir", cfg.MigrationsDir))
		}

		repos = postgres.NewRepositories(db, logger)
	}

	mailer := service.NewMailer(cfg.Mail, logger)

	// Initialize router
	router := api.NewRouter(cfg, repos, mailer, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
