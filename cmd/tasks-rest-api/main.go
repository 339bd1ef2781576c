// cmd/tasks-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/ginext"
	"github.com/Harshal6927/advanced-alchemy/internal/demo"
	"github.com/Harshal6927/advanced-alchemy/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	settings, err := initializeSettings()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(settings.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize the database plugin
	plugin, err := initializePlugin(settings, log)
	if err != nil {
		return fmt.Errorf("failed to initialize plugin: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(settings, plugin, log)
}

// initializeSettings loads settings from the file named by CONFIG_PATH, or
// from environment variables when CONFIG_PATH is not set
func initializeSettings() (*config.AppSettings, error) {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return config.Load(configPath)
	}
	return config.FromEnv()
}

// initializePlugin connects the configured database and prepares the request
// session lifecycle for the router
func initializePlugin(settings *config.AppSettings, log logger.Logger) (*ginext.Plugin, error) {
	plugin, err := ginext.New(log, &ginext.Config{
		Database: *settings.Database,
		Session:  *settings.Session,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin: %w", err)
	}

	if err := plugin.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to start plugin: %w", err)
	}

	return plugin, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(settings *config.AppSettings, plugin *ginext.Plugin, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register the session middleware and error handler
	if err := plugin.Apply(r); err != nil {
		return fmt.Errorf("failed to apply plugin: %w", err)
	}

	// Setup API routes
	demo.SetupRoutes(r, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", settings.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Close database connections after in-flight requests finish
	if err := plugin.Shutdown(); err != nil {
		return fmt.Errorf("failed to close database connections: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
