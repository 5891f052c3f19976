package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/config"
	"github.com/garyjia/badge-intake/internal/exporter"
	"github.com/garyjia/badge-intake/internal/importer"
	httpserver "github.com/garyjia/badge-intake/internal/interfaces/http"
	"github.com/garyjia/badge-intake/internal/metrics"
	"github.com/garyjia/badge-intake/internal/notification"
	"github.com/garyjia/badge-intake/internal/rename"
	"github.com/garyjia/badge-intake/internal/validation"
	"github.com/garyjia/badge-intake/pkg/utils"
)

const version = "1.0.0"

func main() {
	configPath := "configs/config.yaml"
	if p := os.Getenv("BADGE_CONFIG"); p != "" {
		configPath = p
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(cfg.ToLoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting badge intake service",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("notification_provider", cfg.Notification.Provider))

	m := metrics.New()

	// Initialize notification channel
	notifier, err := notification.New(cfg.ToNotificationConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize notifier", zap.Error(err))
	}
	dispatcher := notification.NewDispatcher(notifier, cfg.Notification.Timeout, logger)

	// Initialize engines
	validator := validation.New(cfg.ToDocumentRules())
	exp := exporter.New(logger,
		exporter.WithValidator(validator),
		exporter.WithDispatcher(dispatcher),
		exporter.WithMetrics(m))
	imp := importer.New(logger, importer.WithMetrics(m))
	renamer := rename.NewRenamer(logger, m)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Mode:           cfg.Server.Mode,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Version:        version,
	}, httpserver.Services{
		Exporter: exp,
		Importer: imp,
		Renamer:  renamer,
		Relay:    dispatcher,
	}, m, logger)

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}

	// Let in-flight export notifications finish
	dispatcher.Wait()

	logger.Info("Server exited successfully")
}
