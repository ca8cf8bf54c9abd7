package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/config"
	"github.com/tinashem/employee-portal/internal/container"
	httpserver "github.com/tinashem/employee-portal/internal/interfaces/http"
	"github.com/tinashem/employee-portal/pkg/utils"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting employee portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	app, err := container.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	services := app.Services()
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:          cfg.Server.Host,
			Port:          cfg.Server.Port,
			ReadTimeout:   cfg.Server.ReadTimeout,
			WriteTimeout:  cfg.Server.WriteTimeout,
			JWTSecret:     cfg.Auth.JWTSecret,
			LoginAttempts: cfg.RateLimit.LoginAttempts,
			LoginWindow:   cfg.RateLimit.LoginWindow,
		},
		httpserver.Services{
			Auth:         services.Auth,
			Requisition:  services.Requisition,
			Leave:        services.Leave,
			Notification: services.Notification,
			Task:         services.Task,
			Audit:        services.Audit,
			Export:       services.Export,
		},
		app.ServiceLogger(),
	)

	// Cancel the server context on SIGINT/SIGTERM for a graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
