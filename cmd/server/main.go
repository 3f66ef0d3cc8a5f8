package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/classquiz/internal/api"
	"github.com/mcoot/classquiz/internal/factory"
)

func main() {
	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	// Set up logging with JSON output
	level, _ := cfg.level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(cfg.factoryConfig(logger))
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Import the roster, if any
	if cfg.roster != "" {
		result, err := app.RosterService.ImportFile(ctx, cfg.roster)
		if err != nil {
			return fmt.Errorf("failed to import roster: %w", err)
		}
		logger.Info("roster loaded",
			slog.String("path", cfg.roster),
			slog.Int("created", result.Created),
			slog.Int("skipped", result.Skipped),
		)
	}

	// Drop live hubs nobody watches any more
	go app.HubManager.RunCleanup(ctx, time.Minute)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Storage:       app.Storage,
		RosterService: app.RosterService,
		HubManager:    app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", app.Metrics.Handler())

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	serverConfig.ShutdownTimeout = cfg.shutdownTimeout
	server := api.NewServer(mux, serverConfig, logger)
	if err := server.Listen(); err != nil {
		return err
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.storage),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
