package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userAnalytics/internal/config"
	"userAnalytics/internal/fetch"
	"userAnalytics/internal/grpcserver"
	"userAnalytics/internal/logging"
	"userAnalytics/internal/pipeline"
	"userAnalytics/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			logger.Error("users endpoint rejected the request", slog.Int("status", se.StatusCode), slog.Any("error", err))
		} else {
			logger.Error("fatal", slog.Any("error", err))
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Fetch, store, reload and enrich once
	client := fetch.NewClient(cfg.API.URL, cfg.API.Timeout, logger)
	users, err := pipeline.New(client, cfg.Database.Path, logger).Run(ctx)
	if err != nil {
		return err
	}

	// Start gRPC
	if cfg.GRPC.Address != "" {
		shutdown, err := grpcserver.StartGRPC(cfg, logger, users)
		if err != nil {
			return fmt.Errorf("start grpc: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", cfg.GRPC.Address))
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logger.Error("grpc shutdown error", slog.Any("error", err))
			}
		}()
	}

	// Serve the dashboard until a signal arrives
	return web.NewServer(logger, users).ListenAndServe(ctx, cfg.HTTP.Address, shutdownTimeout)
}
