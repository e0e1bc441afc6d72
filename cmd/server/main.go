package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/logging"
	"github.com/light-bringer/catalog-service/internal/services"
	"github.com/light-bringer/catalog-service/internal/transport/grpc/health"
)

const healthInterval = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the config file (defaults to $"+config.PathEnv+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting catalog service",
		zap.String("driver", cfg.Database.Driver),
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	errCh := make(chan error, 2)

	// 3. HTTP server
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      serviceOpts.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 4. gRPC health server
	var healthServer *health.Server
	if cfg.GRPC.Enabled {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		healthServer = health.NewServer(health.Checker(serviceOpts.Stores.Ping), healthInterval, logger)
		go healthServer.Watch(ctx)
		go func() {
			logger.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr()))
			if err := healthServer.GRPC().Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	// 5. Wait for a signal or a server failure
	select {
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
	case err = <-errCh:
		logger.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(shutdownErr))
	}
	if healthServer != nil {
		healthServer.GRPC().GracefulStop()
	}

	return err
}
