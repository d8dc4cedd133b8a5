// cmd/pixelvault/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixelvault/pixelvault/internal/api"
	"github.com/pixelvault/pixelvault/internal/config"
	"github.com/pixelvault/pixelvault/internal/drivers"
	"github.com/pixelvault/pixelvault/internal/media"
	"github.com/pixelvault/pixelvault/internal/store"
	"github.com/pixelvault/pixelvault/internal/transform"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(os.Getenv("PIXELVAULT_CONFIG"))
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	driver, err := buildDriver(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create storage driver", zap.Error(err))
	}

	source := store.New(driver, cfg.Storage.SourceContainer, logger)
	cache := store.New(driver, cfg.Storage.CacheContainer, logger)

	// Best-effort provisioning: a failure here is an operator concern, not
	// a reason to refuse traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := cache.EnsureContainer(ctx); err != nil {
		logger.Warn("cache container provisioning failed",
			zap.String("container", cfg.Storage.CacheContainer),
			zap.Error(err))
	}
	cancel()

	policy, err := transform.ParsePolicy(cfg.Media.ResizePolicy)
	if err != nil {
		logger.Fatal("invalid resize policy", zap.Error(err))
	}

	resolver := media.NewResolver(source, cfg.Media.Placeholder, logger)
	engine := transform.NewEngine(policy, logger)
	svc := media.NewService(cache, resolver, engine, cfg.Media.DefaultSource, logger)

	server := api.NewServer(cfg, logger, svc)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
		os.Exit(0)
	}()

	logger.Info("pixelvault started",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Mode),
		zap.String("policy", string(policy)))

	if err := server.Start(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func buildDriver(cfg *config.Config, logger *zap.Logger) (drivers.Driver, error) {
	switch cfg.Storage.Mode {
	case "local":
		if err := os.MkdirAll(cfg.Storage.Local.Path, 0750); err != nil {
			return nil, err
		}
		logger.Info("using local storage", zap.String("path", cfg.Storage.Local.Path))
		return drivers.NewLocalDriver(cfg.Storage.Local.Path, logger), nil

	case "s3":
		logger.Info("using S3-compatible storage", zap.String("endpoint", cfg.Storage.S3.Endpoint))
		return drivers.NewS3Driver(
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
			cfg.Storage.S3.Region,
			logger,
		)

	case "azure":
		logger.Info("using Azure Blob storage")
		if cfg.Storage.Azure.ConnectionString != "" {
			return drivers.NewAzureDriver(cfg.Storage.Azure.ConnectionString, logger)
		}
		return drivers.NewAzureDriverWithIdentity(cfg.Storage.Azure.ServiceURL, logger)

	default:
		// Load() validates the mode; this is unreachable in practice.
		return nil, os.ErrInvalid
	}
}
