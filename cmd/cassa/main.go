package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cassa/internal/config"
	apphttp "cassa/internal/http"
	"cassa/internal/log"
	"cassa/internal/services"
	"cassa/internal/storage"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     cfg.LogLevel,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	var kv storage.KV
	switch cfg.DataBackend {
	case "memory":
		kv = storage.NewMemory()
		logger.Info("Initialized memory backend")
	default:
		bolt, err := storage.OpenBolt(cfg.DBPath)
		if err != nil {
			logger.Error("Failed to open database",
				log.FieldError, err.Error(), "path", cfg.DBPath)
			os.Exit(1)
		}
		kv = bolt
		logger.Info("Initialized bolt backend", "path", cfg.DBPath)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("Failed to close database", log.FieldError, err.Error())
		}
	}()

	repo, err := storage.Open(kv, logger)
	if err != nil {
		logger.Error("Failed to load records", log.FieldError, err.Error())
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port,
		services.NewCatalog(repo, logger),
		services.NewSales(repo, logger),
		services.NewDayClose(repo, logger),
		services.NewStats(repo, logger, cfg.StatsWindowDays),
		logger,
	)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting cassa server",
			"port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
