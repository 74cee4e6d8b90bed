package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty-service/internal/app"
	"realty-service/internal/config"
	"realty-service/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	lg, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg, lg)
	if err := srv.Build(ctx); err != nil {
		lg.Error("server failed to start", zap.Error(err))
		srv.Shutdown(context.Background())
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		lg.Info("shutting down server")
	case err := <-errCh:
		if err != nil {
			lg.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	lg.Info("server stopped gracefully")
}
