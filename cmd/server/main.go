package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feastline/menu-api/internal/config"
	"github.com/feastline/menu-api/internal/server"
	"github.com/feastline/menu-api/internal/storage/postgres"
	"github.com/feastline/menu-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, log)

	go func() {
		log.Info("menu backend listening", "address", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("graceful shutdown error", "error", err)
	}
}
