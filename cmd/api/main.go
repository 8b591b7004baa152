package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/statsboard/internal/app"
	"github.com/riskibarqy/statsboard/internal/config"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logging.NewJSON(logging.LevelInfo)
		log.Error("invalid configuration", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}

	log := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("starting statsboard")
	if err := a.Run(ctx); err != nil {
		log.Error("service stopped with error", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("statsboard stopped")
}
