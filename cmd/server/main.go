package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minerace/minerace-go/internal/config"
	"github.com/minerace/minerace-go/internal/factory"
	"github.com/minerace/minerace-go/internal/server"
	"github.com/minerace/minerace-go/internal/services/session"
	redisstorage "github.com/minerace/minerace-go/internal/storage/redis"
)

func main() {
	cfg, err := config.Load(os.Getenv("MINERACE_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger: logger,
		Session: session.Config{
			CountdownSeconds: cfg.Game.CountdownSeconds,
			TickInterval:     cfg.Game.TickInterval(),
		},
	}
	if cfg.Redis.Enabled() {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		factoryCfg.Redis = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Hub.Run(ctx)

	serverCfg := server.DefaultConfig()
	serverCfg.Addr = cfg.Server.Addr()
	srv := server.New(server.NewRouter(app.Gateway, logger), serverCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	case sig := <-stop:
		logger.Info("received signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
