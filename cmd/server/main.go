package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexroom/lexroom/internal/api"
	"github.com/lexroom/lexroom/internal/config"
	"github.com/lexroom/lexroom/internal/factory"
	"github.com/lexroom/lexroom/internal/services/auth"
	"github.com/lexroom/lexroom/internal/services/room"
	redisstorage "github.com/lexroom/lexroom/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageBackend,
		AuthConfig:  auth.Config{SessionDuration: cfg.SessionDuration},
		RoomConfig: room.Config{
			GracePeriod: cfg.RoomGracePeriod,
			IdleTimeout: cfg.RoomIdleTimeout,
		},
	}

	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the dictionary: a file when configured, otherwise whatever is in
	// storage (seeded out of band for the redis backend)
	if cfg.DictionaryPath != "" {
		if err := app.WordsService.LoadFromFile(ctx, cfg.DictionaryPath); err != nil {
			logger.Error("failed to load dictionary",
				slog.String("path", cfg.DictionaryPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else if err := app.WordsService.LoadFromStorage(ctx); err != nil {
		logger.Warn("no dictionary loaded; all words will be rejected",
			slog.String("error", err.Error()))
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.HTTPAddr
	server := api.NewServer(router, serverConfig, logger)

	// Background sweeps: idle room eviction and session expiry
	go app.RoomController.RunEvictionLoop(ctx, cfg.EvictionInterval)
	go func() {
		ticker := time.NewTicker(cfg.SessionDuration / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.AuthService.CleanExpiredSessions()
			}
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
