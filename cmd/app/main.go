package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/avraam311/bg-remover/internal/api/handlers/images"
	"github.com/avraam311/bg-remover/internal/api/server"
	"github.com/avraam311/bg-remover/internal/infra/rembg"
	service "github.com/avraam311/bg-remover/internal/service/images"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/go-playground/validator/v10"
)

const (
	configFilePath = "config/local.yaml"
	envFilePath    = ".env"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zlog.Init()
	val := validator.New()
	cfg := config.New()
	if err := cfg.LoadEnvFiles(envFilePath); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to load env file")
	}
	cfg.EnableEnv("")
	if err := cfg.LoadConfigFiles(configFilePath); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config file")
	}

	engine := rembg.New(cfg.GetString("engine.url"), cfg.GetDuration("engine.timeout"))
	pingStrategy := retry.Strategy{
		Attempts: cfg.GetInt("retry.attempts"),
		Delay:    cfg.GetDuration("retry.delay"),
		Backoff:  cfg.GetFloat64("retry.backoff"),
	}
	if err := retry.Do(func() error { return engine.Ping(ctx) }, pingStrategy); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("removal engine is not reachable")
	}

	srvc := service.NewService(engine, cfg.GetDuration("engine.timeout"), cfg.GetInt("worker.max_concurrent"))
	hand := handlers.NewHandler(srvc, val, int64(cfg.GetInt("upload.max_size")))

	router := server.NewRouter(cfg.GetString("server.gin_mode"), hand)
	srv := server.NewServer(cfg.GetString("server.port"), router)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to run server")
		}
	}()
	zlog.Logger.Info().Msg("server is running")

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdown()

	zlog.Logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}
}
