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

	"imagestudio/internal/http/handlers"
	httpapi "imagestudio/internal/http/httpapi"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/infra"
	"imagestudio/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	gw, store, err := imagegen.NewFromConfig(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build image pipeline")
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMin, time.Minute)
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory rate limiter")
	} else if rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMin, time.Minute)
	}

	app := handlers.NewApp(gw, store, cfg.PublicBaseURL, &logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:      logger,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
		Language:    cfg.PromptLanguage,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("output_dir", store.BasePath()).
			Str("output_format", string(store.Format())).
			Bool("remote_enabled", cfg.StabilityAPIKey != "").
			Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
