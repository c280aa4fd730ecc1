package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/wishboard/wishboard-backend/api/routes"
	"github.com/wishboard/wishboard-backend/internal/wishlist"
	"github.com/wishboard/wishboard-backend/pkg/config"
	"github.com/wishboard/wishboard-backend/pkg/firebase"
	"github.com/wishboard/wishboard-backend/pkg/logger"
	"github.com/wishboard/wishboard-backend/pkg/metrics"
	"github.com/wishboard/wishboard-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	storeClient, err := firebase.NewClient(cfg.Store.BaseURL, firebase.WithTimeout(cfg.Store.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap store client", err)
		os.Exit(1)
	}

	repo := wishlist.NewRepository(storeClient, cfg.Store.Collection)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{Store: repo})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	// Redis only backs the login rate limiter; the board runs without it.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, repo, redisClient, httpMetrics, wishlistService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
