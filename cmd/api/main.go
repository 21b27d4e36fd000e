package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nearbuy-market/storefront-gateway/api/routes"
	"github.com/nearbuy-market/storefront-gateway/internal/auth"
	"github.com/nearbuy-market/storefront-gateway/internal/cart"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	"github.com/nearbuy-market/storefront-gateway/pkg/config"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
	"github.com/nearbuy-market/storefront-gateway/pkg/metrics"
	"github.com/nearbuy-market/storefront-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	backend, err := upstream.New(cfg.Upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	var (
		sessions    session.Store
		sessionPing interface {
			Ping(context.Context) error
		}
		rateLimiter *redis.Client
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store, err := session.NewRedisStore(redisClient, cfg.Session.TokenTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create session store", err)
			os.Exit(1)
		}
		sessions = store
		sessionPing = redisClient
		rateLimiter = redisClient
	default:
		sessions = session.NewMemoryStore()
		logg.Warn(context.Background(), "memory session backend active, sessions will not survive restarts")
	}

	cartService, err := cart.NewService(backend, sessions, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Backend:  backend,
		Sessions: sessions,
		Observer: cartService,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"session_backend": cfg.Session.Backend,
		"upstream":        cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting storefront gateway")

	params := routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		Backend:        backend,
		Sessions:       sessions,
		AuthService:    authService,
		CartService:    cartService,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if sessionPing != nil {
		params.SessionPing = sessionPing
	}
	if rateLimiter != nil {
		params.RateLimiter = rateLimiter
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(params),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
