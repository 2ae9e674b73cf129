package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"deal-calculator/config"
	httpLayer "deal-calculator/http"
	"deal-calculator/logger"
	"deal-calculator/repository"
	"deal-calculator/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "deal-calculator: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Environment))

	cache, closeCache := newCache(cfg, log)
	defer closeCache()

	dealService := service.NewDealService(cache, log, service.MonteCarloConfig{
		DefaultTrials: cfg.MonteCarlo.DefaultTrials,
		MaxTrials:     cfg.MonteCarlo.MaxTrials,
		Volatility:    cfg.MonteCarlo.Volatility,
		Workers:       cfg.MonteCarlo.Workers,
	})

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Service:        dealService,
		Limiter:        rateLimiter,
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("deal calculator listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error during server shutdown", zap.Error(err))
	}

	log.Info("server exited")
	return nil
}

// newCache returns Redis when enabled and reachable, and the in-memory cache
// otherwise. Both expire entries after redis.ttl.
func newCache(cfg *config.Config, log *zap.Logger) (repository.CacheRepository, func()) {
	memoryCache := func() repository.CacheRepository {
		return repository.NewMemoryCache(cfg.Redis.TTL, cfg.Cache.MaxEntries)
	}
	if !cfg.Redis.Enabled {
		return memoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
		_ = redisCache.Close()
		return memoryCache(), func() {}
	}

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn("failed to close redis", zap.Error(err))
		}
	}
}
