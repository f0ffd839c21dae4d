package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"emi-calculator/config"
	httpLayer "emi-calculator/http"
	"emi-calculator/logging"
	"emi-calculator/repository"
	"emi-calculator/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger is configured from cfg, so fall back to a default one
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.Redis.Addr != "" {
		redisCache, err := repository.NewRedisCache(ctx, repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.CacheTTL,
		}, logger)
		if err != nil {
			logger.Fatal("failed to init redis cache", zap.Error(err))
		}
		defer redisCache.Close()
		cache = redisCache
		logger.Info("using redis summary cache", zap.String("addr", cfg.Redis.Addr))
	}

	loanService, err := service.NewLoanService(cache, cfg.Defaults.Parameters(), logger)
	if err != nil {
		logger.Fatal("failed to create loan service", zap.Error(err))
	}

	sessions := repository.NewSessionRepositoryMemory(cfg.SessionTTL)
	defer sessions.Stop()
	sessionService := service.NewSessionService(sessions, loanService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	mux := httpLayer.NewRouter(
		httpLayer.NewLoanHandler(loanService, logger),
		httpLayer.NewSessionHandler(sessionService, logger),
		rateLimiter,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("EMI calculator listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("error starting server", zap.Error(err))
		return
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
