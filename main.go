package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"holding-sim/config"
	httpLayer "holding-sim/http"
	"holding-sim/logger"
	"holding-sim/repository"
	"holding-sim/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalf("invalid configuration: %v", err)
	}

	lg := logger.NewForEnv(cfg.Env)
	defer lg.Sync()
	zap.ReplaceGlobals(lg.Desugar())

	ctx := context.Background()

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisTTL)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			lg.Warnf("redis at %s is unreachable, results will not be cached: %v", cfg.RedisAddr, err)
		}
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache()
	}

	var simulationRepo repository.SimulationRepository
	if cfg.DatabaseURL != "" {
		pgRepo, err := repository.NewSimulationRepositoryPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			lg.Fatalf("failed to open simulation store: %v", err)
		}
		defer pgRepo.Close()
		simulationRepo = pgRepo
	} else {
		simulationRepo = repository.NewSimulationRepositoryMemory()
	}

	simulationService := service.NewSimulationService(
		service.Validator{Strict: cfg.StrictValidation},
		simulationRepo,
		cache,
	)
	runner := service.NewRunner(simulationService, cfg.SimulationLatency)
	sessionService := service.NewSessionService(
		repository.NewSessionRepositoryMemory(),
		simulationService,
		runner,
	)
	insightService := service.NewInsightService(cfg.OpenAIKey, cfg.OpenAIURL)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.NewSimulationHandler(simulationService),
		httpLayer.NewSessionHandler(sessionService, insightService),
		rateLimiter,
		lg,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Infof("API listening on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		lg.Errorf("error starting server: %v", err)
		return
	case <-quit:
		lg.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Errorf("error during server shutdown: %v", err)
	}

	lg.Info("server exited")
}
