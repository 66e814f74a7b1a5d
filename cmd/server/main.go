// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"template-forge/internal/common/config"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
	"template-forge/internal/common/observability"
	"template-forge/internal/generate"
	"template-forge/internal/inference"
	"template-forge/internal/publish"
	"template-forge/internal/ratelimit"
	"template-forge/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting template-forge",
		zap.String("environment", cfg.App.Environment),
		zap.String("llm_provider", cfg.LLM.Provider),
	)

	obs := observability.New("template-forge")
	defer obs.Shutdown()

	genLimiter, pubLimiter, redisClient := buildLimiters(cfg, log, zapLog)
	if redisClient != nil {
		defer redisClient.Close()
	}

	httpClient := httpclient.NewClient(cfg.LLM.TimeoutDuration())

	completer, err := inference.New(cfg.LLM, httpClient, log)
	if err != nil {
		zapLog.Fatal("inference client init failed", zap.Error(err))
	}

	generator := generate.NewService(genLimiter, completer, log)
	publisher := publish.NewService(cfg.Gist, httpclient.NewClient(cfg.Gist.TimeoutDuration()), pubLimiter, log)

	handler := server.NewHandler(generator, publisher, obs, log)
	router := server.NewRouter(handler, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildLimiters constructs one limiter per protected operation, backed by
// Redis when configured for multi-instance deployments and by process
// memory otherwise.
func buildLimiters(cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (ratelimit.Limiter, ratelimit.Limiter, *redis.Client) {
	genCfg := ratelimit.Config{
		Window:      cfg.RateLimit.Generation.Window(),
		MaxRequests: cfg.RateLimit.Generation.MaxRequests,
	}
	pubCfg := ratelimit.Config{
		Window:      cfg.RateLimit.Publish.Window(),
		MaxRequests: cfg.RateLimit.Publish.MaxRequests,
	}

	if cfg.RateLimit.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			zapLog.Fatal("redis ping failed", zap.Error(err))
		}

		return ratelimit.NewRedis(client, genCfg, "generation", log),
			ratelimit.NewRedis(client, pubCfg, "publish", log),
			client
	}

	return ratelimit.NewMemory(genCfg), ratelimit.NewMemory(pubCfg), nil
}
