// cmd/search-engine/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HezinTUKE/car-service/internal/common/config"
	"github.com/HezinTUKE/car-service/internal/common/database"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/observability"
	"github.com/HezinTUKE/car-service/internal/rag/embedding"
	"github.com/HezinTUKE/car-service/internal/rag/executor"
	"github.com/HezinTUKE/car-service/internal/rag/index"
	"github.com/HezinTUKE/car-service/internal/rag/intentcache"
	"github.com/HezinTUKE/car-service/internal/rag/interpreter"
	"github.com/HezinTUKE/car-service/internal/rag/query"
	"github.com/HezinTUKE/car-service/internal/rag/syncer"
	"github.com/HezinTUKE/car-service/internal/server"
	"github.com/HezinTUKE/car-service/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting search engine...")

	obs := observability.New("search-engine")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init OpenSearch with retry ---
	var osClient *database.OpenSearchClient
	err = retryWithBackoff(func() error {
		var err error
		osClient, err = database.NewOpenSearch(cfg.Database.OpenSearch)
		if err != nil {
			return err
		}
		return osClient.Ping()
	}, 15, 2*time.Second, zapLog, "OpenSearch connection")

	if err != nil {
		zapLog.Fatal("opensearch failed after retries", zap.Error(err))
	}
	zapLog.Info("OpenSearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the engine ---
	embedder := embedding.NewOllamaProvider(&embedding.Config{
		BaseURL:   cfg.Ollama.BaseURL,
		Model:     cfg.Ollama.EmbeddingModel,
		Dimension: cfg.RAG.Dimension,
		Timeout:   cfg.Ollama.GetEmbeddingTimeout(),
		RateLimit: cfg.Ollama.EmbeddingRateLimit,
	}, log)

	interp := interpreter.NewOllamaInterpreter(&interpreter.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.GenerationModel,
		Timeout: cfg.Ollama.GetGenerationTimeout(),
	}, log)

	indexClient := index.NewClient(osClient.Client, cfg.RAG.IndexName, log)
	builder := query.NewBuilder(embedder, cfg.RAG.NearestNeighbors)
	cache := intentcache.New(redis.Client, cfg.RAG.GetIntentCacheTTL(), log)
	store := storage.NewServiceStore(pg.DB, log)
	sync := syncer.New(embedder, indexClient, store, cfg.RAG.BackfillPageSize, log)
	exec := executor.New(interp, builder, indexClient, cache, cfg.RAG.ScoreThreshold, log)

	srv := server.New(exec, sync, indexClient, obs, cfg.RAG.GetSearchTimeout(), log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: srv.Handler(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Search engine stopped gracefully")
}
