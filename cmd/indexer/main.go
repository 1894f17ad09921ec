// The indexer consumes reindex events and keeps the vector index in sync
// with the relational store. Run with -resync to rebuild the whole index
// and exit.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/config"
	dbRedis "github.com/hirepath/hirepath/internal/db/redis"
	logpkg "github.com/hirepath/hirepath/internal/logger"
	"github.com/hirepath/hirepath/internal/metrics"
	natsqueue "github.com/hirepath/hirepath/internal/queue/nats"
	"github.com/hirepath/hirepath/internal/repository/postgres"
	"github.com/hirepath/hirepath/internal/repository/vectorindex"
	openaiTransport "github.com/hirepath/hirepath/internal/transport/openai"
	"github.com/hirepath/hirepath/internal/usecase/indexsync"
	"github.com/hirepath/hirepath/internal/version"
)

func main() {
	resync := flag.Bool("resync", false, "rebuild the vector index from the relational store and exit")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting hirepath indexer",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Bool("resync", *resync),
	)

	metrics.RegisterCoreMetrics()

	ctx := context.Background()

	sqlDB, err := postgres.OpenDB(cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns)
	if err != nil {
		logger.Fatal("Failed to open postgres", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()
	pg := postgres.New(sqlDB)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create redis store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Redis not ready", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.AI.APIKey,
		BaseURL:    cfg.AI.BaseURL,
		Model:      cfg.AI.EmbeddingModel,
		Dimensions: cfg.AI.Dimensions,
		Logger:     logger,
	})

	vecRepo := vectorindex.New(store, embedder, cfg.Redis.KeyPrefix, cfg.AI.Dimensions, logger)
	if err := vecRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure vector indexes", zap.Error(err))
	}

	sync := indexsync.New(pg, vecRepo, logger)

	if *resync {
		if err := sync.Resync(ctx); err != nil {
			logger.Fatal("Resync failed", zap.Error(err))
		}
		logger.Info("Resync complete")
		return
	}

	queue, err := natsqueue.NewWithOptions(cfg.NATS.URL, cfg.NATS.Subject, natsqueue.Options{
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer queue.Close()

	// SubscribeReindex blocks until the context is cancelled, then drains.
	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Consuming reindex events", zap.String("subject", cfg.NATS.Subject))
	if err := queue.SubscribeReindex(runCtx, sync.Handle); err != nil {
		logger.Fatal("Subscription failed", zap.Error(err))
	}

	logger.Info("Indexer stopped gracefully")
}
