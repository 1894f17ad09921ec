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
	"golang.org/x/time/rate"

	"github.com/hirepath/hirepath/internal/auth"
	"github.com/hirepath/hirepath/internal/config"
	dbRedis "github.com/hirepath/hirepath/internal/db/redis"
	logpkg "github.com/hirepath/hirepath/internal/logger"
	"github.com/hirepath/hirepath/internal/metrics"
	natsqueue "github.com/hirepath/hirepath/internal/queue/nats"
	"github.com/hirepath/hirepath/internal/repository/postgres"
	"github.com/hirepath/hirepath/internal/repository/vectorindex"
	"github.com/hirepath/hirepath/internal/resilience"
	chiTransport "github.com/hirepath/hirepath/internal/transport/chi"
	openaiTransport "github.com/hirepath/hirepath/internal/transport/openai"
	"github.com/hirepath/hirepath/internal/usecase/account"
	applicationsuc "github.com/hirepath/hirepath/internal/usecase/applications"
	dashboarduc "github.com/hirepath/hirepath/internal/usecase/dashboard"
	healthuc "github.com/hirepath/hirepath/internal/usecase/health"
	"github.com/hirepath/hirepath/internal/usecase/hybridsearch"
	jobsuc "github.com/hirepath/hirepath/internal/usecase/jobs"
	"github.com/hirepath/hirepath/internal/usecase/queryparser"
	"github.com/hirepath/hirepath/internal/version"
)

func main() {
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

	logger.Info("Starting hirepath API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	metrics.RegisterCoreMetrics()

	ctx := context.Background()

	// Relational store
	sqlDB, err := postgres.OpenDB(cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns)
	if err != nil {
		logger.Fatal("Failed to open postgres", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	pg := postgres.New(sqlDB)
	if err := pg.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}
	logger.Info("Connected to postgres")

	// Vector index store
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
	logger.Info("Connected to redis")

	// AI provider clients
	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.AI.APIKey,
		BaseURL:    cfg.AI.BaseURL,
		Model:      cfg.AI.EmbeddingModel,
		Dimensions: cfg.AI.Dimensions,
		Logger:     logger,
	})
	chat := openaiTransport.NewChatClient(&openaiTransport.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.ChatModel,
		Logger:  logger,
	})

	executor := resilience.NewExecutor(resilience.DefaultConfig(), logger)

	vecRepo := vectorindex.New(store, embedder, cfg.Redis.KeyPrefix, cfg.AI.Dimensions, logger)
	if err := vecRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure vector indexes", zap.Error(err))
	}

	// Reindex event bus. Leaving the URL empty disables publishing; the
	// vector index then only changes on explicit resync runs.
	var queue *natsqueue.Queue
	if cfg.NATS.URL != "" {
		queue, err = natsqueue.NewWithOptions(cfg.NATS.URL, cfg.NATS.Subject, natsqueue.Options{
			Executor: executor,
			Logger:   logger,
		})
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer queue.Close()
		logger.Info("Connected to NATS", zap.String("subject", cfg.NATS.Subject))
	} else {
		logger.Warn("NATS disabled, reindex events will not be published")
	}

	// Pass nil interface (not typed nil pointer!) when the queue is disabled.
	var accountPublisher account.ReindexPublisher
	var jobsPublisher jobsuc.ReindexPublisher
	if queue != nil {
		accountPublisher = queue
		jobsPublisher = queue
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	if err != nil {
		logger.Fatal("Failed to create token manager", zap.Error(err))
	}

	parser := queryparser.New(chat, executor, time.Duration(cfg.AI.ParseTimeoutSec)*time.Second, logger)

	accountSvc := account.New(pg, tokens, accountPublisher, logger)
	jobsSvc := jobsuc.New(pg, jobsPublisher, logger)
	applicationsSvc := applicationsuc.New(pg, logger)
	searchSvc := hybridsearch.New(parser, pg, embedder, vecRepo, hybridsearch.Config{
		TopK:            cfg.Search.TopK,
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}, logger)
	dashboardSvc := dashboarduc.New(pg, logger)
	healthSvc := healthuc.New(5*time.Second, map[string]healthuc.Checker{
		"postgres": healthuc.CheckFunc(pg.Ping),
		"redis":    healthuc.CheckFunc(store.Ping),
	})

	var limiter *rate.Limiter
	if cfg.Search.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Search.RateLimitRPS), cfg.Search.RateLimitBurst)
	}

	server := chiTransport.NewServer(
		accountSvc, jobsSvc, applicationsSvc, searchSvc, dashboardSvc, healthSvc,
		tokens, limiter, logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
