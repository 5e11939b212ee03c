package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentdash/internal/analysis"
	"talentdash/internal/config"
	"talentdash/internal/database"
	"talentdash/internal/metrics"
	"talentdash/internal/store"
	"talentdash/internal/tasks"
	"talentdash/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if !cfg.Database.Configured() {
		// Demo mode runs bulk analysis inline in the API process; a
		// worker has nothing to consume.
		log.Fatal("worker requires a configured database; demo mode does not use the queue")
	}

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready for worker")

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var jitter analysis.Jitter
	if cfg.Analysis.JitterSeed != 0 {
		jitter = analysis.Seeded(cfg.Analysis.JitterSeed)
	} else {
		jitter = analysis.Deterministic()
	}
	engine := analysis.NewEngine(analysis.WithJitter(jitter))

	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
	})

	bulkHandler := worker.NewBulkAnalyzeHandler(store.NewGorm(db), engine, redisClient, logger)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypeBulkAnalyze, bulkHandler)

	logger.Info("worker service started", slog.String("redis_addr", redisAddr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
