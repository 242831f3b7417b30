package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/importer"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/config"
	infrafile "github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/file"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/progress"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/queue"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("create pgx pool")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer redisClient.Close()

	uploadStorage, err := infrafile.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("init upload storage")
	}

	worker := importer.NewWorker(
		uploadStorage,
		repository.NewPostRepository(db),
		repository.NewPostBulkInsertRepository(pool),
		progress.NewRedisStore(redisClient, cfg.ProgressTTL),
		importer.WorkerConfig{BatchSize: cfg.ImportBatchSize},
		log,
	)

	policy := queue.DefaultRetryPolicy(cfg.ImportMaxRetry, cfg.ImportBackoff)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency:    5,
			Queues:         map[string]int{cfg.ImportQueue: 1},
			RetryDelayFunc: policy.Delay,
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeImportPostsCSV, queue.NewImportTaskHandler(worker, policy, log))

	if err := srv.Run(mux); err != nil {
		log.WithError(err).Fatal("worker failed")
	}
}
