package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/db"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/mailer"
	"github.com/creatorlane/backend/internal/postverify"
	"github.com/creatorlane/backend/internal/queue"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	deliverableRepo := repositories.NewDeliverableRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)

	mail := mailer.NewClient(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, log)
	verifier := postverify.NewVerifier(cfg.PostFetchTimeoutMS, cfg.PostFetchMaxRetries, log)

	worker := queue.NewWorker(deliverableRepo, auditRepo, mail, verifier, publisher, cfg, log)

	redisConn, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatal("invalid redis url", zap.Error(err))
	}
	srv := asynq.NewServer(
		redisConn,
		asynq.Config{
			Concurrency: 10,
			Queues:      map[string]int{"default": 1},
		},
	)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down worker...")
		cancel()
		srv.Shutdown()
	}()

	log.Info("starting worker")
	if err := srv.Run(worker.Mux()); err != nil {
		log.Fatal("worker error", zap.Error(err))
	}
}
