package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/db"
	"github.com/creatorlane/backend/internal/events"
	apphttp "github.com/creatorlane/backend/internal/http"
	"github.com/creatorlane/backend/internal/http/handlers"
	"github.com/creatorlane/backend/internal/queue"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/creatorlane/backend/internal/services"
	"github.com/gofiber/fiber/v2"
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

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	assignmentRepo := repositories.NewAssignmentRepo(pool)
	invitationRepo := repositories.NewInvitationRepo(pool)
	briefRepo := repositories.NewBriefRepo(pool)
	deliverableRepo := repositories.NewDeliverableRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Task queue (producer side)
	redisConn, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatal("invalid redis url", zap.Error(err))
	}
	asynqClient := asynq.NewClient(redisConn)
	defer asynqClient.Close()
	notifier := queue.NewNotifier(asynqClient, log)

	// Services
	campaignService := services.NewCampaignService(campaignRepo, assignmentRepo, deliverableRepo, auditRepo, publisher, log)
	invitationService := services.NewInvitationService(invitationRepo, assignmentRepo, campaignRepo, userRepo, auditRepo, notifier, publisher, cfg, log)
	briefService := services.NewBriefService(briefRepo, campaignRepo, assignmentRepo, auditRepo, publisher, log)
	deliverableService := services.NewDeliverableService(deliverableRepo, campaignRepo, assignmentRepo, auditRepo, campaignService, notifier, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, invitationService, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	invitationHandler := handlers.NewInvitationHandler(invitationService, log)
	briefHandler := handlers.NewBriefHandler(briefService, log)
	deliverableHandler := handlers.NewDeliverableHandler(deliverableService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, campaignHandler, invitationHandler, briefHandler, deliverableHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
