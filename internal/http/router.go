package http

import (
	"time"

	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/http/handlers"
	"github.com/creatorlane/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	campaignHandler *handlers.CampaignHandler,
	invitationHandler *handlers.InvitationHandler,
	briefHandler *handlers.BriefHandler,
	deliverableHandler *handlers.DeliverableHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/invitations/resolve", authHandler.ResolveInvitation)

	// Rate-limited endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/platforms", metaHandler.GetPlatforms)
	api.Get("/meta/content-types", metaHandler.GetContentTypes)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", userHandler.GetMe)
	protected.Post("/me/ping", userHandler.Ping)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.Get("/campaigns/:id/roster", campaignHandler.GetRoster)
	protected.Delete("/campaigns/:id/roster/:creatorId", campaignHandler.RemoveCreator)

	// Roster building
	protected.Post("/campaigns/:id/creators", invitationHandler.AssignCreators)
	protected.Post("/campaigns/:id/invitations", invitationHandler.InviteExternal)
	protected.Get("/campaigns/:id/invitations", invitationHandler.ListInvitations)
	protected.Post("/invitations/accept", invitationHandler.AcceptInvitation)

	// Brief
	protected.Put("/campaigns/:id/brief", briefHandler.UpsertBrief)
	protected.Get("/campaigns/:id/brief", briefHandler.GetBrief)
	protected.Post("/campaigns/:id/brief/acknowledge", briefHandler.AcknowledgeBrief)
	protected.Post("/campaigns/:id/decline", briefHandler.DeclineAssignment)

	// Deliverables
	protected.Post("/campaigns/:id/deliverables", deliverableHandler.CreateDeliverable)
	protected.Get("/deliverables", deliverableHandler.ListDeliverables)
	protected.Get("/deliverables/:id", deliverableHandler.GetDeliverable)
	protected.Post("/deliverables/:id/drafts", deliverableHandler.SubmitDraft)
	protected.Get("/deliverables/:id/drafts", deliverableHandler.ListDrafts)
	protected.Post("/deliverables/:id/review/start", deliverableHandler.StartReview)
	protected.Post("/deliverables/:id/review/approve", deliverableHandler.ApproveDraft)
	protected.Post("/deliverables/:id/review/request-revision", deliverableHandler.RequestRevision)
	protected.Post("/deliverables/:id/proof", deliverableHandler.SubmitPostProof)
	protected.Get("/deliverables/:id/proof", deliverableHandler.GetPostProof)
	protected.Post("/deliverables/:id/complete", deliverableHandler.CompleteDeliverable)
	protected.Post("/deliverables/:id/cancel", deliverableHandler.CancelDeliverable)
	protected.Get("/deliverables/:id/events", deliverableHandler.GetDeliverableEvents)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
