package handlers

import (
	"github.com/creatorlane/backend/internal/http/dto"
	"github.com/creatorlane/backend/internal/middleware"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BriefHandler struct {
	briefService *services.BriefService
	log          *zap.Logger
}

func NewBriefHandler(briefService *services.BriefService, log *zap.Logger) *BriefHandler {
	return &BriefHandler{briefService: briefService, log: log}
}

func (h *BriefHandler) UpsertBrief(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	var req dto.UpsertBriefRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Objective == "" {
		return badRequest(c, "objective is required")
	}

	brief := &models.Brief{
		CampaignID:   campaignID,
		Objective:    req.Objective,
		KeyMessages:  req.KeyMessages,
		Dos:          req.Dos,
		Donts:        req.Donts,
		Hashtags:     req.Hashtags,
		TimelineText: req.TimelineText,
		Guidelines:   req.Guidelines,
		Template:     req.Template,
	}
	if err := h.briefService.Upsert(c.Context(), middleware.GetActor(c), brief); err != nil {
		return fail(c, err)
	}
	return ok(c, brief)
}

func (h *BriefHandler) GetBrief(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	brief, err := h.briefService.Get(c.Context(), middleware.GetActor(c), campaignID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, brief)
}

func (h *BriefHandler) AcknowledgeBrief(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	if err := h.briefService.Acknowledge(c.Context(), middleware.GetActor(c), campaignID); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *BriefHandler) DeclineAssignment(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	if err := h.briefService.Decline(c.Context(), middleware.GetActor(c), campaignID); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
