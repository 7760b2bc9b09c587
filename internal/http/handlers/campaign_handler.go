package handlers

import (
	"strconv"

	"github.com/creatorlane/backend/internal/http/dto"
	"github.com/creatorlane/backend/internal/middleware"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/creatorlane/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	campaign := &models.Campaign{
		OwnerUserID:        middleware.GetUserID(c),
		Name:               req.Name,
		Platforms:          req.Platforms,
		TargetCreatorCount: req.TargetCreatorCount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	}
	if err := h.campaignService.Create(c.Context(), middleware.GetActor(c), campaign); err != nil {
		return fail(c, err)
	}
	return created(c, campaign)
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Limit: 20, Offset: 0}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	campaigns, err := h.campaignService.List(c.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, campaigns)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	campaign, err := h.campaignService.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	actor := middleware.GetActor(c)
	existing, err := h.campaignService.Get(c.Context(), actor, id)
	if err != nil {
		return fail(c, err)
	}

	upd := *existing
	upd.Status = ""
	if req.Name != nil {
		upd.Name = *req.Name
	}
	if req.Platforms != nil {
		upd.Platforms = req.Platforms
	}
	if req.TargetCreatorCount != nil {
		upd.TargetCreatorCount = *req.TargetCreatorCount
	}
	if req.StartDate != nil {
		upd.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		upd.EndDate = *req.EndDate
	}
	if req.Status != nil {
		upd.Status = *req.Status
	}

	if err := h.campaignService.Update(c.Context(), actor, id, &upd); err != nil {
		return fail(c, err)
	}
	return ok(c, upd)
}

func (h *CampaignHandler) GetRoster(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	roster, err := h.campaignService.Roster(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, roster)
}

func (h *CampaignHandler) RemoveCreator(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}
	creatorID, err := uuid.Parse(c.Params("creatorId"))
	if err != nil {
		return badRequest(c, "invalid creator id")
	}

	if err := h.campaignService.RemoveCreator(c.Context(), middleware.GetActor(c), id, creatorID); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
