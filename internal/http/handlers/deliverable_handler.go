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

type DeliverableHandler struct {
	deliverableService *services.DeliverableService
	log                *zap.Logger
}

func NewDeliverableHandler(deliverableService *services.DeliverableService, log *zap.Logger) *DeliverableHandler {
	return &DeliverableHandler{deliverableService: deliverableService, log: log}
}

func (h *DeliverableHandler) CreateDeliverable(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	var req dto.CreateDeliverableRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	creatorID, err := uuid.Parse(req.CreatorUserID)
	if err != nil {
		return badRequest(c, "invalid creator_user_id")
	}

	d := &models.Deliverable{
		CampaignID:    campaignID,
		CreatorUserID: creatorID,
		Platform:      req.Platform,
		ContentType:   req.ContentType,
		DueDate:       req.DueDate,
	}
	if err := h.deliverableService.Create(c.Context(), middleware.GetActor(c), d); err != nil {
		return fail(c, err)
	}
	return created(c, d)
}

func (h *DeliverableHandler) ListDeliverables(c *fiber.Ctx) error {
	filter := repositories.DeliverableFilter{Limit: 20, Offset: 0}

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
	if v := c.Query("campaign_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CampaignID = &id
		}
	}

	items, err := h.deliverableService.List(c.Context(), middleware.GetActor(c), filter)
	if err != nil {
		h.log.Error("list deliverables failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, items)
}

func (h *DeliverableHandler) GetDeliverable(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	d, err := h.deliverableService.Get(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, d)
}

func (h *DeliverableHandler) SubmitDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	var req dto.SubmitDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	draft, err := h.deliverableService.SubmitDraft(c.Context(), middleware.GetActor(c), id, services.SubmitDraftInput{
		VideoURL:   req.VideoURL,
		DriveURL:   req.DriveURL,
		DropboxURL: req.DropboxURL,
		Notes:      req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, draft)
}

func (h *DeliverableHandler) ListDrafts(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	drafts, err := h.deliverableService.Drafts(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, drafts)
}

func (h *DeliverableHandler) StartReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	if err := h.deliverableService.StartReview(c.Context(), middleware.GetActor(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *DeliverableHandler) ApproveDraft(c *fiber.Ctx) error {
	id, req, err := h.parseDecision(c)
	if err != nil {
		return err
	}

	if err := h.deliverableService.Approve(c.Context(), middleware.GetActor(c), id, req.Version); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *DeliverableHandler) RequestRevision(c *fiber.Ctx) error {
	id, req, err := h.parseDecision(c)
	if err != nil {
		return err
	}

	if err := h.deliverableService.RequestRevision(c.Context(), middleware.GetActor(c), id, req.Version, req.Notes); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *DeliverableHandler) parseDecision(c *fiber.Ctx) (uuid.UUID, *dto.ReviewDecisionRequest, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, nil, badRequest(c, "invalid deliverable id")
	}

	var req dto.ReviewDecisionRequest
	if err := c.BodyParser(&req); err != nil || req.Version < 1 {
		return uuid.Nil, nil, badRequest(c, "version is required")
	}
	return id, &req, nil
}

func (h *DeliverableHandler) SubmitPostProof(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	var req dto.SubmitPostProofRequest
	if err := c.BodyParser(&req); err != nil || req.PostURL == "" {
		return badRequest(c, "post_url is required")
	}

	proof, err := h.deliverableService.SubmitPostProof(c.Context(), middleware.GetActor(c), id, services.PostProofInput{
		PostURL:       req.PostURL,
		ScreenshotURL: req.ScreenshotURL,
		Caption:       req.Caption,
		Hashtags:      req.Hashtags,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, proof)
}

func (h *DeliverableHandler) GetPostProof(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	proof, err := h.deliverableService.Proof(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, proof)
}

func (h *DeliverableHandler) CompleteDeliverable(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	if err := h.deliverableService.Complete(c.Context(), middleware.GetActor(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *DeliverableHandler) CancelDeliverable(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	if err := h.deliverableService.Cancel(c.Context(), middleware.GetActor(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}

func (h *DeliverableHandler) GetDeliverableEvents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid deliverable id")
	}

	evts, err := h.deliverableService.Events(c.Context(), middleware.GetActor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, evts)
}
