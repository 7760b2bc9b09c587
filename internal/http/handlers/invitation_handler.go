package handlers

import (
	"strings"

	"github.com/creatorlane/backend/internal/http/dto"
	"github.com/creatorlane/backend/internal/middleware"
	"github.com/creatorlane/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
	log               *zap.Logger
}

func NewInvitationHandler(invitationService *services.InvitationService, log *zap.Logger) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, log: log}
}

// AssignCreators puts existing creators on the roster in one shot.
// Partial success is reported per creator, not as an overall failure.
func (h *InvitationHandler) AssignCreators(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	var req dto.AssignCreatorsRequest
	if err := c.BodyParser(&req); err != nil || len(req.CreatorIDs) == 0 {
		return badRequest(c, "creator_ids is required")
	}

	creatorIDs := make([]uuid.UUID, 0, len(req.CreatorIDs))
	for _, raw := range req.CreatorIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid creator id: "+raw)
		}
		creatorIDs = append(creatorIDs, id)
	}

	results, err := h.invitationService.AssignCreators(c.Context(), middleware.GetActor(c), campaignID, creatorIDs)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, results)
}

func (h *InvitationHandler) InviteExternal(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	var req dto.InviteExternalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return badRequest(c, "a valid email is required")
	}

	outcome, err := h.invitationService.InviteExternal(c.Context(), middleware.GetActor(c), campaignID, email)
	if err != nil {
		return fail(c, err)
	}
	return created(c, outcome)
}

func (h *InvitationHandler) ListInvitations(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid campaign id")
	}

	invs, err := h.invitationService.ListByCampaign(c.Context(), middleware.GetActor(c), campaignID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, invs)
}

// AcceptInvitation consumes the token and joins the caller to the roster.
func (h *InvitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	var req dto.AcceptInvitationRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "token is required")
	}

	assignment, err := h.invitationService.Accept(c.Context(), middleware.GetActor(c), req.Token)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, assignment)
}
