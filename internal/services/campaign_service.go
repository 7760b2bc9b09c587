package services

import (
	"context"
	"fmt"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/authz"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo    *repositories.CampaignRepo
	assignmentRepo  *repositories.AssignmentRepo
	deliverableRepo *repositories.DeliverableRepo
	auditRepo       *repositories.AuditRepo
	publisher       events.Publisher
	log             *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	assignmentRepo *repositories.AssignmentRepo,
	deliverableRepo *repositories.DeliverableRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo:    campaignRepo,
		assignmentRepo:  assignmentRepo,
		deliverableRepo: deliverableRepo,
		auditRepo:       auditRepo,
		publisher:       publisher,
		log:             log,
	}
}

func (s *CampaignService) Create(ctx context.Context, actor authz.Actor, c *models.Campaign) error {
	if err := authz.Authorize(actor, authz.ActionCreateCampaign, authz.Scope{}); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	c.OwnerUserID = actor.ID
	c.Status = models.CampaignStatusDraft
	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})
	return nil
}

// Get returns the campaign to its owner or to an assigned creator.
func (s *CampaignService) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID == actor.ID {
		return c, nil
	}
	if _, err := s.assignmentRepo.Get(ctx, id, actor.ID); err != nil {
		return nil, fmt.Errorf("%w: campaign", apperr.ErrNotFound)
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, actor authz.Actor, f repositories.CampaignFilter) ([]models.Campaign, error) {
	if actor.Role == models.RoleCreator {
		f.CreatorUserID = &actor.ID
		f.OwnerUserID = nil
	} else {
		f.OwnerUserID = &actor.ID
		f.CreatorUserID = nil
	}
	return s.campaignRepo.List(ctx, f)
}

func (s *CampaignService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, upd *models.Campaign) error {
	existing, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionUpdateCampaign, authz.Scope{OwnerUserID: existing.OwnerUserID}); err != nil {
		return err
	}

	upd.ID = id
	upd.OwnerUserID = existing.OwnerUserID
	if upd.Status == "" {
		upd.Status = existing.Status
	} else if upd.Status != existing.Status {
		// Completed is derived from the rollup, never set directly.
		if !models.IsValidCampaignTransition(existing.Status, upd.Status) {
			return fmt.Errorf("%w: campaign cannot move from %s to %s",
				apperr.ErrInvalidState, existing.Status, upd.Status)
		}
	}
	if err := upd.Validate(); err != nil {
		return err
	}

	if err := s.campaignRepo.Update(ctx, upd); err != nil {
		return err
	}

	if upd.Status != existing.Status {
		s.publishStatusChange(ctx, id, existing.Status, upd.Status)
	}
	return nil
}

// RemoveCreator drops the roster entry and cancels the creator's
// non-terminal deliverables; completed work and draft history remain.
func (s *CampaignService) RemoveCreator(ctx context.Context, actor authz.Actor, campaignID, creatorID uuid.UUID) error {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionRemoveCreator, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return err
	}

	removed, err := s.assignmentRepo.Delete(ctx, campaignID, creatorID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: assignment", apperr.ErrNotFound)
	}

	cancelled, err := s.deliverableRepo.CancelAllForCreator(ctx, campaignID, creatorID)
	if err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "creator_removed",
		EntityType:  "campaign",
		EntityID:    &campaignID,
		Meta:        map[string]any{"creator_user_id": creatorID.String(), "deliverables_cancelled": cancelled},
	})

	// Cancelling may have finished the rollup.
	return s.RollupCompletion(ctx, campaignID)
}

func (s *CampaignService) Roster(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]models.CreatorAssignment, error) {
	if _, err := s.Get(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListByCampaign(ctx, campaignID)
}

// RollupCompletion derives campaign completion from its deliverables. Called
// whenever a deliverable reaches a terminal state; never settable directly.
func (s *CampaignService) RollupCompletion(ctx context.Context, campaignID uuid.UUID) error {
	done, err := s.campaignRepo.MarkCompletedIfRollupDone(ctx, campaignID)
	if err != nil {
		return err
	}
	if done {
		_ = s.auditRepo.Log(ctx, models.AuditLog{
			ActorType:  "system",
			Action:     "campaign_completed",
			EntityType: "campaign",
			EntityID:   &campaignID,
		})
		s.publishStatusChange(ctx, campaignID, "", models.CampaignStatusCompleted)
	}
	return nil
}

func (s *CampaignService) publishStatusChange(ctx context.Context, id uuid.UUID, oldStatus, newStatus string) {
	_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": id.String(),
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})
}
