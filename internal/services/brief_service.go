package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/authz"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BriefService struct {
	briefRepo      *repositories.BriefRepo
	campaignRepo   *repositories.CampaignRepo
	assignmentRepo *repositories.AssignmentRepo
	auditRepo      *repositories.AuditRepo
	publisher      events.Publisher
	log            *zap.Logger
}

func NewBriefService(
	briefRepo *repositories.BriefRepo,
	campaignRepo *repositories.CampaignRepo,
	assignmentRepo *repositories.AssignmentRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *BriefService {
	return &BriefService{
		briefRepo:      briefRepo,
		campaignRepo:   campaignRepo,
		assignmentRepo: assignmentRepo,
		auditRepo:      auditRepo,
		publisher:      publisher,
		log:            log,
	}
}

// Upsert creates or edits the campaign brief. Brand/agency only; creators
// read it but never write it. An empty brief is valid.
func (s *BriefService) Upsert(ctx context.Context, actor authz.Actor, b *models.Brief) error {
	c, err := s.campaignRepo.GetByID(ctx, b.CampaignID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionUpdateBrief, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return err
	}

	if err := s.briefRepo.Upsert(ctx, b); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "brief_updated",
		EntityType:  "campaign",
		EntityID:    &b.CampaignID,
	})
	return nil
}

// Get returns the brief to the owner or any rostered creator.
func (s *BriefService) Get(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) (*models.Brief, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != actor.ID {
		if _, err := s.assignmentRepo.Get(ctx, campaignID, actor.ID); err != nil {
			return nil, fmt.Errorf("%w: brief", apperr.ErrNotFound)
		}
	}
	return s.briefRepo.GetByCampaign(ctx, campaignID)
}

// Acknowledge records the creator's confirmation of having read the brief.
// This is the single gate for creator-side deliverable work. The timestamp
// is set exactly once; a repeat call fails AlreadyAcknowledged.
func (s *BriefService) Acknowledge(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) error {
	assignment, err := s.assignmentRepo.Get(ctx, campaignID, actor.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: not on the campaign roster", apperr.ErrForbidden)
		}
		return err
	}
	if err := authz.Authorize(actor, authz.ActionAcknowledgeBrief, authz.Scope{CreatorUserID: assignment.CreatorUserID}); err != nil {
		return err
	}
	if assignment.AckStatus == models.AckStatusAcknowledged {
		return apperr.ErrAlreadyAcknowledged
	}
	if assignment.AckStatus == models.AckStatusDeclined {
		return fmt.Errorf("%w: assignment was declined", apperr.ErrInvalidState)
	}

	acked, err := s.assignmentRepo.Acknowledge(ctx, campaignID, actor.ID)
	if err != nil {
		return err
	}
	if !acked {
		// Raced with another acknowledgment of the same assignment.
		return apperr.ErrAlreadyAcknowledged
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "brief_acknowledged",
		EntityType:  "campaign",
		EntityID:    &campaignID,
	})
	_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventBriefAcknowledged,
		Payload: map[string]any{
			"campaign_id":     campaignID.String(),
			"creator_user_id": actor.ID.String(),
		},
	})
	return nil
}

// Decline lets a creator turn down a pending assignment.
func (s *BriefService) Decline(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) error {
	assignment, err := s.assignmentRepo.Get(ctx, campaignID, actor.ID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionDeclineAssignment, authz.Scope{CreatorUserID: assignment.CreatorUserID}); err != nil {
		return err
	}

	declined, err := s.assignmentRepo.Decline(ctx, campaignID, actor.ID)
	if err != nil {
		return err
	}
	if !declined {
		return fmt.Errorf("%w: assignment is not pending", apperr.ErrInvalidState)
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "assignment_declined",
		EntityType:  "campaign",
		EntityID:    &campaignID,
	})
	return nil
}
