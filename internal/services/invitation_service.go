package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/authz"
	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/queue"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const invitationTokenLen = 32

type InvitationService struct {
	invitationRepo *repositories.InvitationRepo
	assignmentRepo *repositories.AssignmentRepo
	campaignRepo   *repositories.CampaignRepo
	userRepo       *repositories.UserRepo
	auditRepo      *repositories.AuditRepo
	notifier       *queue.Notifier
	publisher      events.Publisher
	cfg            *config.Config
	log            *zap.Logger
}

func NewInvitationService(
	invitationRepo *repositories.InvitationRepo,
	assignmentRepo *repositories.AssignmentRepo,
	campaignRepo *repositories.CampaignRepo,
	userRepo *repositories.UserRepo,
	auditRepo *repositories.AuditRepo,
	notifier *queue.Notifier,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		assignmentRepo: assignmentRepo,
		campaignRepo:   campaignRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
		publisher:      publisher,
		cfg:            cfg,
		log:            log,
	}
}

// AssignResult reports the per-creator outcome of a batch assignment.
type AssignResult struct {
	CreatorUserID uuid.UUID `json:"creator_user_id"`
	Assigned      bool      `json:"assigned"`
	Reason        string    `json:"reason,omitempty"`
}

// AssignCreators puts existing creator accounts on the roster with a
// pending acknowledgment and requests an email per creator. Assignment
// state is created synchronously; mail delivery is best-effort.
// Already-rostered creators are skipped and reported, not fatal.
func (s *InvitationService) AssignCreators(ctx context.Context, actor authz.Actor, campaignID uuid.UUID, creatorIDs []uuid.UUID) ([]AssignResult, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionAssignCreators, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return nil, err
	}

	results := make([]AssignResult, 0, len(creatorIDs))
	for _, creatorID := range creatorIDs {
		res := AssignResult{CreatorUserID: creatorID}

		creator, err := s.userRepo.GetByID(ctx, creatorID)
		if err != nil || creator.Role != models.RoleCreator {
			res.Reason = "not a creator account"
			results = append(results, res)
			continue
		}

		assignment := &models.CreatorAssignment{
			CampaignID:    campaignID,
			CreatorUserID: creatorID,
			AckStatus:     models.AckStatusPending,
			Source:        models.AssignmentSourceAssigned,
		}
		if err := s.assignmentRepo.Insert(ctx, assignment); err != nil {
			if errors.Is(err, apperr.ErrAlreadyAssigned) {
				res.Reason = "already assigned"
				results = append(results, res)
				continue
			}
			return nil, err
		}

		if _, err := s.createInvitation(ctx, campaignID, creator.Email, &creatorID); err != nil {
			s.log.Warn("invitation record failed", zap.String("email", creator.Email), zap.Error(err))
		}
		s.notifier.AssignmentEmail(creator.Email, c.Name)

		res.Assigned = true
		results = append(results, res)

		_ = s.auditRepo.Log(ctx, models.AuditLog{
			ActorUserID: &actor.ID,
			ActorType:   "user",
			Action:      "creator_assigned",
			EntityType:  "campaign",
			EntityID:    &campaignID,
			Meta:        map[string]any{"creator_user_id": creatorID.String()},
		})
	}
	return results, nil
}

// InviteOutcome distinguishes the two external-invite paths: an existing
// creator is assigned directly, an unknown email gets a tokenized slot.
type InviteOutcome struct {
	Assigned   bool               `json:"assigned"`
	Invitation *models.Invitation `json:"invitation,omitempty"`
}

// InviteExternal invites a bare email address. An existing creator account
// with that email takes the internal assignment path; otherwise the
// campaign gains a tokenized pending slot, not yet a roster entry.
func (s *InvitationService) InviteExternal(ctx context.Context, actor authz.Actor, campaignID uuid.UUID, email string) (*InviteOutcome, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}

	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionInviteCreator, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing.Role == models.RoleCreator {
		results, err := s.AssignCreators(ctx, actor, campaignID, []uuid.UUID{existing.ID})
		if err != nil {
			return nil, err
		}
		if !results[0].Assigned {
			return nil, fmt.Errorf("%w: creator %s", apperr.ErrAlreadyAssigned, email)
		}
		return &InviteOutcome{Assigned: true}, nil
	}

	inv, err := s.createInvitation(ctx, campaignID, email, nil)
	if err != nil {
		return nil, err
	}
	s.notifier.InvitationEmail(email, c.Name, inv.Token)

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "external_invite_sent",
		EntityType:  "campaign",
		EntityID:    &campaignID,
		Meta:        map[string]any{"email": email},
	})
	return &InviteOutcome{Invitation: inv}, nil
}

// Accept consumes an invitation token and binds the authenticated creator
// to the campaign. Consumption is exactly-once: concurrent accepts with the
// same token yield one success, the rest fail. Accepting binds the roster
// entry only; brief acknowledgment is a separate later step.
func (s *InvitationService) Accept(ctx context.Context, actor authz.Actor, token string) (*models.CreatorAssignment, error) {
	if err := authz.Authorize(actor, authz.ActionAcceptInvitation, authz.Scope{}); err != nil {
		return nil, err
	}

	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Consumed {
		return nil, apperr.ErrAlreadyConsumed
	}
	if inv.IsExpired(time.Now()) {
		return nil, apperr.ErrExpired
	}
	// A pre-resolved invitation belongs to that creator only.
	if inv.CreatorUserID != nil && *inv.CreatorUserID != actor.ID {
		return nil, fmt.Errorf("%w: invitation addressed to another account", apperr.ErrForbidden)
	}

	consumed, err := s.invitationRepo.Consume(ctx, token)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Lost the race, or expired between read and write.
		return nil, apperr.ErrAlreadyConsumed
	}

	assignment := &models.CreatorAssignment{
		CampaignID:    inv.CampaignID,
		CreatorUserID: actor.ID,
		AckStatus:     models.AckStatusPending,
		Source:        models.AssignmentSourceInvited,
	}
	if err := s.assignmentRepo.Insert(ctx, assignment); err != nil {
		// Includes ErrAlreadyAssigned when the creator is already rostered.
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "invitation_accepted",
		EntityType:  "campaign",
		EntityID:    &inv.CampaignID,
	})
	_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventInvitationAccepted,
		Payload: map[string]any{
			"campaign_id":     inv.CampaignID.String(),
			"creator_user_id": actor.ID.String(),
		},
	})
	return assignment, nil
}

// Resolve returns the campaign and email bound to a token without consuming
// it, so a signup page can show what is being joined.
func (s *InvitationService) Resolve(ctx context.Context, token string) (*models.Invitation, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !inv.IsAcceptable(time.Now()) {
		return nil, apperr.ErrInvalidToken
	}
	return inv, nil
}

// ListByCampaign returns the campaign's invitations for its owner.
func (s *InvitationService) ListByCampaign(ctx context.Context, actor authz.Actor, campaignID uuid.UUID) ([]models.Invitation, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionInviteCreator, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return nil, err
	}
	return s.invitationRepo.ListByCampaign(ctx, campaignID)
}

func (s *InvitationService) createInvitation(ctx context.Context, campaignID uuid.UUID, email string, creatorID *uuid.UUID) (*models.Invitation, error) {
	token, err := gonanoid.New(invitationTokenLen)
	if err != nil {
		return nil, err
	}
	inv := &models.Invitation{
		CampaignID:    campaignID,
		Email:         email,
		CreatorUserID: creatorID,
		Token:         token,
		ExpiresAt:     time.Now().Add(s.cfg.InvitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
