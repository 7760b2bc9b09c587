package services

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/authz"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/queue"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DeliverableService struct {
	deliverableRepo *repositories.DeliverableRepo
	campaignRepo    *repositories.CampaignRepo
	assignmentRepo  *repositories.AssignmentRepo
	auditRepo       *repositories.AuditRepo
	campaignService *CampaignService
	notifier        *queue.Notifier
	publisher       events.Publisher
	log             *zap.Logger
}

func NewDeliverableService(
	deliverableRepo *repositories.DeliverableRepo,
	campaignRepo *repositories.CampaignRepo,
	assignmentRepo *repositories.AssignmentRepo,
	auditRepo *repositories.AuditRepo,
	campaignService *CampaignService,
	notifier *queue.Notifier,
	publisher events.Publisher,
	log *zap.Logger,
) *DeliverableService {
	return &DeliverableService{
		deliverableRepo: deliverableRepo,
		campaignRepo:    campaignRepo,
		assignmentRepo:  assignmentRepo,
		auditRepo:       auditRepo,
		campaignService: campaignService,
		notifier:        notifier,
		publisher:       publisher,
		log:             log,
	}
}

// Create adds a deliverable for a creator already on the roster.
func (s *DeliverableService) Create(ctx context.Context, actor authz.Actor, d *models.Deliverable) error {
	c, err := s.campaignRepo.GetByID(ctx, d.CampaignID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionCreateDeliverable, authz.Scope{OwnerUserID: c.OwnerUserID}); err != nil {
		return err
	}
	if d.Platform == "" || d.ContentType == "" {
		return fmt.Errorf("%w: platform and content type are required", apperr.ErrValidation)
	}
	if _, err := s.assignmentRepo.Get(ctx, d.CampaignID, d.CreatorUserID); err != nil {
		return fmt.Errorf("%w: creator is not on the campaign roster", apperr.ErrValidation)
	}

	d.Status = models.DeliverableStatusPending
	if err := s.deliverableRepo.Create(ctx, d); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "deliverable_created",
		EntityType:  "deliverable",
		EntityID:    &d.ID,
		Meta:        map[string]any{"creator_user_id": d.CreatorUserID.String(), "platform": d.Platform},
	})
	return nil
}

func (s *DeliverableService) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Deliverable, error) {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.campaignRepo.GetByID(ctx, d.CampaignID)
	if err != nil {
		return nil, err
	}
	if actor.ID != c.OwnerUserID && actor.ID != d.CreatorUserID {
		return nil, fmt.Errorf("%w: deliverable", apperr.ErrNotFound)
	}
	return d, nil
}

func (s *DeliverableService) List(ctx context.Context, actor authz.Actor, f repositories.DeliverableFilter) ([]models.DeliverableWithCampaign, error) {
	if actor.Role == models.RoleCreator {
		f.CreatorUserID = &actor.ID
	}
	return s.deliverableRepo.ListWithCampaign(ctx, f)
}

func (s *DeliverableService) Drafts(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]models.Draft, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.deliverableRepo.ListDrafts(ctx, id)
}

func (s *DeliverableService) Events(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]models.AuditLog, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.auditRepo.GetByEntity(ctx, "deliverable", id, 100, 0)
}

type SubmitDraftInput struct {
	VideoURL   *string
	DriveURL   *string
	DropboxURL *string
	Notes      *string
}

// SubmitDraft appends draft version N+1 and moves the deliverable to
// draft_submitted. Guarded by the brief gate: the creator must have
// acknowledged the campaign brief first.
func (s *DeliverableService) SubmitDraft(ctx context.Context, actor authz.Actor, id uuid.UUID, input SubmitDraftInput) (*models.Draft, error) {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionSubmitDraft, authz.Scope{CreatorUserID: d.CreatorUserID}); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.Get(ctx, d.CampaignID, actor.ID)
	if err != nil || !assignment.IsAcknowledged() {
		return nil, apperr.ErrBriefNotAcknowledged
	}

	draft := &models.Draft{
		VideoURL:   input.VideoURL,
		DriveURL:   input.DriveURL,
		DropboxURL: input.DropboxURL,
		Notes:      input.Notes,
	}
	if !draft.HasContentRef() {
		return nil, fmt.Errorf("%w: at least one content link is required", apperr.ErrValidation)
	}

	ok, err := s.deliverableRepo.SubmitDraft(ctx, d, draft)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: deliverable does not accept drafts in status %s",
			apperr.ErrInvalidState, d.Status)
	}

	s.recordTransition(ctx, d, "draft_submitted", &actor.ID, map[string]any{"version": draft.Version})
	return draft, nil
}

// StartReview is the administrative draft_submitted -> in_review hop.
func (s *DeliverableService) StartReview(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, actor, authz.ActionStartReview, d); err != nil {
		return err
	}

	ok, err := s.deliverableRepo.Transition(ctx, id,
		[]string{models.DeliverableStatusDraftSubmitted}, models.DeliverableStatusInReview)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no submitted draft to review", apperr.ErrInvalidState)
	}

	s.recordTransition(ctx, d, models.DeliverableStatusInReview, &actor.ID, nil)
	return nil
}

// Approve accepts the draft version the reviewer looked at. The version
// check is the optimistic lock: approving a superseded version fails
// StaleDraft, and two concurrent decisions cannot both land.
func (s *DeliverableService) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID, version int) error {
	return s.reviewDecision(ctx, actor, id, version, models.DeliverableStatusApproved, models.DraftStatusApproved, nil)
}

// RequestRevision sends the deliverable back for a new draft version and
// records the reviewer's notes on the reviewed draft.
func (s *DeliverableService) RequestRevision(ctx context.Context, actor authz.Actor, id uuid.UUID, version int, notes *string) error {
	return s.reviewDecision(ctx, actor, id, version, models.DeliverableStatusRevisionRequested, models.DraftStatusRevisionRequested, notes)
}

func (s *DeliverableService) reviewDecision(ctx context.Context, actor authz.Actor, id uuid.UUID, version int, toStatus, draftStatus string, notes *string) error {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, actor, authz.ActionReviewDraft, d); err != nil {
		return err
	}
	if version != d.CurrentVersion {
		return fmt.Errorf("%w: reviewed v%d, current is v%d", apperr.ErrStaleDraft, version, d.CurrentVersion)
	}

	// A decision on a freshly submitted draft implies the in_review hop.
	ok, err := s.deliverableRepo.TransitionAtVersion(ctx, id,
		[]string{models.DeliverableStatusDraftSubmitted, models.DeliverableStatusInReview},
		toStatus, version)
	if err != nil {
		return err
	}
	if !ok {
		// Re-read to tell a lost race from a plain bad state.
		if cur, rerr := s.deliverableRepo.GetByID(ctx, id); rerr == nil && cur.CurrentVersion != version {
			return fmt.Errorf("%w: reviewed v%d, current is v%d", apperr.ErrStaleDraft, version, cur.CurrentVersion)
		}
		return fmt.Errorf("%w: deliverable is not under review", apperr.ErrInvalidState)
	}

	if err := s.deliverableRepo.UpdateDraftStatus(ctx, id, version, draftStatus, notes); err != nil {
		s.log.Warn("draft status update failed", zap.String("deliverable_id", id.String()), zap.Error(err))
	}

	meta := map[string]any{"version": version}
	if notes != nil && *notes != "" {
		meta["notes"] = *notes
	}
	s.recordTransition(ctx, d, toStatus, &actor.ID, meta)
	return nil
}

type PostProofInput struct {
	PostURL       string
	ScreenshotURL *string
	Caption       *string
	Hashtags      []string
}

// SubmitPostProof records publication evidence and moves the deliverable
// from approved to posted. Verification of the proof runs asynchronously;
// the creator never sets the verified flag.
func (s *DeliverableService) SubmitPostProof(ctx context.Context, actor authz.Actor, id uuid.UUID, input PostProofInput) (*models.PostProof, error) {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionSubmitPostProof, authz.Scope{CreatorUserID: d.CreatorUserID}); err != nil {
		return nil, err
	}
	if input.PostURL == "" {
		return nil, fmt.Errorf("%w: post url is required", apperr.ErrValidation)
	}

	ok, err := s.deliverableRepo.Transition(ctx, id,
		[]string{models.DeliverableStatusApproved}, models.DeliverableStatusPosted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: deliverable must be approved before posting", apperr.ErrInvalidState)
	}

	proof := &models.PostProof{
		DeliverableID: id,
		PostURL:       input.PostURL,
		ScreenshotURL: input.ScreenshotURL,
		Caption:       input.Caption,
		Hashtags:      input.Hashtags,
		PostedAt:      time.Now(),
	}
	if err := s.deliverableRepo.InsertProof(ctx, proof); err != nil {
		return nil, err
	}

	s.notifier.VerifyPost(id, input.PostURL)
	s.recordTransition(ctx, d, models.DeliverableStatusPosted, &actor.ID, map[string]any{"post_url": input.PostURL})
	return proof, nil
}

func (s *DeliverableService) Proof(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.PostProof, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.deliverableRepo.GetProof(ctx, id)
}

// Complete closes the deliverable and re-derives campaign completion.
func (s *DeliverableService) Complete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	return s.closeOut(ctx, actor, id, authz.ActionCompleteDeliverable,
		[]string{models.DeliverableStatusApproved, models.DeliverableStatusPosted},
		models.DeliverableStatusCompleted)
}

// Cancel administratively ends a deliverable that has not reached a
// terminal state.
func (s *DeliverableService) Cancel(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	return s.closeOut(ctx, actor, id, authz.ActionCancelDeliverable,
		[]string{
			models.DeliverableStatusPending, models.DeliverableStatusDraftSubmitted,
			models.DeliverableStatusRevisionRequested, models.DeliverableStatusApproved,
		},
		models.DeliverableStatusCancelled)
}

func (s *DeliverableService) closeOut(ctx context.Context, actor authz.Actor, id uuid.UUID, action string, fromStatuses []string, toStatus string) error {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, actor, action, d); err != nil {
		return err
	}

	ok, err := s.deliverableRepo.Transition(ctx, id, fromStatuses, toStatus)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: deliverable cannot move from %s to %s", apperr.ErrInvalidState, d.Status, toStatus)
	}

	s.recordTransition(ctx, d, toStatus, &actor.ID, nil)
	return s.campaignService.RollupCompletion(ctx, d.CampaignID)
}

func (s *DeliverableService) authorizeOwner(ctx context.Context, actor authz.Actor, action string, d *models.Deliverable) error {
	c, err := s.campaignRepo.GetByID(ctx, d.CampaignID)
	if err != nil {
		return err
	}
	return authz.Authorize(actor, action, authz.Scope{OwnerUserID: c.OwnerUserID})
}

// recordTransition writes the audit row and publishes the status event.
// Both are best-effort relative to the committed transition.
func (s *DeliverableService) recordTransition(ctx context.Context, d *models.Deliverable, newStatus string, actorID *uuid.UUID, meta map[string]any) {
	oldStatus := d.Status
	if meta == nil {
		meta = map[string]any{}
	}
	meta["old_status"] = oldStatus
	meta["new_status"] = newStatus

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: actorID,
		ActorType:   "user",
		Action:      fmt.Sprintf("deliverable_status_%s_to_%s", oldStatus, newStatus),
		EntityType:  "deliverable",
		EntityID:    &d.ID,
		Meta:        meta,
	})
	_ = s.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventDeliverableStatusChanged,
		Payload: map[string]any{
			"deliverable_id": d.ID.String(),
			"campaign_id":    d.CampaignID.String(),
			"old_status":     oldStatus,
			"new_status":     newStatus,
		},
	})
}
