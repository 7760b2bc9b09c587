package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/creatorlane/backend/internal/config"
	"github.com/creatorlane/backend/internal/events"
	"github.com/creatorlane/backend/internal/mailer"
	"github.com/creatorlane/backend/internal/models"
	"github.com/creatorlane/backend/internal/postverify"
	"github.com/creatorlane/backend/internal/repositories"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes the background queues: outbound mail and post-proof
// verification. Failed tasks are retried by asynq and never touch the
// workflow state that enqueued them.
type Worker struct {
	deliverableRepo *repositories.DeliverableRepo
	auditRepo       *repositories.AuditRepo
	mail            *mailer.Client
	verifier        *postverify.Verifier
	publisher       events.Publisher
	cfg             *config.Config
	log             *zap.Logger
}

func NewWorker(
	deliverableRepo *repositories.DeliverableRepo,
	auditRepo *repositories.AuditRepo,
	mail *mailer.Client,
	verifier *postverify.Verifier,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *Worker {
	return &Worker{
		deliverableRepo: deliverableRepo,
		auditRepo:       auditRepo,
		mail:            mail,
		verifier:        verifier,
		publisher:       publisher,
		cfg:             cfg,
		log:             log,
	}
}

func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeInvitationEmail, w.HandleInvitationEmail)
	mux.HandleFunc(TaskTypeAssignmentEmail, w.HandleAssignmentEmail)
	mux.HandleFunc(TaskTypeVerifyPost, w.HandleVerifyPost)
	return mux
}

func (w *Worker) HandleInvitationEmail(ctx context.Context, task *asynq.Task) error {
	var p InvitationEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return err
	}
	acceptURL := fmt.Sprintf("%s/accept?token=%s", w.cfg.InviteLinkBaseURL, p.Token)
	return w.mail.SendInvitation(ctx, p.Email, p.CampaignName, acceptURL)
}

func (w *Worker) HandleAssignmentEmail(ctx context.Context, task *asynq.Task) error {
	var p AssignmentEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return err
	}
	return w.mail.SendAssignment(ctx, p.Email, p.CampaignName)
}

func (w *Worker) HandleVerifyPost(ctx context.Context, task *asynq.Task) error {
	var p VerifyPostPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return err
	}

	result, err := w.verifier.Check(ctx, p.PostURL)
	if err != nil {
		return fmt.Errorf("post check %s: %w", p.PostURL, err)
	}
	if !result.Published {
		// Retry later; the post may not be indexed yet.
		return fmt.Errorf("post %s not verifiable yet", p.PostURL)
	}

	if err := w.deliverableRepo.MarkProofVerified(ctx, p.DeliverableID); err != nil {
		return err
	}

	_ = w.auditRepo.Log(ctx, models.AuditLog{
		ActorType:  "worker",
		Action:     "post_proof_verified",
		EntityType: "deliverable",
		EntityID:   &p.DeliverableID,
		Meta:       map[string]any{"post_url": p.PostURL, "title": result.Title},
	})

	_ = w.publisher.Publish(ctx, events.StreamWorkflow, events.Event{
		Type: events.EventPostProofVerified,
		Payload: map[string]any{
			"deliverable_id": p.DeliverableID.String(),
			"post_url":       p.PostURL,
		},
	})

	w.log.Info("post proof verified",
		zap.String("deliverable_id", p.DeliverableID.String()),
		zap.String("post_url", p.PostURL),
	)
	return nil
}
