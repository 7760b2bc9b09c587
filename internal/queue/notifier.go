package queue

import (
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier enqueues best-effort background work. Enqueue failures are
// logged and swallowed: a dispatch failure must never roll back the state
// transition that triggered it.
type Notifier struct {
	client *asynq.Client
	log    *zap.Logger
}

func NewNotifier(client *asynq.Client, log *zap.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

func (n *Notifier) InvitationEmail(email, campaignName, token string) {
	task, err := NewInvitationEmailTask(InvitationEmailPayload{
		Email:        email,
		CampaignName: campaignName,
		Token:        token,
	})
	if err == nil {
		_, err = n.client.Enqueue(task, asynq.MaxRetry(5))
	}
	if err != nil {
		n.log.Warn("invitation email enqueue failed", zap.String("email", email), zap.Error(err))
	}
}

func (n *Notifier) AssignmentEmail(email, campaignName string) {
	task, err := NewAssignmentEmailTask(AssignmentEmailPayload{
		Email:        email,
		CampaignName: campaignName,
	})
	if err == nil {
		_, err = n.client.Enqueue(task, asynq.MaxRetry(5))
	}
	if err != nil {
		n.log.Warn("assignment email enqueue failed", zap.String("email", email), zap.Error(err))
	}
}

func (n *Notifier) VerifyPost(deliverableID uuid.UUID, postURL string) {
	task, err := NewVerifyPostTask(VerifyPostPayload{
		DeliverableID: deliverableID,
		PostURL:       postURL,
	})
	if err == nil {
		_, err = n.client.Enqueue(task, asynq.MaxRetry(3))
	}
	if err != nil {
		n.log.Warn("post verification enqueue failed", zap.String("deliverable_id", deliverableID.String()), zap.Error(err))
	}
}
