package events

import "context"

// Stream name shared by publisher and websocket hub.
const StreamWorkflow = "events:workflow"

// Event types
const (
	EventCampaignStatusChanged    = "campaign_status_changed"
	EventDeliverableStatusChanged = "deliverable_status_changed"
	EventInvitationAccepted       = "invitation_accepted"
	EventBriefAcknowledged        = "brief_acknowledged"
	EventPostProofVerified        = "post_proof_verified"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
