package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is a tokenized, time-bounded offer to join a campaign. The
// token is opaque and unguessable; a consumed or expired invitation can
// never again mutate campaign state.
type Invitation struct {
	ID            uuid.UUID  `json:"id"`
	CampaignID    uuid.UUID  `json:"campaign_id"`
	Email         string     `json:"email"`
	CreatorUserID *uuid.UUID `json:"creator_user_id,omitempty"` // pre-resolved when the target already has an account
	Token         string     `json:"-"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Consumed      bool       `json:"consumed"`
	ConsumedAt    *time.Time `json:"consumed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsAcceptable reports whether the invitation can still be consumed.
func (i *Invitation) IsAcceptable(now time.Time) bool {
	return !i.Consumed && !i.IsExpired(now)
}
