package models

import (
	"fmt"
	"time"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusInReview  = "in_review"
	CampaignStatusCompleted = "completed"
)

// Owner-settable campaign transitions. Completed is derived from the
// deliverable rollup and is deliberately absent here.
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:    {CampaignStatusActive},
	CampaignStatusActive:   {CampaignStatusInReview},
	CampaignStatusInReview: {CampaignStatusActive},
}

func IsValidCampaignTransition(from, to string) bool {
	for _, s := range ValidCampaignTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Campaign struct {
	ID                 uuid.UUID `json:"id"`
	OwnerUserID        uuid.UUID `json:"owner_user_id"`
	Name               string    `json:"name"`
	Platforms          []string  `json:"platforms"`
	TargetCreatorCount int       `json:"target_creator_count"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks the campaign spec on creation.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalidSpec)
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", apperr.ErrInvalidSpec)
	}
	if c.TargetCreatorCount < 1 {
		return fmt.Errorf("%w: target creator count must be at least 1", apperr.ErrInvalidSpec)
	}
	if c.StartDate.After(c.EndDate) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			apperr.ErrInvalidTimeline, c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
	}
	return nil
}

// Acknowledgment statuses on a roster entry
const (
	AckStatusPending      = "pending"
	AckStatusAcknowledged = "acknowledged"
	AckStatusDeclined     = "declined"
)

// Assignment provenance
const (
	AssignmentSourceAssigned = "assigned" // in-product assignment of an existing creator
	AssignmentSourceInvited  = "invited"  // bound through an external invite token
)

// CreatorAssignment binds one creator to one campaign. A creator appears at
// most once per campaign; AcknowledgedAt is set exactly once, on the
// pending -> acknowledged transition.
type CreatorAssignment struct {
	ID             uuid.UUID  `json:"id"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	CreatorUserID  uuid.UUID  `json:"creator_user_id"`
	AckStatus      string     `json:"ack_status"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Source         string     `json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (a *CreatorAssignment) IsAcknowledged() bool {
	return a.AckStatus == AckStatusAcknowledged
}
