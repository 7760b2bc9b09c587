package models

import (
	"time"

	"github.com/google/uuid"
)

// Deliverable statuses
const (
	DeliverableStatusPending           = "pending"
	DeliverableStatusDraftSubmitted    = "draft_submitted"
	DeliverableStatusInReview          = "in_review"
	DeliverableStatusApproved          = "approved"
	DeliverableStatusRevisionRequested = "revision_requested"
	DeliverableStatusPosted            = "posted"
	DeliverableStatusCompleted         = "completed"
	DeliverableStatusCancelled         = "cancelled"
)

// Valid state transitions: from -> []to
var ValidDeliverableTransitions = map[string][]string{
	DeliverableStatusPending:           {DeliverableStatusDraftSubmitted, DeliverableStatusCancelled},
	DeliverableStatusDraftSubmitted:    {DeliverableStatusInReview, DeliverableStatusCancelled},
	DeliverableStatusInReview:          {DeliverableStatusApproved, DeliverableStatusRevisionRequested},
	DeliverableStatusRevisionRequested: {DeliverableStatusDraftSubmitted, DeliverableStatusCancelled},
	DeliverableStatusApproved:          {DeliverableStatusPosted, DeliverableStatusCompleted, DeliverableStatusCancelled},
	DeliverableStatusPosted:            {DeliverableStatusCompleted},
	DeliverableStatusCompleted:         {},
	DeliverableStatusCancelled:         {},
}

func IsValidDeliverableTransition(from, to string) bool {
	allowed, ok := ValidDeliverableTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalDeliverableStatus reports whether a deliverable no longer counts
// against the campaign completion rollup.
func IsTerminalDeliverableStatus(status string) bool {
	return status == DeliverableStatusCompleted || status == DeliverableStatusCancelled
}

// Content types
const (
	ContentTypeVideo = "video"
	ContentTypeReel  = "reel"
	ContentTypeStory = "story"
	ContentTypePost  = "post"
)

// Deliverable is one unit of contracted content work for one creator on one
// campaign. CurrentVersion counts submitted drafts; revision count for
// reporting is CurrentVersion - 1.
type Deliverable struct {
	ID             uuid.UUID  `json:"id"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	CreatorUserID  uuid.UUID  `json:"creator_user_id"`
	Platform       string     `json:"platform"`
	ContentType    string     `json:"content_type"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Status         string     `json:"status"`
	CurrentVersion int        `json:"current_version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Draft statuses
const (
	DraftStatusSubmitted         = "submitted"
	DraftStatusApproved          = "approved"
	DraftStatusRevisionRequested = "revision_requested"
)

// Draft is one versioned submission. Versions are strictly increasing per
// deliverable and never reused, even across revision cycles, so the draft
// history is a complete ordered audit trail.
type Draft struct {
	ID            uuid.UUID `json:"id"`
	DeliverableID uuid.UUID `json:"deliverable_id"`
	Version       int       `json:"version"`
	VideoURL      *string   `json:"video_url,omitempty"`
	DriveURL      *string   `json:"drive_url,omitempty"`
	DropboxURL    *string   `json:"dropbox_url,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ReviewNotes   *string   `json:"review_notes,omitempty"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// HasContentRef reports whether at least one content link is present.
func (d *Draft) HasContentRef() bool {
	for _, u := range []*string{d.VideoURL, d.DriveURL, d.DropboxURL} {
		if u != nil && *u != "" {
			return true
		}
	}
	return false
}

// PostProof is creator-submitted evidence that the approved content has been
// published. Verified is set by the verification worker or an operator,
// never by the creator.
type PostProof struct {
	ID            uuid.UUID  `json:"id"`
	DeliverableID uuid.UUID  `json:"deliverable_id"`
	PostURL       string     `json:"post_url"`
	ScreenshotURL *string    `json:"screenshot_url,omitempty"`
	Caption       *string    `json:"caption,omitempty"`
	Hashtags      []string   `json:"hashtags,omitempty"`
	PostedAt      time.Time  `json:"posted_at"`
	Verified      bool       `json:"verified"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}

// DeliverableWithCampaign embeds Deliverable and adds campaign info to avoid
// N+1 queries on list views.
type DeliverableWithCampaign struct {
	Deliverable
	CampaignName   *string `json:"campaign_name,omitempty"`
	CampaignStatus *string `json:"campaign_status,omitempty"`
}
