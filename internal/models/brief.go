package models

import (
	"time"

	"github.com/google/uuid"
)

// Brief is the single authored document per campaign that gates creator
// work. Empty sections are valid; the gate cares only about acknowledgment,
// which lives on CreatorAssignment.
type Brief struct {
	ID           uuid.UUID `json:"id"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	Objective    string    `json:"objective"`
	KeyMessages  []string  `json:"key_messages"`
	Dos          []string  `json:"dos"`
	Donts        []string  `json:"donts"`
	Hashtags     []string  `json:"hashtags"`
	TimelineText string    `json:"timeline_text"`
	Guidelines   string    `json:"guidelines"`
	Template     string    `json:"template"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
