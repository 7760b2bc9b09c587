package models

import (
	"errors"
	"testing"
	"time"

	"github.com/creatorlane/backend/internal/apperr"
)

func validCampaign() Campaign {
	return Campaign{
		Name:               "Summer Launch",
		Platforms:          []string{"instagram", "tiktok"},
		TargetCreatorCount: 5,
		StartDate:          time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCampaignValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Campaign)
		wantErr error
	}{
		{"valid", func(c *Campaign) {}, nil},
		{"missing name", func(c *Campaign) { c.Name = "" }, apperr.ErrInvalidSpec},
		{"no platforms", func(c *Campaign) { c.Platforms = nil }, apperr.ErrInvalidSpec},
		{"zero target count", func(c *Campaign) { c.TargetCreatorCount = 0 }, apperr.ErrInvalidSpec},
		{"negative target count", func(c *Campaign) { c.TargetCreatorCount = -3 }, apperr.ErrInvalidSpec},
		{"start after end", func(c *Campaign) {
			c.StartDate = c.EndDate.Add(24 * time.Hour)
		}, apperr.ErrInvalidTimeline},
		{"single day window", func(c *Campaign) {
			c.StartDate = c.EndDate
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCampaign()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidCampaignTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{CampaignStatusDraft, CampaignStatusActive, true},
		{CampaignStatusActive, CampaignStatusInReview, true},
		{CampaignStatusInReview, CampaignStatusActive, true},

		// Completed is rollup-derived, never settable
		{CampaignStatusActive, CampaignStatusCompleted, false},
		{CampaignStatusInReview, CampaignStatusCompleted, false},
		{CampaignStatusDraft, CampaignStatusInReview, false},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusActive, CampaignStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := IsValidCampaignTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidCampaignTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestAssignmentIsAcknowledged(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{AckStatusPending, false},
		{AckStatusAcknowledged, true},
		{AckStatusDeclined, false},
	}

	for _, tt := range tests {
		a := CreatorAssignment{AckStatus: tt.status}
		if got := a.IsAcknowledged(); got != tt.expected {
			t.Errorf("IsAcknowledged() with %q = %v, want %v", tt.status, got, tt.expected)
		}
	}
}
