package models

import "testing"

func TestIsValidDeliverableTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{DeliverableStatusPending, DeliverableStatusDraftSubmitted, true},
		{DeliverableStatusDraftSubmitted, DeliverableStatusInReview, true},
		{DeliverableStatusInReview, DeliverableStatusApproved, true},
		{DeliverableStatusInReview, DeliverableStatusRevisionRequested, true},
		{DeliverableStatusRevisionRequested, DeliverableStatusDraftSubmitted, true},
		{DeliverableStatusApproved, DeliverableStatusPosted, true},
		{DeliverableStatusApproved, DeliverableStatusCompleted, true},
		{DeliverableStatusPosted, DeliverableStatusCompleted, true},

		// Cancellation paths
		{DeliverableStatusPending, DeliverableStatusCancelled, true},
		{DeliverableStatusDraftSubmitted, DeliverableStatusCancelled, true},
		{DeliverableStatusRevisionRequested, DeliverableStatusCancelled, true},
		{DeliverableStatusApproved, DeliverableStatusCancelled, true},

		// Invalid transitions
		{DeliverableStatusPending, DeliverableStatusApproved, false},
		{DeliverableStatusPending, DeliverableStatusInReview, false},
		{DeliverableStatusDraftSubmitted, DeliverableStatusApproved, false},
		{DeliverableStatusApproved, DeliverableStatusRevisionRequested, false},
		{DeliverableStatusPosted, DeliverableStatusCancelled, false},
		{DeliverableStatusPosted, DeliverableStatusApproved, false},
		{DeliverableStatusCompleted, DeliverableStatusCancelled, false},
		{DeliverableStatusCompleted, DeliverableStatusPending, false},
		{DeliverableStatusCancelled, DeliverableStatusPending, false},
		{"nonexistent", DeliverableStatusPending, false},
		{DeliverableStatusPending, "nonexistent", false},

		// Revision loop
		{DeliverableStatusRevisionRequested, DeliverableStatusInReview, false},
		{DeliverableStatusInReview, DeliverableStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidDeliverableTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidDeliverableTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllDeliverableStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		DeliverableStatusPending, DeliverableStatusDraftSubmitted,
		DeliverableStatusInReview, DeliverableStatusApproved,
		DeliverableStatusRevisionRequested, DeliverableStatusPosted,
		DeliverableStatusCompleted, DeliverableStatusCancelled,
	}

	for _, status := range allStatuses {
		if _, ok := ValidDeliverableTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidDeliverableTransitions map", status)
		}
	}
}

func TestIsTerminalDeliverableStatus(t *testing.T) {
	terminal := []string{DeliverableStatusCompleted, DeliverableStatusCancelled}
	for _, status := range terminal {
		if !IsTerminalDeliverableStatus(status) {
			t.Errorf("expected %q to be terminal", status)
		}
		if len(ValidDeliverableTransitions[status]) != 0 {
			t.Errorf("terminal status %q has outgoing transitions", status)
		}
	}

	nonTerminal := []string{
		DeliverableStatusPending, DeliverableStatusDraftSubmitted,
		DeliverableStatusInReview, DeliverableStatusApproved,
		DeliverableStatusRevisionRequested, DeliverableStatusPosted,
	}
	for _, status := range nonTerminal {
		if IsTerminalDeliverableStatus(status) {
			t.Errorf("expected %q not to be terminal", status)
		}
	}
}

func TestDraftHasContentRef(t *testing.T) {
	url := "https://drive.example.com/x"
	empty := ""

	tests := []struct {
		name     string
		draft    Draft
		expected bool
	}{
		{"no refs", Draft{}, false},
		{"video url", Draft{VideoURL: &url}, true},
		{"drive url", Draft{DriveURL: &url}, true},
		{"dropbox url", Draft{DropboxURL: &url}, true},
		{"empty strings only", Draft{VideoURL: &empty, DriveURL: &empty}, false},
		{"notes only", Draft{Notes: &url}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.HasContentRef(); got != tt.expected {
				t.Errorf("HasContentRef() = %v, want %v", got, tt.expected)
			}
		})
	}
}
