package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrForbidden, 403},
		{ErrNotFound, 404},
		{ErrAlreadyConsumed, 409},
		{ErrAlreadyAssigned, 409},
		{ErrAlreadyAcknowledged, 409},
		{ErrEmailInUse, 409},
		{ErrStaleDraft, 409},
		{ErrInvalidState, 400},
		{ErrInvalidToken, 400},
		{ErrExpired, 400},
		{ErrBriefNotAcknowledged, 400},
		{ErrValidation, 400},
		{ErrInvalidTimeline, 400},
		{ErrInvalidSpec, 400},
		{errors.New("database on fire"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHTTPStatusWrapped(t *testing.T) {
	wrapped := fmt.Errorf("deliverable cannot move: %w", ErrInvalidState)
	if got := HTTPStatus(wrapped); got != 400 {
		t.Errorf("HTTPStatus(wrapped) = %d, want 400", got)
	}

	deep := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrStaleDraft))
	if got := HTTPStatus(deep); got != 409 {
		t.Errorf("HTTPStatus(deep wrapped) = %d, want 409", got)
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(ErrStaleDraft) {
		t.Error("expected ErrStaleDraft to be recoverable")
	}
	if IsRecoverable(errors.New("connection reset")) {
		t.Error("expected unknown error to be unrecoverable")
	}
}
