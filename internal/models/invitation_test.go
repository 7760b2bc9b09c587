package models

import (
	"testing"
	"time"
)

func TestInvitationExpiry(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		inv        Invitation
		expired    bool
		acceptable bool
	}{
		{
			"fresh",
			Invitation{ExpiresAt: now.Add(72 * time.Hour)},
			false, true,
		},
		{
			"expired",
			Invitation{ExpiresAt: now.Add(-time.Hour)},
			true, false,
		},
		{
			"consumed but not expired",
			Invitation{ExpiresAt: now.Add(72 * time.Hour), Consumed: true},
			false, false,
		},
		{
			"consumed and expired",
			Invitation{ExpiresAt: now.Add(-time.Hour), Consumed: true},
			true, false,
		},
		{
			"expires exactly now",
			Invitation{ExpiresAt: now},
			false, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.IsExpired(now); got != tt.expired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expired)
			}
			if got := tt.inv.IsAcceptable(now); got != tt.acceptable {
				t.Errorf("IsAcceptable() = %v, want %v", got, tt.acceptable)
			}
		})
	}
}
