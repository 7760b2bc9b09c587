package authz

import (
	"errors"
	"testing"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/models"
	"github.com/google/uuid"
)

var allActions = []string{
	ActionCreateCampaign, ActionUpdateCampaign, ActionAssignCreators,
	ActionInviteCreator, ActionRemoveCreator, ActionAcceptInvitation,
	ActionUpdateBrief, ActionAcknowledgeBrief, ActionDeclineAssignment,
	ActionCreateDeliverable, ActionSubmitDraft, ActionStartReview,
	ActionReviewDraft, ActionSubmitPostProof, ActionCompleteDeliverable,
	ActionCancelDeliverable,
}

func TestCanMatrix(t *testing.T) {
	creatorOnly := map[string]bool{
		ActionAcceptInvitation:  true,
		ActionAcknowledgeBrief:  true,
		ActionDeclineAssignment: true,
		ActionSubmitDraft:       true,
		ActionSubmitPostProof:   true,
	}

	for _, role := range []string{models.RoleBrand, models.RoleAgency} {
		for _, action := range allActions {
			want := !creatorOnly[action]
			if got := Can(role, action); got != want {
				t.Errorf("Can(%q, %q) = %v, want %v", role, action, got, want)
			}
		}
	}

	for _, action := range allActions {
		want := creatorOnly[action]
		if got := Can(models.RoleCreator, action); got != want {
			t.Errorf("Can(creator, %q) = %v, want %v", action, got, want)
		}
	}
}

func TestCanUnknownRole(t *testing.T) {
	for _, action := range allActions {
		if Can("admin", action) {
			t.Errorf("unknown role allowed %q", action)
		}
	}
	if Can(models.RoleBrand, "unknown_action") {
		t.Error("unknown action allowed")
	}
}

func TestAuthorizeScope(t *testing.T) {
	owner := uuid.New()
	creator := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name    string
		actor   Actor
		action  string
		scope   Scope
		allowed bool
	}{
		{
			"owner updates own campaign",
			Actor{ID: owner, Role: models.RoleBrand}, ActionUpdateCampaign,
			Scope{OwnerUserID: owner}, true,
		},
		{
			"agency owner reviews draft",
			Actor{ID: owner, Role: models.RoleAgency}, ActionReviewDraft,
			Scope{OwnerUserID: owner, CreatorUserID: creator}, true,
		},
		{
			"other brand cannot update",
			Actor{ID: stranger, Role: models.RoleBrand}, ActionUpdateCampaign,
			Scope{OwnerUserID: owner}, false,
		},
		{
			"creator cannot review own draft",
			Actor{ID: creator, Role: models.RoleCreator}, ActionReviewDraft,
			Scope{OwnerUserID: owner, CreatorUserID: creator}, false,
		},
		{
			"assigned creator submits draft",
			Actor{ID: creator, Role: models.RoleCreator}, ActionSubmitDraft,
			Scope{OwnerUserID: owner, CreatorUserID: creator}, true,
		},
		{
			"other creator cannot submit draft",
			Actor{ID: stranger, Role: models.RoleCreator}, ActionSubmitDraft,
			Scope{OwnerUserID: owner, CreatorUserID: creator}, false,
		},
		{
			"owner cannot submit draft for creator",
			Actor{ID: owner, Role: models.RoleBrand}, ActionSubmitDraft,
			Scope{OwnerUserID: owner, CreatorUserID: creator}, false,
		},
		{
			"creator accepts invitation without assigned scope",
			Actor{ID: creator, Role: models.RoleCreator}, ActionAcceptInvitation,
			Scope{}, true,
		},
		{
			"brand creates campaign with open scope",
			Actor{ID: owner, Role: models.RoleBrand}, ActionCreateCampaign,
			Scope{}, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.scope)
			if tt.allowed && err != nil {
				t.Errorf("Authorize() = %v, want nil", err)
			}
			if !tt.allowed {
				if err == nil {
					t.Fatal("Authorize() = nil, want forbidden")
				}
				if !errors.Is(err, apperr.ErrForbidden) {
					t.Errorf("Authorize() = %v, want ErrForbidden", err)
				}
			}
		})
	}
}
