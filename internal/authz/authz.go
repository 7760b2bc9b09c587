// Package authz holds the single authorization policy consulted before
// every mutating workflow operation. Decisions are a pure function of
// (actor role, actor identity, action, entity scope) so the full
// role x action matrix can be tested without storage or transport.
package authz

import (
	"fmt"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/models"
	"github.com/google/uuid"
)

// Actor is the explicit acting identity passed into every core operation.
// Never read from ambient state.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// Actions
const (
	ActionCreateCampaign      = "create_campaign"
	ActionUpdateCampaign      = "update_campaign"
	ActionAssignCreators      = "assign_creators"
	ActionInviteCreator       = "invite_creator"
	ActionRemoveCreator       = "remove_creator"
	ActionAcceptInvitation    = "accept_invitation"
	ActionUpdateBrief         = "update_brief"
	ActionAcknowledgeBrief    = "acknowledge_brief"
	ActionDeclineAssignment   = "decline_assignment"
	ActionCreateDeliverable   = "create_deliverable"
	ActionSubmitDraft         = "submit_draft"
	ActionStartReview         = "start_review"
	ActionReviewDraft         = "review_draft"
	ActionSubmitPostProof     = "submit_post_proof"
	ActionCompleteDeliverable = "complete_deliverable"
	ActionCancelDeliverable   = "cancel_deliverable"
)

// ownerActions are performed by the brand/agency that owns the campaign.
var ownerActions = []string{
	ActionCreateCampaign, ActionUpdateCampaign, ActionAssignCreators,
	ActionInviteCreator, ActionRemoveCreator, ActionUpdateBrief,
	ActionStartReview, ActionReviewDraft, ActionCreateDeliverable,
	ActionCompleteDeliverable, ActionCancelDeliverable,
}

// creatorActions are performed by the assigned creator.
var creatorActions = []string{
	ActionAcceptInvitation, ActionAcknowledgeBrief, ActionDeclineAssignment,
	ActionSubmitDraft, ActionSubmitPostProof,
}

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	models.RoleBrand:   ownerActions,
	models.RoleAgency:  ownerActions,
	models.RoleCreator: creatorActions,
}

// Can checks whether a role may perform an action at all, independent of
// entity scope.
func Can(role, action string) bool {
	for _, a := range RolePermissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Scope narrows an action to a concrete entity: the owning brand/agency of
// the campaign and, for creator-side actions, the assigned creator.
type Scope struct {
	OwnerUserID   uuid.UUID
	CreatorUserID uuid.UUID // zero when the action has no assigned-creator side
}

// Authorize is the total decision function. It allows the action only when
// the role permits it and the actor matches the side of the scope the
// action belongs to.
func Authorize(actor Actor, action string, scope Scope) error {
	if !Can(actor.Role, action) {
		return fmt.Errorf("%w: role %s cannot %s", apperr.ErrForbidden, actor.Role, action)
	}
	if isOwnerAction(action) {
		if scope.OwnerUserID != uuid.Nil && actor.ID != scope.OwnerUserID {
			return fmt.Errorf("%w: not the owning brand/agency", apperr.ErrForbidden)
		}
		return nil
	}
	if scope.CreatorUserID != uuid.Nil && actor.ID != scope.CreatorUserID {
		return fmt.Errorf("%w: not the assigned creator", apperr.ErrForbidden)
	}
	return nil
}

func isOwnerAction(action string) bool {
	for _, a := range ownerActions {
		if a == action {
			return true
		}
	}
	return false
}
