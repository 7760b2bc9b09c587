package queue

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task types
const (
	TaskTypeInvitationEmail = "email:invitation"
	TaskTypeAssignmentEmail = "email:assignment"
	TaskTypeVerifyPost      = "post:verify"
)

type InvitationEmailPayload struct {
	Email        string `json:"email"`
	CampaignName string `json:"campaign_name"`
	Token        string `json:"token"`
}

type AssignmentEmailPayload struct {
	Email        string `json:"email"`
	CampaignName string `json:"campaign_name"`
}

type VerifyPostPayload struct {
	DeliverableID uuid.UUID `json:"deliverable_id"`
	PostURL       string    `json:"post_url"`
}

func NewInvitationEmailTask(p InvitationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInvitationEmail, data), nil
}

func NewAssignmentEmailTask(p AssignmentEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAssignmentEmail, data), nil
}

func NewVerifyPostTask(p VerifyPostPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeVerifyPost, data), nil
}
