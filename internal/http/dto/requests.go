package dto

import "time"

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateCampaignRequest struct {
	Name               string    `json:"name"`
	Platforms          []string  `json:"platforms"`
	TargetCreatorCount int       `json:"target_creator_count"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
}

type UpdateCampaignRequest struct {
	Name               *string    `json:"name"`
	Platforms          []string   `json:"platforms"`
	TargetCreatorCount *int       `json:"target_creator_count"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Status             *string    `json:"status"`
}

type AssignCreatorsRequest struct {
	CreatorIDs []string `json:"creator_ids"`
}

type InviteExternalRequest struct {
	Email string `json:"email"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type UpsertBriefRequest struct {
	Objective    string   `json:"objective"`
	KeyMessages  []string `json:"key_messages"`
	Dos          []string `json:"dos"`
	Donts        []string `json:"donts"`
	Hashtags     []string `json:"hashtags"`
	TimelineText string   `json:"timeline_text"`
	Guidelines   string   `json:"guidelines"`
	Template     string   `json:"template"`
}

type CreateDeliverableRequest struct {
	CreatorUserID string     `json:"creator_user_id"`
	Platform      string     `json:"platform"`
	ContentType   string     `json:"content_type"`
	DueDate       *time.Time `json:"due_date"`
}

type SubmitDraftRequest struct {
	VideoURL   *string `json:"video_url"`
	DriveURL   *string `json:"drive_url"`
	DropboxURL *string `json:"dropbox_url"`
	Notes      *string `json:"notes"`
}

type ReviewDecisionRequest struct {
	Version int     `json:"version"`
	Notes   *string `json:"notes"`
}

type SubmitPostProofRequest struct {
	PostURL       string   `json:"post_url"`
	ScreenshotURL *string  `json:"screenshot_url"`
	Caption       *string  `json:"caption"`
	Hashtags      []string `json:"hashtags"`
}
