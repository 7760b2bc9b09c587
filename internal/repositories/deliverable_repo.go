package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorlane/backend/internal/apperr"
	"github.com/creatorlane/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliverableRepo struct {
	pool *pgxpool.Pool
}

func NewDeliverableRepo(pool *pgxpool.Pool) *DeliverableRepo {
	return &DeliverableRepo{pool: pool}
}

func (r *DeliverableRepo) Create(ctx context.Context, d *models.Deliverable) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO deliverables (campaign_id, creator_user_id, platform, content_type, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, current_version, created_at, updated_at
	`, d.CampaignID, d.CreatorUserID, d.Platform, d.ContentType, d.DueDate, d.Status,
	).Scan(&d.ID, &d.CurrentVersion, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DeliverableRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deliverable, error) {
	var d models.Deliverable
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, creator_user_id, platform, content_type, due_date,
		       status, current_version, created_at, updated_at
		FROM deliverables WHERE id = $1
	`, id).Scan(&d.ID, &d.CampaignID, &d.CreatorUserID, &d.Platform, &d.ContentType, &d.DueDate,
		&d.Status, &d.CurrentVersion, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: deliverable", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type DeliverableFilter struct {
	CampaignID    *uuid.UUID
	CreatorUserID *uuid.UUID
	Status        *string
	Limit         int
	Offset        int
}

func (r *DeliverableRepo) ListWithCampaign(ctx context.Context, f DeliverableFilter) ([]models.DeliverableWithCampaign, error) {
	query := `
		SELECT d.id, d.campaign_id, d.creator_user_id, d.platform, d.content_type, d.due_date,
		       d.status, d.current_version, d.created_at, d.updated_at,
		       c.name, c.status
		FROM deliverables d
		JOIN campaigns c ON c.id = d.campaign_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("d.campaign_id = $%d", argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
	if f.CreatorUserID != nil {
		where = append(where, fmt.Sprintf("d.creator_user_id = $%d", argIdx))
		args = append(args, *f.CreatorUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("d.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DeliverableWithCampaign
	for rows.Next() {
		var d models.DeliverableWithCampaign
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.CreatorUserID, &d.Platform, &d.ContentType, &d.DueDate,
			&d.Status, &d.CurrentVersion, &d.CreatedAt, &d.UpdatedAt,
			&d.CampaignName, &d.CampaignStatus); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Transition moves the deliverable from one of fromStatuses to toStatus.
// The status check runs inside the UPDATE; a concurrent transition makes
// this one match zero rows.
func (r *DeliverableRepo) Transition(ctx context.Context, id uuid.UUID, fromStatuses []string, toStatus string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE deliverables SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3)
	`, toStatus, id, fromStatuses)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// TransitionAtVersion is Transition with an optimistic version check; review
// decisions pass the version they reviewed so a decision on a superseded
// draft matches zero rows.
func (r *DeliverableRepo) TransitionAtVersion(ctx context.Context, id uuid.UUID, fromStatuses []string, toStatus string, version int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE deliverables SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3) AND current_version = $4
	`, toStatus, id, fromStatuses, version)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SubmitDraft bumps current_version and appends the draft row in one
// transaction. The version bump is the compare-and-set: two concurrent
// submissions against the same expected version cannot both succeed, and
// version numbers are never reused.
func (r *DeliverableRepo) SubmitDraft(ctx context.Context, d *models.Deliverable, draft *models.Draft) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var newVersion int
	err = tx.QueryRow(ctx, `
		UPDATE deliverables
		SET status = $1, current_version = current_version + 1, updated_at = now()
		WHERE id = $2 AND status = ANY($3) AND current_version = $4
		RETURNING current_version
	`, models.DeliverableStatusDraftSubmitted, d.ID,
		[]string{models.DeliverableStatusPending, models.DeliverableStatusRevisionRequested},
		d.CurrentVersion,
	).Scan(&newVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	draft.DeliverableID = d.ID
	draft.Version = newVersion
	draft.Status = models.DraftStatusSubmitted
	err = tx.QueryRow(ctx, `
		INSERT INTO deliverable_drafts (deliverable_id, version, video_url, drive_url, dropbox_url, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, submitted_at
	`, draft.DeliverableID, draft.Version, draft.VideoURL, draft.DriveURL, draft.DropboxURL,
		draft.Notes, draft.Status,
	).Scan(&draft.ID, &draft.SubmittedAt)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	d.Status = models.DeliverableStatusDraftSubmitted
	d.CurrentVersion = newVersion
	return true, nil
}

func (r *DeliverableRepo) UpdateDraftStatus(ctx context.Context, deliverableID uuid.UUID, version int, status string, reviewNotes *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE deliverable_drafts SET status = $1, review_notes = COALESCE($2, review_notes)
		WHERE deliverable_id = $3 AND version = $4
	`, status, reviewNotes, deliverableID, version)
	return err
}

func (r *DeliverableRepo) ListDrafts(ctx context.Context, deliverableID uuid.UUID) ([]models.Draft, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, deliverable_id, version, video_url, drive_url, dropbox_url, notes, review_notes, status, submitted_at
		FROM deliverable_drafts WHERE deliverable_id = $1 ORDER BY version
	`, deliverableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		var d models.Draft
		if err := rows.Scan(&d.ID, &d.DeliverableID, &d.Version, &d.VideoURL, &d.DriveURL, &d.DropboxURL,
			&d.Notes, &d.ReviewNotes, &d.Status, &d.SubmittedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// ---- Post proofs ----

func (r *DeliverableRepo) InsertProof(ctx context.Context, p *models.PostProof) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO post_proofs (deliverable_id, post_url, screenshot_url, caption, hashtags, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.DeliverableID, p.PostURL, p.ScreenshotURL, p.Caption, p.Hashtags, p.PostedAt).Scan(&p.ID)
}

func (r *DeliverableRepo) GetProof(ctx context.Context, deliverableID uuid.UUID) (*models.PostProof, error) {
	var p models.PostProof
	err := r.pool.QueryRow(ctx, `
		SELECT id, deliverable_id, post_url, screenshot_url, caption, hashtags, posted_at, verified, verified_at
		FROM post_proofs WHERE deliverable_id = $1
	`, deliverableID).Scan(&p.ID, &p.DeliverableID, &p.PostURL, &p.ScreenshotURL, &p.Caption,
		&p.Hashtags, &p.PostedAt, &p.Verified, &p.VerifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: post proof", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DeliverableRepo) MarkProofVerified(ctx context.Context, deliverableID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE post_proofs SET verified = true, verified_at = now() WHERE deliverable_id = $1
	`, deliverableID)
	return err
}

// CancelAllForCreator cancels every non-terminal deliverable of a creator on
// a campaign. Used by creator removal; draft history stays untouched.
func (r *DeliverableRepo) CancelAllForCreator(ctx context.Context, campaignID, creatorID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE deliverables SET status = 'cancelled', updated_at = now()
		WHERE campaign_id = $1 AND creator_user_id = $2 AND status NOT IN ('completed', 'cancelled')
	`, campaignID, creatorID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
