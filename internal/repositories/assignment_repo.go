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

type AssignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

// Insert adds a roster entry. The unique (campaign_id, creator_user_id)
// constraint plus ON CONFLICT DO NOTHING makes concurrent assigns safe;
// a duplicate surfaces as ErrAlreadyAssigned.
func (r *AssignmentRepo) Insert(ctx context.Context, a *models.CreatorAssignment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO creator_assignments (campaign_id, creator_user_id, ack_status, source)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, creator_user_id) DO NOTHING
		RETURNING id, created_at
	`, a.CampaignID, a.CreatorUserID, a.AckStatus, a.Source).Scan(&a.ID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: creator %s", apperr.ErrAlreadyAssigned, a.CreatorUserID)
	}
	return err
}

func (r *AssignmentRepo) Get(ctx context.Context, campaignID, creatorID uuid.UUID) (*models.CreatorAssignment, error) {
	var a models.CreatorAssignment
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, creator_user_id, ack_status, acknowledged_at, source, created_at
		FROM creator_assignments WHERE campaign_id = $1 AND creator_user_id = $2
	`, campaignID, creatorID).Scan(&a.ID, &a.CampaignID, &a.CreatorUserID, &a.AckStatus,
		&a.AcknowledgedAt, &a.Source, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: assignment", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.CreatorAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, creator_user_id, ack_status, acknowledged_at, source, created_at
		FROM creator_assignments WHERE campaign_id = $1 ORDER BY created_at
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.CreatorAssignment
	for rows.Next() {
		var a models.CreatorAssignment
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.CreatorUserID, &a.AckStatus,
			&a.AcknowledgedAt, &a.Source, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// Acknowledge sets ack_status and the acknowledgment timestamp exactly once.
// The WHERE clause is the compare-and-set: a second call matches zero rows.
func (r *AssignmentRepo) Acknowledge(ctx context.Context, campaignID, creatorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE creator_assignments
		SET ack_status = 'acknowledged', acknowledged_at = now()
		WHERE campaign_id = $1 AND creator_user_id = $2 AND ack_status = 'pending'
	`, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Decline moves a pending assignment to declined.
func (r *AssignmentRepo) Decline(ctx context.Context, campaignID, creatorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE creator_assignments
		SET ack_status = 'declined'
		WHERE campaign_id = $1 AND creator_user_id = $2 AND ack_status = 'pending'
	`, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AssignmentRepo) Delete(ctx context.Context, campaignID, creatorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM creator_assignments WHERE campaign_id = $1 AND creator_user_id = $2
	`, campaignID, creatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
