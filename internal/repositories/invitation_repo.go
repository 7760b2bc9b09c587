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

type InvitationRepo struct {
	pool *pgxpool.Pool
}

func NewInvitationRepo(pool *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{pool: pool}
}

func (r *InvitationRepo) Create(ctx context.Context, inv *models.Invitation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO invitations (campaign_id, email, creator_user_id, token, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, inv.CampaignID, inv.Email, inv.CreatorUserID, inv.Token, inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
}

func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, email, creator_user_id, token, expires_at, consumed, consumed_at, created_at
		FROM invitations WHERE token = $1
	`, token).Scan(&inv.ID, &inv.CampaignID, &inv.Email, &inv.CreatorUserID, &inv.Token,
		&inv.ExpiresAt, &inv.Consumed, &inv.ConsumedAt, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: no such invitation", apperr.ErrInvalidToken)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Consume marks the invitation consumed exactly once. Concurrent accepts
// race on the consumed flag; exactly one UPDATE matches.
func (r *InvitationRepo) Consume(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invitations SET consumed = true, consumed_at = now()
		WHERE token = $1 AND consumed = false AND expires_at > now()
	`, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InvitationRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Invitation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, email, creator_user_id, token, expires_at, consumed, consumed_at, created_at
		FROM invitations WHERE campaign_id = $1 ORDER BY created_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.CampaignID, &inv.Email, &inv.CreatorUserID, &inv.Token,
			&inv.ExpiresAt, &inv.Consumed, &inv.ConsumedAt, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, nil
}
