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

type BriefRepo struct {
	pool *pgxpool.Pool
}

func NewBriefRepo(pool *pgxpool.Pool) *BriefRepo {
	return &BriefRepo{pool: pool}
}

// Upsert creates or replaces the single brief of a campaign.
func (r *BriefRepo) Upsert(ctx context.Context, b *models.Brief) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO briefs (campaign_id, objective, key_messages, dos, donts, hashtags, timeline_text, guidelines, template)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (campaign_id) DO UPDATE SET
			objective = EXCLUDED.objective,
			key_messages = EXCLUDED.key_messages,
			dos = EXCLUDED.dos,
			donts = EXCLUDED.donts,
			hashtags = EXCLUDED.hashtags,
			timeline_text = EXCLUDED.timeline_text,
			guidelines = EXCLUDED.guidelines,
			template = EXCLUDED.template,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, b.CampaignID, b.Objective, b.KeyMessages, b.Dos, b.Donts, b.Hashtags,
		b.TimelineText, b.Guidelines, b.Template,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BriefRepo) GetByCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Brief, error) {
	var b models.Brief
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, objective, key_messages, dos, donts, hashtags,
		       timeline_text, guidelines, template, created_at, updated_at
		FROM briefs WHERE campaign_id = $1
	`, campaignID).Scan(&b.ID, &b.CampaignID, &b.Objective, &b.KeyMessages, &b.Dos, &b.Donts,
		&b.Hashtags, &b.TimelineText, &b.Guidelines, &b.Template, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: brief", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
