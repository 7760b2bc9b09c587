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

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (owner_user_id, name, platforms, target_creator_count, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.Name, c.Platforms, c.TargetCreatorCount, c.StartDate, c.EndDate, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, name, platforms, target_creator_count,
		       start_date, end_date, status, created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Platforms, &c.TargetCreatorCount,
		&c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: campaign", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET name = $1, platforms = $2, target_creator_count = $3,
		       start_date = $4, end_date = $5, status = $6, updated_at = now()
		WHERE id = $7
	`, c.Name, c.Platforms, c.TargetCreatorCount, c.StartDate, c.EndDate, c.Status, c.ID)
	return err
}

// MarkCompletedIfRollupDone flips the campaign to completed only when every
// deliverable under it has reached a terminal state. The condition runs
// inside the UPDATE so concurrent completions cannot observe a stale rollup.
func (r *CampaignRepo) MarkCompletedIfRollupDone(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = 'completed', updated_at = now()
		WHERE id = $1
		  AND status <> 'completed'
		  AND EXISTS (SELECT 1 FROM deliverables WHERE campaign_id = $1)
		  AND NOT EXISTS (
			SELECT 1 FROM deliverables
			WHERE campaign_id = $1 AND status NOT IN ('completed', 'cancelled')
		  )
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

type CampaignFilter struct {
	OwnerUserID   *uuid.UUID
	CreatorUserID *uuid.UUID // campaigns the creator is assigned to
	Status        *string
	Limit         int
	Offset        int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `
		SELECT c.id, c.owner_user_id, c.name, c.platforms, c.target_creator_count,
		       c.start_date, c.end_date, c.status, c.created_at, c.updated_at
		FROM campaigns c
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CreatorUserID != nil {
		query += ` JOIN creator_assignments ca ON ca.campaign_id = c.id `
		where = append(where, fmt.Sprintf("ca.creator_user_id = $%d", argIdx))
		args = append(args, *f.CreatorUserID)
		argIdx++
	}
	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("c.owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("c.status = $%d", argIdx))
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
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Platforms, &c.TargetCreatorCount,
			&c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}
