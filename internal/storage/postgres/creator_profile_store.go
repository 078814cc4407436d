package postgres

import (
	"context"
	"fmt"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// CreatorProfileStore implements storage.CreatorProfileStore using PostgreSQL.
type CreatorProfileStore struct {
	pool *Pool
}

// NewCreatorProfileStore creates a new CreatorProfileStore.
func NewCreatorProfileStore(pool *Pool) *CreatorProfileStore {
	return &CreatorProfileStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CreatorProfileStore = (*CreatorProfileStore)(nil)

// Upsert inserts or replaces a profile keyed by creator_id.
func (s *CreatorProfileStore) Upsert(ctx context.Context, p *domain.CreatorProfile) error {
	query := `
		INSERT INTO creator_profiles (
			creator_id, fan_count, page_type, saturation_score, opportunity_score,
			revenue_trend, message_count, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (creator_id) DO UPDATE SET
			fan_count = EXCLUDED.fan_count,
			page_type = EXCLUDED.page_type,
			saturation_score = EXCLUDED.saturation_score,
			opportunity_score = EXCLUDED.opportunity_score,
			revenue_trend = EXCLUDED.revenue_trend,
			message_count = EXCLUDED.message_count,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		p.CreatorID,
		p.FanCount,
		string(p.PageType),
		p.SaturationScore,
		p.OpportunityScore,
		p.RevenueTrend,
		p.MessageCount,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert creator profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile. Returns ErrNotFound if not exists.
func (s *CreatorProfileStore) GetByID(ctx context.Context, creatorID string) (*domain.CreatorProfile, error) {
	query := `
		SELECT creator_id, fan_count, page_type, saturation_score, opportunity_score,
		       revenue_trend, message_count, updated_at
		FROM creator_profiles
		WHERE creator_id = $1
	`

	row := s.pool.QueryRow(ctx, query, creatorID)

	var p domain.CreatorProfile
	var pageTypeStr string
	err := row.Scan(
		&p.CreatorID,
		&p.FanCount,
		&pageTypeStr,
		&p.SaturationScore,
		&p.OpportunityScore,
		&p.RevenueTrend,
		&p.MessageCount,
		&p.UpdatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get creator profile by id: %w", err)
	}

	p.PageType = domain.PageType(pageTypeStr)
	return &p, nil
}

// GetAll retrieves all profiles ordered by creator_id ASC.
func (s *CreatorProfileStore) GetAll(ctx context.Context) ([]*domain.CreatorProfile, error) {
	query := `
		SELECT creator_id, fan_count, page_type, saturation_score, opportunity_score,
		       revenue_trend, message_count, updated_at
		FROM creator_profiles
		ORDER BY creator_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all creator profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.CreatorProfile
	for rows.Next() {
		var p domain.CreatorProfile
		var pageTypeStr string

		err := rows.Scan(
			&p.CreatorID,
			&p.FanCount,
			&pageTypeStr,
			&p.SaturationScore,
			&p.OpportunityScore,
			&p.RevenueTrend,
			&p.MessageCount,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan creator profile row: %w", err)
		}

		p.PageType = domain.PageType(pageTypeStr)
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creator profile rows: %w", err)
	}

	return profiles, nil
}
