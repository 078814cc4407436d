package postgres

import (
	"context"
	"fmt"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// ContentRankingStore implements storage.ContentRankingStore using PostgreSQL.
type ContentRankingStore struct {
	pool *Pool
}

// NewContentRankingStore creates a new ContentRankingStore.
func NewContentRankingStore(pool *Pool) *ContentRankingStore {
	return &ContentRankingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ContentRankingStore = (*ContentRankingStore)(nil)

// Upsert inserts or replaces a ranking keyed by (creator_id, content_type).
func (s *ContentRankingStore) Upsert(ctx context.Context, r *domain.ContentRanking) error {
	query := `
		INSERT INTO content_rankings (
			creator_id, content_type, performance_tier, avg_revenue, sample_count
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (creator_id, content_type) DO UPDATE SET
			performance_tier = EXCLUDED.performance_tier,
			avg_revenue = EXCLUDED.avg_revenue,
			sample_count = EXCLUDED.sample_count
	`

	_, err := s.pool.Exec(ctx, query,
		r.CreatorID,
		r.ContentType,
		string(r.Tier),
		r.AvgRevenue,
		r.SampleCount,
	)
	if err != nil {
		return fmt.Errorf("upsert content ranking: %w", err)
	}
	return nil
}

// GetByCreatorID retrieves all rankings for a creator, ordered by content_type ASC.
func (s *ContentRankingStore) GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.ContentRanking, error) {
	query := `
		SELECT creator_id, content_type, performance_tier, avg_revenue, sample_count
		FROM content_rankings
		WHERE creator_id = $1
		ORDER BY content_type ASC
	`

	rows, err := s.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("get content rankings by creator id: %w", err)
	}
	defer rows.Close()

	var rankings []*domain.ContentRanking
	for rows.Next() {
		var r domain.ContentRanking
		var tierStr string

		err := rows.Scan(
			&r.CreatorID,
			&r.ContentType,
			&tierStr,
			&r.AvgRevenue,
			&r.SampleCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan content ranking row: %w", err)
		}

		r.Tier = domain.PerformanceTier(tierStr)
		rankings = append(rankings, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content ranking rows: %w", err)
	}

	return rankings, nil
}
