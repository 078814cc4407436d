package postgres

import (
	"context"
	"fmt"
	"time"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// PredictionStore implements storage.PredictionStore using PostgreSQL.
type PredictionStore struct {
	pool *Pool
}

// NewPredictionStore creates a new PredictionStore.
func NewPredictionStore(pool *Pool) *PredictionStore {
	return &PredictionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PredictionStore = (*PredictionStore)(nil)

// Upsert inserts or replaces a prediction keyed by (creator_id, week_start).
func (s *PredictionStore) Upsert(ctx context.Context, p *domain.VolumePrediction) error {
	query := `
		INSERT INTO volume_predictions (
			prediction_id, creator_id, week_start, tier,
			revenue_per_day, engagement_per_day, retention_per_day, total_weekly,
			confidence_score, elasticity_capped, expected_revenue, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (creator_id, week_start) DO UPDATE SET
			prediction_id = EXCLUDED.prediction_id,
			tier = EXCLUDED.tier,
			revenue_per_day = EXCLUDED.revenue_per_day,
			engagement_per_day = EXCLUDED.engagement_per_day,
			retention_per_day = EXCLUDED.retention_per_day,
			total_weekly = EXCLUDED.total_weekly,
			confidence_score = EXCLUDED.confidence_score,
			elasticity_capped = EXCLUDED.elasticity_capped,
			expected_revenue = EXCLUDED.expected_revenue,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at
	`

	_, err := s.pool.Exec(ctx, query,
		p.PredictionID,
		p.CreatorID,
		p.WeekStart,
		string(p.Tier),
		p.RevenuePerDay,
		p.EngagementPerDay,
		p.RetentionPerDay,
		p.TotalWeekly,
		p.ConfidenceScore,
		p.ElasticityCapped,
		p.ExpectedRevenue,
		string(p.Source),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert volume prediction: %w", err)
	}
	return nil
}

// GetByKey retrieves a prediction by its composite key. Returns ErrNotFound
// if not exists.
func (s *PredictionStore) GetByKey(ctx context.Context, creatorID string, weekStart time.Time) (*domain.VolumePrediction, error) {
	query := `
		SELECT prediction_id, creator_id, week_start, tier,
		       revenue_per_day, engagement_per_day, retention_per_day, total_weekly,
		       confidence_score, elasticity_capped, expected_revenue, source, created_at
		FROM volume_predictions
		WHERE creator_id = $1 AND week_start = $2
	`

	row := s.pool.QueryRow(ctx, query, creatorID, weekStart)

	var p domain.VolumePrediction
	var tierStr, sourceStr string
	err := row.Scan(
		&p.PredictionID,
		&p.CreatorID,
		&p.WeekStart,
		&tierStr,
		&p.RevenuePerDay,
		&p.EngagementPerDay,
		&p.RetentionPerDay,
		&p.TotalWeekly,
		&p.ConfidenceScore,
		&p.ElasticityCapped,
		&p.ExpectedRevenue,
		&sourceStr,
		&p.CreatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get volume prediction by key: %w", err)
	}

	p.Tier = domain.Tier(tierStr)
	p.Source = domain.CalculationSource(sourceStr)
	return &p, nil
}
