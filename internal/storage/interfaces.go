package storage

import (
	"context"
	"time"

	"creator-volume-lab/internal/domain"
)

// CreatorProfileStore provides access to creator_profiles storage.
type CreatorProfileStore interface {
	// Upsert inserts or replaces a profile keyed by creator_id.
	Upsert(ctx context.Context, p *domain.CreatorProfile) error

	// GetByID retrieves a profile. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, creatorID string) (*domain.CreatorProfile, error)

	// GetAll retrieves all profiles ordered by creator_id ASC.
	GetAll(ctx context.Context) ([]*domain.CreatorProfile, error)
}

// HorizonScoreStore provides access to horizon_scores storage.
type HorizonScoreStore interface {
	// InsertBulk adds multiple scores.
	InsertBulk(ctx context.Context, scores []*domain.HorizonScore) error

	// GetByCreatorID retrieves the latest score per horizon for a creator.
	// Missing horizons are simply absent from the result.
	GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.HorizonScore, error)
}

// ElasticitySampleStore provides access to elasticity_samples storage.
type ElasticitySampleStore interface {
	// InsertBulk adds multiple samples.
	InsertBulk(ctx context.Context, samples []*domain.ElasticitySample) error

	// GetByCreatorID retrieves all samples for a creator, ordered by
	// observed_at ASC.
	GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.ElasticitySample, error)
}

// WeekdayPerformanceStore provides access to weekday_performance storage.
type WeekdayPerformanceStore interface {
	// InsertBulk adds multiple rows.
	InsertBulk(ctx context.Context, rows []*domain.WeekdayPerformance) error

	// GetByCreatorID retrieves per-weekday averages for a creator, ordered
	// by weekday ASC. Days with no history are absent.
	GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.WeekdayPerformance, error)
}

// ContentRankingStore provides access to content_rankings storage.
type ContentRankingStore interface {
	// Upsert inserts or replaces a ranking keyed by (creator_id, content_type).
	Upsert(ctx context.Context, r *domain.ContentRanking) error

	// GetByCreatorID retrieves all rankings for a creator, ordered by
	// content_type ASC.
	GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.ContentRanking, error)
}

// CaptionAssetStore provides access to caption_assets storage.
type CaptionAssetStore interface {
	// Insert adds a new asset. Returns ErrDuplicateKey if caption_id exists.
	Insert(ctx context.Context, a *domain.CaptionAsset) error

	// CountUsable counts assets per content type that are rested (never used,
	// or unused for at least freshnessDays measured from now) and performing
	// at or above minPerformance.
	CountUsable(ctx context.Context, creatorID string, now time.Time, freshnessDays int, minPerformance float64) (map[string]int, error)
}

// PredictionStore provides access to volume_predictions storage.
type PredictionStore interface {
	// Upsert inserts or replaces a prediction keyed by (creator_id, week_start).
	Upsert(ctx context.Context, p *domain.VolumePrediction) error

	// GetByKey retrieves a prediction by its composite key. Returns
	// ErrNotFound if not exists.
	GetByKey(ctx context.Context, creatorID string, weekStart time.Time) (*domain.VolumePrediction, error)
}
