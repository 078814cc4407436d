package postgres

import (
	"context"
	"fmt"
	"time"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// CaptionAssetStore implements storage.CaptionAssetStore using PostgreSQL.
type CaptionAssetStore struct {
	pool *Pool
}

// NewCaptionAssetStore creates a new CaptionAssetStore.
func NewCaptionAssetStore(pool *Pool) *CaptionAssetStore {
	return &CaptionAssetStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CaptionAssetStore = (*CaptionAssetStore)(nil)

// Insert adds a new asset. Returns ErrDuplicateKey if caption_id exists.
func (s *CaptionAssetStore) Insert(ctx context.Context, a *domain.CaptionAsset) error {
	query := `
		INSERT INTO caption_assets (
			caption_id, creator_id, content_type, performance_score, last_used_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		a.CaptionID,
		a.CreatorID,
		a.ContentType,
		a.PerformanceScore,
		a.LastUsedAt,
		a.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert caption asset: %w", err)
	}
	return nil
}

// CountUsable counts assets per content type that are rested (never used or
// last used at least freshnessDays ago) and performing at or above
// minPerformance.
func (s *CaptionAssetStore) CountUsable(ctx context.Context, creatorID string, now time.Time, freshnessDays int, minPerformance float64) (map[string]int, error) {
	query := `
		SELECT content_type, count(*)
		FROM caption_assets
		WHERE creator_id = $1
		  AND performance_score >= $2
		  AND (last_used_at = 0 OR last_used_at <= $3)
		GROUP BY content_type
	`

	cutoff := now.AddDate(0, 0, -freshnessDays).UnixMilli()

	rows, err := s.pool.Query(ctx, query, creatorID, minPerformance, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count usable captions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var contentType string
		var count int
		if err := rows.Scan(&contentType, &count); err != nil {
			return nil, fmt.Errorf("scan caption count row: %w", err)
		}
		counts[contentType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate caption count rows: %w", err)
	}

	return counts, nil
}
