package clickhouse

import (
	"context"
	"fmt"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// HorizonScoreStore implements storage.HorizonScoreStore using ClickHouse.
type HorizonScoreStore struct {
	conn *Conn
}

// NewHorizonScoreStore creates a new HorizonScoreStore.
func NewHorizonScoreStore(conn *Conn) *HorizonScoreStore {
	return &HorizonScoreStore{conn: conn}
}

// Compile-time interface check.
var _ storage.HorizonScoreStore = (*HorizonScoreStore)(nil)

// InsertBulk adds multiple scores.
func (s *HorizonScoreStore) InsertBulk(ctx context.Context, scores []*domain.HorizonScore) error {
	if len(scores) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO horizon_scores (
			creator_id, horizon, saturation_score, opportunity_score, message_count, computed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, sc := range scores {
		err = batch.Append(
			sc.CreatorID, string(sc.Horizon),
			sc.SaturationScore, sc.OpportunityScore,
			uint32(sc.MessageCount), uint64(sc.ComputedAt),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByCreatorID retrieves the latest score per horizon for a creator.
func (s *HorizonScoreStore) GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.HorizonScore, error) {
	query := `
		SELECT creator_id, horizon,
		       argMax(saturation_score, computed_at),
		       argMax(opportunity_score, computed_at),
		       argMax(message_count, computed_at),
		       max(computed_at)
		FROM horizon_scores
		WHERE creator_id = ?
		GROUP BY creator_id, horizon
		ORDER BY horizon ASC
	`

	rows, err := s.conn.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("query horizon scores: %w", err)
	}
	defer rows.Close()

	return scanHorizonScores(rows)
}

// scanHorizonScores scans multiple rows.
func scanHorizonScores(rows chRows) ([]*domain.HorizonScore, error) {
	var scores []*domain.HorizonScore

	for rows.Next() {
		var sc domain.HorizonScore
		var horizonStr string
		var messageCount uint32
		var computedAt uint64

		err := rows.Scan(
			&sc.CreatorID, &horizonStr,
			&sc.SaturationScore, &sc.OpportunityScore,
			&messageCount, &computedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan horizon score row: %w", err)
		}

		sc.Horizon = domain.Horizon(horizonStr)
		sc.MessageCount = int(messageCount)
		sc.ComputedAt = int64(computedAt)
		scores = append(scores, &sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate horizon score rows: %w", err)
	}

	return scores, nil
}
