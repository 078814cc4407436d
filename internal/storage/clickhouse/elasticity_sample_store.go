package clickhouse

import (
	"context"
	"fmt"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// ElasticitySampleStore implements storage.ElasticitySampleStore using ClickHouse.
type ElasticitySampleStore struct {
	conn *Conn
}

// NewElasticitySampleStore creates a new ElasticitySampleStore.
func NewElasticitySampleStore(conn *Conn) *ElasticitySampleStore {
	return &ElasticitySampleStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ElasticitySampleStore = (*ElasticitySampleStore)(nil)

// InsertBulk adds multiple samples.
func (s *ElasticitySampleStore) InsertBulk(ctx context.Context, samples []*domain.ElasticitySample) error {
	if len(samples) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO elasticity_samples (
			creator_id, volume, revenue_per_send, observed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, sm := range samples {
		err = batch.Append(sm.CreatorID, uint32(sm.Volume), sm.RevenuePerSend, uint64(sm.ObservedAt))
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByCreatorID retrieves all samples for a creator, ordered by observed_at ASC.
func (s *ElasticitySampleStore) GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.ElasticitySample, error) {
	query := `
		SELECT creator_id, volume, revenue_per_send, observed_at
		FROM elasticity_samples
		WHERE creator_id = ?
		ORDER BY observed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("query elasticity samples: %w", err)
	}
	defer rows.Close()

	var samples []*domain.ElasticitySample
	for rows.Next() {
		var sm domain.ElasticitySample
		var volume uint32
		var observedAt uint64

		if err := rows.Scan(&sm.CreatorID, &volume, &sm.RevenuePerSend, &observedAt); err != nil {
			return nil, fmt.Errorf("scan elasticity sample row: %w", err)
		}

		sm.Volume = int(volume)
		sm.ObservedAt = int64(observedAt)
		samples = append(samples, &sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elasticity sample rows: %w", err)
	}

	return samples, nil
}
