package clickhouse

import (
	"context"
	"fmt"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// WeekdayPerformanceStore implements storage.WeekdayPerformanceStore using ClickHouse.
type WeekdayPerformanceStore struct {
	conn *Conn
}

// NewWeekdayPerformanceStore creates a new WeekdayPerformanceStore.
func NewWeekdayPerformanceStore(conn *Conn) *WeekdayPerformanceStore {
	return &WeekdayPerformanceStore{conn: conn}
}

// Compile-time interface check.
var _ storage.WeekdayPerformanceStore = (*WeekdayPerformanceStore)(nil)

// InsertBulk adds multiple rows.
func (s *WeekdayPerformanceStore) InsertBulk(ctx context.Context, perf []*domain.WeekdayPerformance) error {
	if len(perf) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO weekday_performance (
			creator_id, weekday, avg_revenue, sample_count
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range perf {
		err = batch.Append(r.CreatorID, uint8(r.Weekday), r.AvgRevenue, uint32(r.SampleCount))
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByCreatorID retrieves per-weekday averages, ordered by weekday ASC.
// The table uses ReplacingMergeTree, so aggregation collapses replaced rows.
func (s *WeekdayPerformanceStore) GetByCreatorID(ctx context.Context, creatorID string) ([]*domain.WeekdayPerformance, error) {
	query := `
		SELECT creator_id, weekday, avg(avg_revenue), max(sample_count)
		FROM weekday_performance
		WHERE creator_id = ?
		GROUP BY creator_id, weekday
		ORDER BY weekday ASC
	`

	rows, err := s.conn.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("query weekday performance: %w", err)
	}
	defer rows.Close()

	var result []*domain.WeekdayPerformance
	for rows.Next() {
		var r domain.WeekdayPerformance
		var weekday uint8
		var sampleCount uint32

		if err := rows.Scan(&r.CreatorID, &weekday, &r.AvgRevenue, &sampleCount); err != nil {
			return nil, fmt.Errorf("scan weekday performance row: %w", err)
		}

		r.Weekday = int(weekday)
		r.SampleCount = int(sampleCount)
		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekday performance rows: %w", err)
	}

	return result, nil
}
