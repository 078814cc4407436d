package memory

import (
	"context"
	"sort"
	"sync"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// WeekdayPerformanceStore is an in-memory implementation of storage.WeekdayPerformanceStore.
type WeekdayPerformanceStore struct {
	mu   sync.RWMutex
	data map[string]map[int]*domain.WeekdayPerformance // creator_id -> weekday -> row
}

// NewWeekdayPerformanceStore creates a new in-memory weekday performance store.
func NewWeekdayPerformanceStore() *WeekdayPerformanceStore {
	return &WeekdayPerformanceStore{
		data: make(map[string]map[int]*domain.WeekdayPerformance),
	}
}

// InsertBulk adds multiple rows. Later rows replace earlier ones for the
// same (creator_id, weekday).
func (s *WeekdayPerformanceStore) InsertBulk(_ context.Context, rows []*domain.WeekdayPerformance) error {
	if len(rows) == 0 {
		return nil
	}

	for _, r := range rows {
		if r == nil || r.CreatorID == "" || r.Weekday < 0 || r.Weekday > 6 {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		if s.data[r.CreatorID] == nil {
			s.data[r.CreatorID] = make(map[int]*domain.WeekdayPerformance)
		}
		rCopy := *r
		s.data[r.CreatorID][r.Weekday] = &rCopy
	}
	return nil
}

// GetByCreatorID retrieves per-weekday averages, ordered by weekday ASC.
func (s *WeekdayPerformanceStore) GetByCreatorID(_ context.Context, creatorID string) ([]*domain.WeekdayPerformance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[creatorID]
	result := make([]*domain.WeekdayPerformance, 0, len(rows))
	for _, r := range rows {
		rCopy := *r
		result = append(result, &rCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Weekday < result[j].Weekday
	})

	return result, nil
}

var _ storage.WeekdayPerformanceStore = (*WeekdayPerformanceStore)(nil)
