package memory

import (
	"context"
	"sort"
	"sync"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// HorizonScoreStore is an in-memory implementation of storage.HorizonScoreStore.
type HorizonScoreStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.HorizonScore // keyed by creator_id
}

// NewHorizonScoreStore creates a new in-memory horizon score store.
func NewHorizonScoreStore() *HorizonScoreStore {
	return &HorizonScoreStore{
		data: make(map[string][]*domain.HorizonScore),
	}
}

// InsertBulk adds multiple scores.
func (s *HorizonScoreStore) InsertBulk(_ context.Context, scores []*domain.HorizonScore) error {
	if len(scores) == 0 {
		return nil
	}

	for _, sc := range scores {
		if sc == nil || sc.CreatorID == "" || sc.Horizon == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sc := range scores {
		scCopy := *sc
		s.data[sc.CreatorID] = append(s.data[sc.CreatorID], &scCopy)
	}
	return nil
}

// GetByCreatorID retrieves the latest score per horizon for a creator.
func (s *HorizonScoreStore) GetByCreatorID(_ context.Context, creatorID string) ([]*domain.HorizonScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[domain.Horizon]*domain.HorizonScore)
	for _, sc := range s.data[creatorID] {
		cur, exists := latest[sc.Horizon]
		if !exists || sc.ComputedAt > cur.ComputedAt {
			latest[sc.Horizon] = sc
		}
	}

	result := make([]*domain.HorizonScore, 0, len(latest))
	for _, sc := range latest {
		scCopy := *sc
		result = append(result, &scCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Horizon < result[j].Horizon
	})

	return result, nil
}

var _ storage.HorizonScoreStore = (*HorizonScoreStore)(nil)
