package memory

import (
	"context"
	"sort"
	"sync"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// ElasticitySampleStore is an in-memory implementation of storage.ElasticitySampleStore.
type ElasticitySampleStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.ElasticitySample // keyed by creator_id
}

// NewElasticitySampleStore creates a new in-memory elasticity sample store.
func NewElasticitySampleStore() *ElasticitySampleStore {
	return &ElasticitySampleStore{
		data: make(map[string][]*domain.ElasticitySample),
	}
}

// InsertBulk adds multiple samples.
func (s *ElasticitySampleStore) InsertBulk(_ context.Context, samples []*domain.ElasticitySample) error {
	if len(samples) == 0 {
		return nil
	}

	for _, sm := range samples {
		if sm == nil || sm.CreatorID == "" || sm.Volume < 0 {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sm := range samples {
		smCopy := *sm
		s.data[sm.CreatorID] = append(s.data[sm.CreatorID], &smCopy)
	}
	return nil
}

// GetByCreatorID retrieves all samples for a creator, ordered by observed_at ASC.
func (s *ElasticitySampleStore) GetByCreatorID(_ context.Context, creatorID string) ([]*domain.ElasticitySample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := s.data[creatorID]
	result := make([]*domain.ElasticitySample, 0, len(samples))
	for _, sm := range samples {
		smCopy := *sm
		result = append(result, &smCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ObservedAt < result[j].ObservedAt
	})

	return result, nil
}

var _ storage.ElasticitySampleStore = (*ElasticitySampleStore)(nil)
