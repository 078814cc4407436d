package memory

import (
	"context"
	"sort"
	"sync"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// CreatorProfileStore is an in-memory implementation of storage.CreatorProfileStore.
type CreatorProfileStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CreatorProfile
}

// NewCreatorProfileStore creates a new in-memory creator profile store.
func NewCreatorProfileStore() *CreatorProfileStore {
	return &CreatorProfileStore{
		data: make(map[string]*domain.CreatorProfile),
	}
}

// Upsert inserts or replaces a profile keyed by creator_id.
func (s *CreatorProfileStore) Upsert(_ context.Context, p *domain.CreatorProfile) error {
	if p == nil || p.CreatorID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pCopy := *p
	s.data[p.CreatorID] = &pCopy
	return nil
}

// GetByID retrieves a profile. Returns ErrNotFound if not exists.
func (s *CreatorProfileStore) GetByID(_ context.Context, creatorID string) (*domain.CreatorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[creatorID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	pCopy := *p
	return &pCopy, nil
}

// GetAll retrieves all profiles ordered by creator_id ASC.
func (s *CreatorProfileStore) GetAll(_ context.Context) ([]*domain.CreatorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CreatorProfile, 0, len(s.data))
	for _, p := range s.data {
		pCopy := *p
		result = append(result, &pCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatorID < result[j].CreatorID
	})

	return result, nil
}

var _ storage.CreatorProfileStore = (*CreatorProfileStore)(nil)
