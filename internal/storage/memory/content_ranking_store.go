package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// ContentRankingStore is an in-memory implementation of storage.ContentRankingStore.
type ContentRankingStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ContentRanking // keyed by composite key
}

// NewContentRankingStore creates a new in-memory content ranking store.
func NewContentRankingStore() *ContentRankingStore {
	return &ContentRankingStore{
		data: make(map[string]*domain.ContentRanking),
	}
}

// rankingKey generates a unique key for a ranking.
func rankingKey(creatorID, contentType string) string {
	return fmt.Sprintf("%s|%s", creatorID, contentType)
}

// Upsert inserts or replaces a ranking keyed by (creator_id, content_type).
func (s *ContentRankingStore) Upsert(_ context.Context, r *domain.ContentRanking) error {
	if r == nil || r.CreatorID == "" || r.ContentType == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rCopy := *r
	s.data[rankingKey(r.CreatorID, r.ContentType)] = &rCopy
	return nil
}

// GetByCreatorID retrieves all rankings for a creator, ordered by content_type ASC.
func (s *ContentRankingStore) GetByCreatorID(_ context.Context, creatorID string) ([]*domain.ContentRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ContentRanking
	for _, r := range s.data {
		if r.CreatorID == creatorID {
			rCopy := *r
			result = append(result, &rCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ContentType < result[j].ContentType
	})

	return result, nil
}

var _ storage.ContentRankingStore = (*ContentRankingStore)(nil)
