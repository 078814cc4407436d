package memory

import (
	"context"
	"sync"
	"time"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// CaptionAssetStore is an in-memory implementation of storage.CaptionAssetStore.
type CaptionAssetStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CaptionAsset // keyed by caption_id
}

// NewCaptionAssetStore creates a new in-memory caption asset store.
func NewCaptionAssetStore() *CaptionAssetStore {
	return &CaptionAssetStore{
		data: make(map[string]*domain.CaptionAsset),
	}
}

// Insert adds a new asset. Returns ErrDuplicateKey if caption_id exists.
func (s *CaptionAssetStore) Insert(_ context.Context, a *domain.CaptionAsset) error {
	if a == nil || a.CaptionID == "" || a.CreatorID == "" || a.ContentType == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[a.CaptionID]; exists {
		return storage.ErrDuplicateKey
	}

	aCopy := *a
	s.data[a.CaptionID] = &aCopy
	return nil
}

// CountUsable counts assets per content type that are rested and performing.
// An asset is rested when it was never used or last used at least
// freshnessDays ago; anything used more recently is still burned out.
func (s *CaptionAssetStore) CountUsable(_ context.Context, creatorID string, now time.Time, freshnessDays int, minPerformance float64) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := now.AddDate(0, 0, -freshnessDays).UnixMilli()

	counts := make(map[string]int)
	for _, a := range s.data {
		if a.CreatorID != creatorID {
			continue
		}
		if a.PerformanceScore < minPerformance {
			continue
		}
		if a.LastUsedAt > cutoff {
			continue
		}
		counts[a.ContentType]++
	}

	return counts, nil
}

var _ storage.CaptionAssetStore = (*CaptionAssetStore)(nil)
