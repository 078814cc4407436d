package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// PredictionStore is an in-memory implementation of storage.PredictionStore.
type PredictionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.VolumePrediction // keyed by composite key
}

// NewPredictionStore creates a new in-memory prediction store.
func NewPredictionStore() *PredictionStore {
	return &PredictionStore{
		data: make(map[string]*domain.VolumePrediction),
	}
}

// predictionKey generates a unique key for a prediction.
func predictionKey(creatorID string, weekStart time.Time) string {
	return fmt.Sprintf("%s|%s", creatorID, weekStart.UTC().Format("2006-01-02"))
}

// Upsert inserts or replaces a prediction keyed by (creator_id, week_start).
func (s *PredictionStore) Upsert(_ context.Context, p *domain.VolumePrediction) error {
	if p == nil || p.PredictionID == "" || p.CreatorID == "" || p.WeekStart.IsZero() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pCopy := *p
	s.data[predictionKey(p.CreatorID, p.WeekStart)] = &pCopy
	return nil
}

// GetByKey retrieves a prediction by its composite key. Returns ErrNotFound
// if not exists.
func (s *PredictionStore) GetByKey(_ context.Context, creatorID string, weekStart time.Time) (*domain.VolumePrediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[predictionKey(creatorID, weekStart)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	pCopy := *p
	return &pCopy, nil
}

var _ storage.PredictionStore = (*PredictionStore)(nil)
