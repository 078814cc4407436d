package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

func TestCaptionAssetStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCaptionAssetStore(pool)
	ctx := context.Background()

	asset := &domain.CaptionAsset{
		CaptionID:        "cap-dup",
		CreatorID:        "creator-001",
		ContentType:      "ppv",
		PerformanceScore: 0.5,
		CreatedAt:        time.Now().UnixMilli(),
	}

	require.NoError(t, store.Insert(ctx, asset))
	assert.ErrorIs(t, store.Insert(ctx, asset), storage.ErrDuplicateKey)
}

func TestCaptionAssetStore_CountUsable(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCaptionAssetStore(pool)
	ctx := context.Background()

	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	assets := []*domain.CaptionAsset{
		// Usable: never used, above performance floor.
		{CaptionID: "c1", CreatorID: "creator-001", ContentType: "ppv", PerformanceScore: 0.5, LastUsedAt: 0},
		// Burned out: used five days ago, inside the freshness window.
		{CaptionID: "c2", CreatorID: "creator-001", ContentType: "ppv", PerformanceScore: 0.3, LastUsedAt: now.AddDate(0, 0, -5).UnixMilli()},
		// Usable: rested for 60 days.
		{CaptionID: "c3", CreatorID: "creator-001", ContentType: "ppv", PerformanceScore: 0.9, LastUsedAt: now.AddDate(0, 0, -60).UnixMilli()},
		// Underperforming.
		{CaptionID: "c4", CreatorID: "creator-001", ContentType: "ppv", PerformanceScore: 0.1, LastUsedAt: 0},
		// Different content type.
		{CaptionID: "c5", CreatorID: "creator-001", ContentType: "bundle", PerformanceScore: 0.7, LastUsedAt: 0},
		// Different creator.
		{CaptionID: "c6", CreatorID: "creator-002", ContentType: "ppv", PerformanceScore: 0.7, LastUsedAt: 0},
	}
	for _, a := range assets {
		a.CreatedAt = now.UnixMilli()
		require.NoError(t, store.Insert(ctx, a))
	}

	counts, err := store.CountUsable(ctx, "creator-001", now, 30, 0.2)
	require.NoError(t, err)

	assert.Equal(t, 2, counts["ppv"])
	assert.Equal(t, 1, counts["bundle"])
}

func TestCaptionAssetStore_CountUsableEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCaptionAssetStore(pool)

	counts, err := store.CountUsable(context.Background(), "creator-empty", time.Now().UTC(), 30, 0.2)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
