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

func TestCreatorProfileStore_UpsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCreatorProfileStore(pool)
	ctx := context.Background()

	profile := &domain.CreatorProfile{
		CreatorID:        "creator-001",
		FanCount:         12434,
		PageType:         domain.PageTypePaid,
		SaturationScore:  45,
		OpportunityScore: 65,
		RevenueTrend:     10,
		MessageCount:     150,
		UpdatedAt:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	err := store.Upsert(ctx, profile)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "creator-001")
	require.NoError(t, err)

	assert.Equal(t, profile.CreatorID, retrieved.CreatorID)
	assert.Equal(t, profile.FanCount, retrieved.FanCount)
	assert.Equal(t, profile.PageType, retrieved.PageType)
	assert.Equal(t, profile.SaturationScore, retrieved.SaturationScore)
	assert.Equal(t, profile.OpportunityScore, retrieved.OpportunityScore)
	assert.Equal(t, profile.RevenueTrend, retrieved.RevenueTrend)
	assert.Equal(t, profile.MessageCount, retrieved.MessageCount)
	assert.True(t, profile.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func TestCreatorProfileStore_UpsertOverwrites(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCreatorProfileStore(pool)
	ctx := context.Background()

	profile := &domain.CreatorProfile{
		CreatorID: "creator-ow",
		FanCount:  500,
		PageType:  domain.PageTypeFree,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Upsert(ctx, profile))

	profile.FanCount = 6000
	profile.PageType = domain.PageTypePaid
	require.NoError(t, store.Upsert(ctx, profile))

	retrieved, err := store.GetByID(ctx, "creator-ow")
	require.NoError(t, err)
	assert.Equal(t, 6000, retrieved.FanCount)
	assert.Equal(t, domain.PageTypePaid, retrieved.PageType)
}

func TestCreatorProfileStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCreatorProfileStore(pool)

	_, err := store.GetByID(context.Background(), "no-such-creator")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreatorProfileStore_GetAllOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCreatorProfileStore(pool)
	ctx := context.Background()

	for _, id := range []string{"creator-c", "creator-a", "creator-b"} {
		require.NoError(t, store.Upsert(ctx, &domain.CreatorProfile{
			CreatorID: id,
			FanCount:  100,
			PageType:  domain.PageTypePaid,
			UpdatedAt: time.Now().UTC(),
		}))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "creator-a", all[0].CreatorID)
	assert.Equal(t, "creator-b", all[1].CreatorID)
	assert.Equal(t, "creator-c", all[2].CreatorID)
}
