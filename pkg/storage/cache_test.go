package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewListingCache(client, time.Minute, testLogger(), nil), mr
}

func TestListingCacheMiss(t *testing.T) {
	cache, _ := testCache(t)

	objects, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, objects)
}

func TestListingCacheRoundTrip(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	want := []ObjectInfo{
		{Key: "notes.pdf", Size: 1024, LastModified: time.Now().UTC().Truncate(time.Second)},
		{Key: "workbook.pdf", Size: 2048, LastModified: time.Now().UTC().Truncate(time.Second)},
	}
	require.NoError(t, cache.Set(ctx, want))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "notes.pdf", got[0].Key)
	assert.Equal(t, int64(2048), got[1].Size)
}

func TestListingCacheExpiry(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []ObjectInfo{{Key: "notes.pdf"}}))
	mr.FastForward(2 * time.Minute)

	objects, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, objects)
}

func TestListingCacheCorruptEntry(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(listingCacheKey, "{not json"))

	_, err := cache.Get(ctx)
	assert.Error(t, err)

	// The corrupt entry is dropped
	assert.False(t, mr.Exists(listingCacheKey))
}

func TestListingCacheInvalidate(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []ObjectInfo{{Key: "notes.pdf"}}))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(listingCacheKey))
}

func TestListingCacheWarm(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	store := NewMockStore(DefaultConfig(), testLogger())
	require.NoError(t, cache.Warm(ctx, store))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
