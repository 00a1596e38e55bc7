package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edustack/platform/pkg/observability"
)

const listingCacheKey = "materials:listing"

// ListingCache is a read-through Redis cache for materials listings.
// Callers consult Get first and fall back to the object store on a miss;
// a broken Redis only costs latency.
type ListingCache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewListingCache creates a listing cache over an existing Redis client
func NewListingCache(client *redis.Client, ttl time.Duration, logger *observability.Logger, metrics *observability.Metrics) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultConfig().ListingCacheTTL
	}
	return &ListingCache{
		client:  client,
		ttl:     ttl,
		logger:  logger.WithField("component", "listing_cache"),
		metrics: metrics,
	}
}

// Get returns the cached listing, or (nil, nil) on a miss
func (c *ListingCache) Get(ctx context.Context) ([]ObjectInfo, error) {
	data, err := c.client.Get(ctx, listingCacheKey).Result()
	if err == redis.Nil {
		c.recordMiss()
		return nil, nil
	} else if err != nil {
		c.recordMiss()
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var objects []ObjectInfo
	if err := json.Unmarshal([]byte(data), &objects); err != nil {
		// Corrupt entries are dropped rather than returned
		c.client.Del(ctx, listingCacheKey)
		c.recordMiss()
		return nil, fmt.Errorf("failed to unmarshal cached listing: %w", err)
	}

	c.recordHit()
	return objects, nil
}

// Set stores the listing with the configured TTL
func (c *ListingCache) Set(ctx context.Context, objects []ObjectInfo) error {
	data, err := json.Marshal(objects)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	if err := c.client.Set(ctx, listingCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingCacheKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Warm refreshes the cache from the given store. Used by the background
// refresh job so interactive requests rarely pay the listing cost.
func (c *ListingCache) Warm(ctx context.Context, store ObjectStore) error {
	objects, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm listing cache: %w", err)
	}
	if err := c.Set(ctx, objects); err != nil {
		return err
	}
	c.logger.WithField("object_count", len(objects)).Debug("Listing cache warmed")
	return nil
}

func (c *ListingCache) recordHit() {
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.WithLabelValues("materials_listing").Inc()
	}
}

func (c *ListingCache) recordMiss() {
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.WithLabelValues("materials_listing").Inc()
	}
}
