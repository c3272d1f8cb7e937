package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ViewCache is a read-through Redis cache for the rendered feed, dashboard
// and detail views. Mutation actions invalidate the affected keys. Redis
// failures degrade to direct database reads; they are logged, never
// surfaced to the visitor.
type ViewCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewViewCache creates a cache with the given entry lifetime.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{redis: client, ttl: ttl}
}

func FeedCacheKey() string {
	return "views:feed"
}

func DashboardCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("views:dashboard:%s", userID)
}

func DetailCacheKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("views:recipe:%s", recipeID)
}

// Get returns the cached payload for key, or false when absent.
func (c *ViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("view cache read failed for %s: %v", key, err)
		return nil, false
	}
	return data, true
}

// Set stores a payload under key for the cache lifetime.
func (c *ViewCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("view cache write failed for %s: %v", key, err)
	}
}

// InvalidateFeed drops the cached public feed.
func (c *ViewCache) InvalidateFeed(ctx context.Context) {
	c.del(ctx, FeedCacheKey())
}

// InvalidateDashboard drops a user's cached dashboard.
func (c *ViewCache) InvalidateDashboard(ctx context.Context, userID uuid.UUID) {
	c.del(ctx, DashboardCacheKey(userID))
}

// InvalidateDetail drops a recipe's cached detail view.
func (c *ViewCache) InvalidateDetail(ctx context.Context, recipeID uuid.UUID) {
	c.del(ctx, DetailCacheKey(recipeID))
}

func (c *ViewCache) del(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("view cache invalidation failed for %v: %v", keys, err)
	}
}
