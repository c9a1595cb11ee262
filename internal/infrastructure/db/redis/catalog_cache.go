package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/discgolf/storefront/internal/core/domain"
)

const (
	catalogKey        = "catalog:discs"
	defaultCatalogTTL = 30 * time.Second
)

// CatalogCache is a read-through cache for the full disc listing. Entries
// expire quickly and every inventory write invalidates eagerly, so stale
// stock numbers only ever feed the advisory check phase, never a commit.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache wraps the given Redis client. A non-positive ttl falls
// back to the default.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached listing and whether it was present.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Disc, bool, error) {
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var discs []domain.Disc
	if err := json.Unmarshal(payload, &discs); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return discs, true, nil
}

// Set stores the listing with the cache TTL.
func (c *CatalogCache) Set(ctx context.Context, discs []domain.Disc) error {
	payload, err := json.Marshal(discs)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, payload, c.ttl).Err()
}

// Invalidate drops the cached listing.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
