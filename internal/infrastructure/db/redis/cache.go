package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

const (
	catalogKey = "sweets:catalog"
	catalogTTL = 30 * time.Second
)

// CatalogCache is a short-TTL JSON cache of the full catalog listing.
// Mutations invalidate it; a stale window of catalogTTL is acceptable for
// the read path because stock mutations always go through the store.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetList returns the cached catalog, or a nil slice on a cache miss.
func (c *CatalogCache) GetList(ctx context.Context) ([]*domain.Sweet, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []*domain.Sweet
	if err := json.Unmarshal(data, &sweets); err != nil {
		// Corrupt entry: drop it and report a miss.
		_ = c.client.Del(ctx, catalogKey).Err()
		return nil, nil
	}
	return sweets, nil
}

// SetList stores the catalog listing for catalogTTL.
func (c *CatalogCache) SetList(ctx context.Context, sweets []*domain.Sweet) error {
	data, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache marshal: %w", err)
	}
	return c.client.Set(ctx, catalogKey, data, catalogTTL).Err()
}

// Invalidate drops the cached listing.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
