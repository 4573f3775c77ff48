package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visipakalpojumi/backend/internal/models"
)

// ErrCacheMiss is returned when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

const listingTTL = 5 * time.Minute

// ListingCache caches hot listing detail reads. Mutations invalidate.
type ListingCache interface {
	Get(ctx context.Context, listingID string) (*models.ServiceListing, error)
	Set(ctx context.Context, listing *models.ServiceListing) error
	Invalidate(ctx context.Context, listingID string) error
}

type RedisListingCache struct {
	client redis.UniversalClient
}

func NewRedisListingCache(client redis.UniversalClient) *RedisListingCache {
	return &RedisListingCache{client: client}
}

func listingKey(id string) string {
	return "listing:" + id
}

func (c *RedisListingCache) Get(ctx context.Context, listingID string) (*models.ServiceListing, error) {
	payload, err := c.client.Get(ctx, listingKey(listingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var listing models.ServiceListing
	if err := json.Unmarshal(payload, &listing); err != nil {
		// A corrupt entry behaves like a miss so the read path falls
		// through to the database.
		return nil, ErrCacheMiss
	}
	return &listing, nil
}

func (c *RedisListingCache) Set(ctx context.Context, listing *models.ServiceListing) error {
	payload, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKey(listing.ID), payload, listingTTL).Err()
}

func (c *RedisListingCache) Invalidate(ctx context.Context, listingID string) error {
	return c.client.Del(ctx, listingKey(listingID)).Err()
}

// NoopListingCache is used when no redis address is configured.
type NoopListingCache struct{}

func NewNoopListingCache() *NoopListingCache {
	return &NoopListingCache{}
}

func (c *NoopListingCache) Get(ctx context.Context, listingID string) (*models.ServiceListing, error) {
	return nil, ErrCacheMiss
}

func (c *NoopListingCache) Set(ctx context.Context, listing *models.ServiceListing) error {
	return nil
}

func (c *NoopListingCache) Invalidate(ctx context.Context, listingID string) error {
	return nil
}
