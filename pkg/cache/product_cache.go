package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// ProductCacheTTL is the time-to-live for cached products.
	ProductCacheTTL = 24 * time.Hour

	productCacheKeyPrefix = "product"
)

// CachedProduct is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. The price is kept as its exact decimal
// string so no precision is lost on the round trip.
type CachedProduct struct {
	Code  string
	Title string
	Price decimal.Decimal
}

// ProductCache provides structured read/write operations for product cache
// entries. Key format: "product:{code}". Entries are invalidated on update
// and delete; a stale read can only serve a product that existed moments ago.
type ProductCache struct {
	client *RedisClient
}

// NewProductCache creates a new ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient) *ProductCache {
	return &ProductCache{client: r}
}

// Get retrieves a cached product by code.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProductCache) Get(ctx context.Context, code string) (*CachedProduct, error) {
	key := c.key(code)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	price, err := decimal.NewFromString(vals["price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}

	return &CachedProduct{
		Code:  vals["code"],
		Title: vals["title"],
		Price: price,
	}, nil
}

// Set writes a cached product as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ProductCache) Set(ctx context.Context, product *CachedProduct) error {
	key := c.key(product.Code)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"code", product.Code,
		"title", product.Title,
		"price", product.Price.String(),
	)
	pipe.Expire(ctx, key, ProductCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached product.
func (c *ProductCache) Delete(ctx context.Context, code string) error {
	if err := c.client.Client().Del(ctx, c.key(code)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "product:{code}"
func (c *ProductCache) key(code string) string {
	return fmt.Sprintf("%s:%s", productCacheKeyPrefix, code)
}
