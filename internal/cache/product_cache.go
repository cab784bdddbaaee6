package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshmart/backend/internal/models"
)

const productTTL = 5 * time.Minute

// ProductCache is a cache-aside layer for product detail reads keyed
// by slug. A nil *ProductCache is valid and behaves as a permanent
// miss, so callers never branch on whether caching is enabled.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{client: client}
}

func productKey(slug string) string {
	return "product:slug:" + slug
}

// Get returns the cached product and whether it was present.
func (c *ProductCache) Get(ctx context.Context, slug string) (*models.Product, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, productKey(slug)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(payload), &product); err != nil {
		return nil, false, err
	}
	return &product, true, nil
}

// Set stores the product under its slug for the standard TTL.
func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(product.Slug), payload, productTTL).Err()
}

// Invalidate drops the cached entry after a product mutation.
func (c *ProductCache) Invalidate(ctx context.Context, slug string) error {
	if c == nil || slug == "" {
		return nil
	}
	return c.client.Del(ctx, productKey(slug)).Err()
}
