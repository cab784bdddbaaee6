package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/backend/internal/models"
)

func TestNilCacheIsPermanentMiss(t *testing.T) {
	var c *ProductCache
	ctx := context.Background()

	product, found, err := c.Get(ctx, "organic-gala-apples")
	require.NoError(t, err)
	assert.Nil(t, product)
	assert.False(t, found)

	assert.NoError(t, c.Set(ctx, &models.Product{Slug: "organic-gala-apples"}))
	assert.NoError(t, c.Invalidate(ctx, "organic-gala-apples"))
}

func TestNewProductCacheWithoutClient(t *testing.T) {
	assert.Nil(t, NewProductCache(nil))
}

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:slug:fresh-milk-1l", productKey("fresh-milk-1l"))
}
