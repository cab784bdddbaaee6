package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

func validUpdate() *ProductUpdate {
	stock := 10
	flashSale := false
	return &ProductUpdate{
		Name:         "Organic Gala Apples",
		Slug:         "organic-gala-apples",
		Price:        decimal.RequireFromString("3.99"),
		Image:        "/images/apples.jpg",
		CategoryID:   1,
		CategorySlug: "fruits",
		Stock:        &stock,
		Status:       models.ProductInStock,
		IsFlashSale:  &flashSale,
	}
}

func TestValidateProductUpdate(t *testing.T) {
	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, validateProductUpdate(validUpdate()))
	})

	t.Run("non-positive price rejected", func(t *testing.T) {
		req := validUpdate()
		req.Price = decimal.Zero
		err := validateProductUpdate(req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})

	t.Run("flash sale requires a discount", func(t *testing.T) {
		req := validUpdate()
		flashSale := true
		req.IsFlashSale = &flashSale
		req.FlashSaleDiscount = nil
		err := validateProductUpdate(req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})

	t.Run("flash sale with discount passes", func(t *testing.T) {
		req := validUpdate()
		flashSale := true
		discount := 25
		req.IsFlashSale = &flashSale
		req.FlashSaleDiscount = &discount
		assert.NoError(t, validateProductUpdate(req))
	})

	t.Run("discount cleared when flash sale disabled", func(t *testing.T) {
		req := validUpdate()
		discount := 25
		req.FlashSaleDiscount = &discount
		require.NoError(t, validateProductUpdate(req))
		assert.Nil(t, req.FlashSaleDiscount)
	})

	t.Run("zero stock cannot be in stock", func(t *testing.T) {
		req := validUpdate()
		stock := 0
		req.Stock = &stock
		req.Status = models.ProductInStock
		err := validateProductUpdate(req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})

	t.Run("zero stock may be out of stock", func(t *testing.T) {
		req := validUpdate()
		stock := 0
		req.Stock = &stock
		req.Status = models.ProductOutOfStock
		assert.NoError(t, validateProductUpdate(req))
	})

	t.Run("positive stock cannot be out of stock", func(t *testing.T) {
		req := validUpdate()
		req.Status = models.ProductOutOfStock
		err := validateProductUpdate(req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	})

	t.Run("low stock allowed with positive stock", func(t *testing.T) {
		req := validUpdate()
		req.Status = models.ProductLowStock
		assert.NoError(t, validateProductUpdate(req))
	})
}

func TestNewPageInfo(t *testing.T) {
	info := newPageInfo(0, 20, 45)
	assert.Equal(t, 0, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := newPageInfo(0, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)

	exact := newPageInfo(1, 10, 30)
	assert.Equal(t, 3, exact.TotalPages)
	assert.Equal(t, 1, exact.CurrentPage)
}
