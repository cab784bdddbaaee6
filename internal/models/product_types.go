package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus mirrors the stock status shown in the storefront.
type ProductStatus string

const (
	ProductInStock    ProductStatus = "IN_STOCK"
	ProductLowStock   ProductStatus = "LOW_STOCK"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// ProductWeight is a purchasable weight variant (e.g. "500g" at its
// own price). Stored as JSON on the product row.
type ProductWeight struct {
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
}

// Product is the model for the 'products' table.
type Product struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"not null"`
	Slug          string          `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice decimal.Decimal `json:"originalPrice" gorm:"type:decimal(10,2)"`
	Image         string          `json:"image" gorm:"not null"`
	Images        []string        `json:"images" gorm:"serializer:json"`

	CategoryID   int64     `json:"categoryId" gorm:"not null;index"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CategorySlug string    `json:"categorySlug" gorm:"index"`

	Brand  string `json:"brand"`
	Origin string `json:"origin"`

	Stock       int     `json:"stock" gorm:"not null;default:0"`
	Sold        int     `json:"sold" gorm:"not null;default:0"`
	Rating      float64 `json:"rating" gorm:"default:0"`
	ReviewCount int     `json:"reviewCount" gorm:"default:0"`

	Status ProductStatus `json:"status" gorm:"size:20;default:'IN_STOCK'"`

	Weights    []ProductWeight `json:"weights" gorm:"serializer:json"`
	Tags       []string        `json:"tags" gorm:"serializer:json"`
	Promotions []string        `json:"promotions" gorm:"serializer:json"`

	IsFlashSale       bool       `json:"isFlashSale" gorm:"default:false"`
	FlashSaleDiscount *int       `json:"flashSaleDiscount,omitempty"`
	FlashSaleEnd      *time.Time `json:"flashSaleEnd,omitempty"`

	Ingredients string `json:"ingredients" gorm:"type:text"`
	Expiry      string `json:"expiry"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}
