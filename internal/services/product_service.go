package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/cache"
	"github.com/freshmart/backend/internal/models"
)

// ProductFilter carries the catalog listing query parameters. Nil
// pointer fields mean "no constraint".
type ProductFilter struct {
	Category  string
	Search    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Origin    string
	Brand     string
	InStock   *bool
	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

// ProductUpdate is the validated update payload for a product. It
// replaces every updatable field; optional counters (sold, rating,
// reviewCount) are only applied when present.
type ProductUpdate struct {
	Name              string                 `json:"name" binding:"required,max=255"`
	Slug              string                 `json:"slug" binding:"required,max=255"`
	Description       string                 `json:"description" binding:"max=5000"`
	Price             decimal.Decimal        `json:"price" binding:"required"`
	OriginalPrice     decimal.Decimal        `json:"originalPrice"`
	Image             string                 `json:"image" binding:"required"`
	Images            []string               `json:"images"`
	CategoryID        int64                  `json:"categoryId" binding:"required"`
	CategorySlug      string                 `json:"categorySlug" binding:"required"`
	Brand             string                 `json:"brand" binding:"max=255"`
	Origin            string                 `json:"origin" binding:"max=255"`
	Stock             *int                   `json:"stock" binding:"required,gte=0"`
	Sold              *int                   `json:"sold" binding:"omitempty,gte=0"`
	Status            models.ProductStatus   `json:"status" binding:"required,oneof=IN_STOCK LOW_STOCK OUT_OF_STOCK"`
	IsFlashSale       *bool                  `json:"isFlashSale" binding:"required"`
	FlashSaleDiscount *int                   `json:"flashSaleDiscount" binding:"omitempty,gte=0,lte=100"`
	Tags              []string               `json:"tags"`
	Promotions        []string               `json:"promotions"`
	Ingredients       string                 `json:"ingredients"`
	Expiry            string                 `json:"expiry"`
	Rating            *float64               `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount       *int                   `json:"reviewCount" binding:"omitempty,gte=0"`
}

// validateProductUpdate enforces the catalog consistency rules that
// binding tags cannot express. It clears the flash-sale discount when
// the flag is off.
func validateProductUpdate(req *ProductUpdate) error {
	if req.Price.Sign() <= 0 {
		return apperr.BadRequestf("Price must be greater than 0")
	}
	if *req.IsFlashSale && req.FlashSaleDiscount == nil {
		return apperr.BadRequestf("Flash sale discount is required when flash sale is enabled")
	}
	if !*req.IsFlashSale {
		req.FlashSaleDiscount = nil
	}
	if *req.Stock == 0 && req.Status == models.ProductInStock {
		return apperr.BadRequestf("Cannot set status IN_STOCK while stock is zero")
	}
	if *req.Stock > 0 && req.Status == models.ProductOutOfStock {
		return apperr.BadRequestf("Cannot mark product as OUT_OF_STOCK while stock is greater than zero")
	}
	return nil
}

// ProductService is the catalog store: filtered listing plus CRUD with
// the stock/flash-sale consistency rules.
type ProductService struct {
	db    *gorm.DB
	cache *cache.ProductCache
}

func NewProductService(db *gorm.DB, productCache *cache.ProductCache) *ProductService {
	return &ProductService{db: db, cache: productCache}
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("Category").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// sortColumns whitelists what the client may sort on.
var sortColumns = map[string]string{
	"sold":        "sold",
	"price":       "price",
	"name":        "name",
	"rating":      "rating",
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"reviewCount": "review_count",
}

func (s *ProductService) GetProductsWithFilters(ctx context.Context, filter ProductFilter) ([]models.Product, PageInfo, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category_slug = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Origin != "" {
		query = query.Where("origin = ?", filter.Origin)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.InStock != nil && *filter.InStock {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "sold"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	if filter.Size <= 0 {
		filter.Size = 20
	}
	if filter.Page < 0 {
		filter.Page = 0
	}

	var products []models.Product
	err := query.
		Order(column + " " + direction).
		Offset(filter.Page * filter.Size).
		Limit(filter.Size).
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	return products, newPageInfo(filter.Page, filter.Size, total), nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Product not found with id: %d", id)
		}
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug serves the product detail page. It reads through
// the redis cache when one is configured; cache failures only log, the
// database remains the source of truth.
func (s *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	if cached, ok, err := s.cache.Get(ctx, productSlug); err != nil {
		log.Warn().Err(err).Str("slug", productSlug).Msg("product cache read failed")
	} else if ok {
		return cached, nil
	}

	var product models.Product
	err := s.db.WithContext(ctx).Preload("Category").Where("slug = ?", productSlug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Product not found with slug: %s", productSlug)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, &product); err != nil {
		log.Warn().Err(err).Str("slug", productSlug).Msg("product cache write failed")
	}
	return &product, nil
}

func (s *ProductService) GetProductsByCategory(ctx context.Context, categorySlug string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("sold DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) GetFlashSaleProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("is_flash_sale = ? AND flash_sale_end > ?", true, time.Now()).
		Order("sold DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) GetBestSellingProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("sold DESC").Limit(8).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) GetAllOrigins(ctx context.Context) ([]string, error) {
	var origins []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("origin").
		Where("origin IS NOT NULL AND origin <> ''").
		Pluck("origin", &origins).Error
	if err != nil {
		return nil, err
	}
	return origins, nil
}

func (s *ProductService) GetAllBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("brand").
		Where("brand IS NOT NULL AND brand <> ''").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}
	if product.Status == "" {
		product.Status = models.ProductInStock
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *ProductUpdate, updatedBy string) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Category not found with id: %d", req.CategoryID)
		}
		return nil, err
	}

	if err := validateProductUpdate(req); err != nil {
		return nil, err
	}

	previousSlug := product.Slug

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = req.Price
	product.OriginalPrice = req.OriginalPrice
	product.Image = req.Image
	product.Images = req.Images
	product.CategoryID = category.ID
	product.Category = &category
	product.CategorySlug = req.CategorySlug
	product.Brand = req.Brand
	product.Origin = req.Origin
	product.Stock = *req.Stock
	product.Status = req.Status
	product.Tags = req.Tags
	product.Promotions = req.Promotions
	product.Ingredients = req.Ingredients
	product.Expiry = req.Expiry
	product.IsFlashSale = *req.IsFlashSale
	product.FlashSaleDiscount = req.FlashSaleDiscount
	product.UpdatedBy = updatedBy

	if req.Sold != nil {
		product.Sold = *req.Sold
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.ReviewCount != nil {
		product.ReviewCount = *req.ReviewCount
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, previousSlug); err != nil {
		log.Warn().Err(err).Str("slug", previousSlug).Msg("product cache invalidation failed")
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, product.Slug); err != nil {
		log.Warn().Err(err).Str("slug", product.Slug).Msg("product cache invalidation failed")
	}
	return nil
}
