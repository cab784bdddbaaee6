package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/freshmart/backend/internal/middleware"
	"github.com/freshmart/backend/internal/models"
	"github.com/freshmart/backend/internal/services"
)

// GetProducts is the handler for GET /api/products with the full
// filter/sort/paginate query surface.
func (h *Handlers) GetProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Origin:    c.Query("origin"),
		Brand:     c.Query("brand"),
		SortBy:    c.DefaultQuery("sortBy", "sold"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondBadRequest(c, "Invalid minPrice")
			return
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("maxPrice"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondBadRequest(c, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = &value
	}
	if raw := c.Query("inStock"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "Invalid inStock")
			return
		}
		filter.InStock = &value
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	products, page, err := h.Products.GetProductsWithFilters(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, products, page)
}

// GetProductBySlug is the handler for GET /api/products/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	product, err := h.Products.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// GetProductsByCategory is the handler for GET /api/products/category/:categorySlug
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	products, err := h.Products.GetProductsByCategory(c.Request.Context(), c.Param("categorySlug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// GetFlashSaleProducts is the handler for GET /api/products/flash-sale
func (h *Handlers) GetFlashSaleProducts(c *gin.Context) {
	products, err := h.Products.GetFlashSaleProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// GetBestSellingProducts is the handler for GET /api/products/best-selling
func (h *Handlers) GetBestSellingProducts(c *gin.Context) {
	products, err := h.Products.GetBestSellingProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// GetProductOrigins is the handler for GET /api/products/filters/origins
func (h *Handlers) GetProductOrigins(c *gin.Context) {
	origins, err := h.Products.GetAllOrigins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, origins)
}

// GetProductBrands is the handler for GET /api/products/filters/brands
func (h *Handlers) GetProductBrands(c *gin.Context) {
	brands, err := h.Products.GetAllBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, brands)
}

// CreateProduct is the handler for POST /api/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	created, err := h.Products.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Product created successfully", created)
}

// UpdateProduct is the handler for PUT /api/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid product id")
		return
	}

	var req services.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updatedBy := ""
	if v, ok := c.Get(middleware.ContextUserID); ok {
		updatedBy = strconv.FormatInt(v.(int64), 10)
	}

	updated, err := h.Products.UpdateProduct(c.Request.Context(), id, &req, updatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Product updated successfully", updated)
}

// DeleteProduct is the handler for DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid product id")
		return
	}

	if err := h.Products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Product deleted successfully")
}
