package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/models"
)

// GetAllCategories is the handler for GET /api/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Categories.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, categories)
}

// GetCategoryBySlug is the handler for GET /api/categories/:slug
func (h *Handlers) GetCategoryBySlug(c *gin.Context) {
	category, err := h.Categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

type categoryInput struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

// CreateCategory is the handler for POST /api/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	category := &models.Category{
		Name:  input.Name,
		Slug:  input.Slug,
		Icon:  input.Icon,
		Image: input.Image,
	}
	created, err := h.Categories.CreateCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Category created successfully", created)
}

// UpdateCategory is the handler for PUT /api/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid category id")
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.Categories.UpdateCategory(c.Request.Context(), id, &models.Category{
		Name:  input.Name,
		Slug:  input.Slug,
		Icon:  input.Icon,
		Image: input.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Category updated successfully", updated)
}

// DeleteCategory is the handler for DELETE /api/categories/:id
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid category id")
		return
	}

	if err := h.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Category deleted successfully")
}
