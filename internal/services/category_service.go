package services

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

// CategoryService is the CRUD registry for catalog categories.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Category not found with id: %d", id)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Category not found with slug: %s", categorySlug)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, details *models.Category) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = details.Name
	category.Slug = details.Slug
	category.Icon = details.Icon
	category.Image = details.Image

	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(category).Error
}
