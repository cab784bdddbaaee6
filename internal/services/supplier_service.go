package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

// CreateSupplierInput is the payload for registering a supplier.
type CreateSupplierInput struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// SupplierService is the CRUD registry for suppliers.
type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

func (s *SupplierService) GetAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.WithContext(ctx).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *SupplierService) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.WithContext(ctx).First(&supplier, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Supplier not found with id: %d", id)
		}
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier registers a supplier; names are unique ignoring case.
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*models.Supplier, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("LOWER(name) = LOWER(?)", input.Name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequestf("Supplier with name already exists")
	}

	supplier := &models.Supplier{
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}
	if err := s.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}
