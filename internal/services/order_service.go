package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

// OrderItemInput is one requested line on a new order. The price the
// customer pays is snapshotted from the product at creation time, not
// taken from the client.
type OrderItemInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	Items           []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	ShippingFee     decimal.Decimal        `json:"shippingFee"`
	Discount        decimal.Decimal        `json:"discount"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod" binding:"required,oneof=COD QR EWALLET"`
	DeliveryOption  models.DeliveryOption  `json:"deliveryOption" binding:"required,oneof=EXPRESS_2H SAME_DAY SCHEDULED"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Note            string                 `json:"note"`
}

// estimateDelivery derives the promised delivery time from the chosen
// option: EXPRESS_2H two hours out, SAME_DAY the end of today,
// SCHEDULED the same time tomorrow.
func estimateDelivery(option models.DeliveryOption, now time.Time) time.Time {
	switch option {
	case models.DeliveryExpress2H:
		return now.Add(2 * time.Hour)
	case models.DeliverySameDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	default:
		return now.Add(24 * time.Hour)
	}
}

// OrderService is the order engine: the one component with
// multi-entity invariants (stock/sold vs. order lines, totals).
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Order not found with id: %d", id)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetUserOrdersPaginated(ctx context.Context, userID int64, page, size int) ([]models.Order, PageInfo, error) {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	var orders []models.Order
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	return orders, newPageInfo(page, size, total), nil
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order for userID: it snapshots current product
// prices into the lines, decrements stock / increments sold for every
// line, computes total, finalTotal and the estimated delivery, and
// persists the order as PENDING. Everything happens in one
// transaction; product rows are locked so concurrent checkouts cannot
// oversell.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput, userID int64) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.BadRequestf("Order must include at least one item")
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("User not found with id: %d", userID)
			}
			return err
		}

		now := time.Now()
		itemsTotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, line.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("Product not found with id: %d", line.ProductID)
				}
				return err
			}

			if product.Stock < line.Quantity {
				return apperr.BadRequestf("Insufficient stock for product: %s", product.Name)
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			itemsTotal = itemsTotal.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Price:     product.Price,
				Quantity:  line.Quantity,
			})

			err = tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
				"stock": gorm.Expr("stock - ?", line.Quantity),
				"sold":  gorm.Expr("sold + ?", line.Quantity),
			}).Error
			if err != nil {
				return err
			}
		}

		estimated := estimateDelivery(input.DeliveryOption, now)

		order = &models.Order{
			UserID:            user.ID,
			Items:             items,
			Total:             itemsTotal,
			ShippingFee:       input.ShippingFee,
			Discount:          input.Discount,
			FinalTotal:        itemsTotal.Add(input.ShippingFee).Sub(input.Discount),
			Status:            models.OrderPending,
			ShippingAddress:   input.ShippingAddress,
			PaymentMethod:     input.PaymentMethod,
			DeliveryOption:    input.DeliveryOption,
			EstimatedDelivery: &estimated,
			Note:              input.Note,
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus overwrites the status. Any valid lifecycle value
// is accepted from any state; the cancel path is the only guarded
// transition.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperr.BadRequestf("Unknown order status: %s", status)
	}

	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// CancelOrder sets the order CANCELLED and reverses the stock effects
// of creation. Only PENDING and CONFIRMED orders may be cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Items").First(&order, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Order not found with id: %d", id)
			}
			return err
		}

		if order.Status != models.OrderPending && order.Status != models.OrderConfirmed {
			return apperr.IllegalStatef("Cannot cancel order in status: %s", order.Status)
		}

		for _, item := range order.Items {
			err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Updates(map[string]any{
				"stock": gorm.Expr("stock + ?", item.Quantity),
				"sold":  gorm.Expr("sold - ?", item.Quantity),
			}).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", id).
			Update("status", models.OrderCancelled).Error
	})
}

func (s *OrderService) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// OrderStats returns the per-status order counts for the dashboard.
func (s *OrderService) OrderStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, len(models.AllOrderStatuses))
	for _, status := range models.AllOrderStatuses {
		count, err := s.CountOrdersByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[strings.ToLower(string(status))] = count
	}
	return stats, nil
}
