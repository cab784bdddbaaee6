package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

const dateLayout = "2006-01-02"

// SupplierOrderItemRequest is one requested purchase line.
type SupplierOrderItemRequest struct {
	ProductID int64           `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// SupplierOrderCreateRequest is the purchase-order payload. Dates are
// yyyy-mm-dd strings; an empty order date means today.
type SupplierOrderCreateRequest struct {
	OrderDate            string                     `json:"orderDate"`
	ExpectedDeliveryDate string                     `json:"expectedDeliveryDate"`
	SupplierID           int64                      `json:"supplierId" binding:"required"`
	Notes                string                     `json:"notes"`
	Items                []SupplierOrderItemRequest `json:"items"`
}

// SupplierOrderLine flattens an item with its product name for the
// response shape.
type SupplierOrderLine struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// SupplierOrderResponse is the flattened purchase-order view.
type SupplierOrderResponse struct {
	ID                   int64               `json:"id"`
	OrderNumber          string              `json:"orderNumber"`
	OrderDate            string              `json:"orderDate"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate,omitempty"`
	Status               string              `json:"status"`
	TotalAmount          decimal.Decimal     `json:"totalAmount"`
	Notes                string              `json:"notes,omitempty"`
	Supplier             *models.Supplier    `json:"supplier"`
	Items                []SupplierOrderLine `json:"items"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// generateOrderNumber builds the human-readable purchase order number:
// PO-<yyyyMMdd>-<8 uppercase chars of a fresh UUID>. Uniqueness is
// probabilistic; the column's unique index is the backstop.
func generateOrderNumber(orderDate time.Time) string {
	datePart := orderDate.Format("20060102")
	randomPart := strings.ToUpper(uuid.New().String()[:8])
	return "PO-" + datePart + "-" + randomPart
}

// lineTotal is unitPrice × quantity.
func lineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// SupplierOrderService composes suppliers and products into inbound
// purchase orders. Purchase orders never mutate product stock.
type SupplierOrderService struct {
	db *gorm.DB
}

func NewSupplierOrderService(db *gorm.DB) *SupplierOrderService {
	return &SupplierOrderService{db: db}
}

// CreateSupplierOrder validates the request, prices every line and
// persists the order with its items in one transaction.
func (s *SupplierOrderService) CreateSupplierOrder(ctx context.Context, req *SupplierOrderCreateRequest) (*SupplierOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.BadRequestf("Order must include at least one product")
	}

	orderDate := time.Now()
	if req.OrderDate != "" {
		parsed, err := time.Parse(dateLayout, req.OrderDate)
		if err != nil {
			return nil, apperr.BadRequestf("Invalid order date: %s", req.OrderDate)
		}
		orderDate = parsed
	}

	var expectedDelivery *time.Time
	if req.ExpectedDeliveryDate != "" {
		parsed, err := time.Parse(dateLayout, req.ExpectedDeliveryDate)
		if err != nil {
			return nil, apperr.BadRequestf("Invalid expected delivery date: %s", req.ExpectedDeliveryDate)
		}
		expectedDelivery = &parsed
	}

	var response *SupplierOrderResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, req.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Supplier not found with id: %d", req.SupplierID)
			}
			return err
		}

		order := &models.SupplierOrder{
			OrderNumber:          generateOrderNumber(orderDate),
			OrderDate:            orderDate,
			ExpectedDeliveryDate: expectedDelivery,
			SupplierID:           supplier.ID,
			Notes:                req.Notes,
			Status:               models.SupplierOrderPending,
		}

		total := decimal.Zero
		names := make([]string, 0, len(req.Items))

		for _, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.BadRequestf("Product not found with id: %d", line.ProductID)
				}
				return err
			}

			if line.UnitPrice.Sign() <= 0 {
				return apperr.BadRequestf("Unit price must be greater than 0")
			}

			itemTotal := lineTotal(line.UnitPrice, line.Quantity)
			order.Items = append(order.Items, models.SupplierOrderItem{
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: itemTotal,
			})
			names = append(names, product.Name)
			total = total.Add(itemTotal)
		}

		order.TotalAmount = total

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		order.Supplier = &supplier
		response = mapSupplierOrder(order, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetAllOrders lists every purchase order in the flattened shape.
func (s *SupplierOrderService) GetAllOrders(ctx context.Context) ([]SupplierOrderResponse, error) {
	var orders []models.SupplierOrder
	err := s.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierOrderResponse, 0, len(orders))
	for i := range orders {
		names := make([]string, len(orders[i].Items))
		for j, item := range orders[i].Items {
			if item.Product != nil {
				names[j] = item.Product.Name
			}
		}
		responses = append(responses, *mapSupplierOrder(&orders[i], names))
	}
	return responses, nil
}

func mapSupplierOrder(order *models.SupplierOrder, productNames []string) *SupplierOrderResponse {
	resp := &SupplierOrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate.Format(dateLayout),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Notes:       order.Notes,
		Supplier:    order.Supplier,
		Items:       make([]SupplierOrderLine, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if order.ExpectedDeliveryDate != nil {
		resp.ExpectedDeliveryDate = order.ExpectedDeliveryDate.Format(dateLayout)
	}
	for i, item := range order.Items {
		name := ""
		if i < len(productNames) {
			name = productNames[i]
		}
		resp.Items = append(resp.Items, SupplierOrderLine{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}
