package services

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/database"
	"github.com/freshmart/backend/internal/models"
)

// OrderServiceSuite exercises the order engine against a real MySQL
// instance. Set TEST_DB_DSN to run it; without it the suite is skipped.
type OrderServiceSuite struct {
	suite.Suite
	db     *gorm.DB
	orders *OrderService
	ctx    context.Context
}

func TestOrderServiceSuite(t *testing.T) {
	if os.Getenv("TEST_DB_DSN") == "" {
		t.Skip("TEST_DB_DSN not set, skipping database integration tests")
	}
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupSuite() {
	db, err := database.Open(os.Getenv("TEST_DB_DSN"))
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db
	s.orders = NewOrderService(db)
	s.ctx = context.Background()
}

func (s *OrderServiceSuite) SetupTest() {
	for _, table := range []string{
		"order_items", "orders", "wishlist_items", "addresses",
		"products", "categories", "users",
	} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
}

func (s *OrderServiceSuite) seedUser() *models.User {
	user := &models.User{
		Name:         "Test Customer",
		Email:        "customer@example.com",
		Phone:        "0900000001",
		PasswordHash: "x",
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *OrderServiceSuite) seedProduct(name string, price string, stock int) *models.Product {
	category := &models.Category{Name: "Fruits " + name, Slug: "fruits-" + name}
	s.Require().NoError(s.db.Create(category).Error)

	product := &models.Product{
		Name:         name,
		Slug:         name,
		Price:        decimal.RequireFromString(price),
		Image:        "/img.jpg",
		CategoryID:   category.ID,
		CategorySlug: category.Slug,
		Stock:        stock,
		Status:       models.ProductInStock,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *OrderServiceSuite) TestCreateOrderAppliesStockAndTotals() {
	user := s.seedUser()
	product := s.seedProduct("apples", "10.00", 100)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingFee:    decimal.RequireFromString("5.00"),
		Discount:       decimal.Zero,
		PaymentMethod:  models.PaymentCOD,
		DeliveryOption: models.DeliveryExpress2H,
	}

	order, err := s.orders.CreateOrder(s.ctx, input, user.ID)
	s.Require().NoError(err)

	s.Equal(models.OrderPending, order.Status)
	s.True(order.Total.Equal(decimal.RequireFromString("20.00")))
	s.True(order.FinalTotal.Equal(decimal.RequireFromString("25.00")))
	s.Require().Len(order.Items, 1)
	s.True(order.Items[0].Price.Equal(product.Price))
	s.NotNil(order.EstimatedDelivery)

	var updated models.Product
	s.Require().NoError(s.db.First(&updated, product.ID).Error)
	s.Equal(98, updated.Stock)
	s.Equal(2, updated.Sold)
}

func (s *OrderServiceSuite) TestCreateOrderInsufficientStock() {
	user := s.seedUser()
	product := s.seedProduct("bananas", "4.50", 1)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod:  models.PaymentCOD,
		DeliveryOption: models.DeliverySameDay,
	}

	_, err := s.orders.CreateOrder(s.ctx, input, user.ID)
	s.Require().Error(err)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(err))

	// The transaction must have rolled back the stock change.
	var updated models.Product
	s.Require().NoError(s.db.First(&updated, product.ID).Error)
	s.Equal(1, updated.Stock)
	s.Equal(0, updated.Sold)
}

func (s *OrderServiceSuite) TestCreateOrderUnknownUser() {
	product := s.seedProduct("pears", "2.00", 10)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  models.PaymentQR,
		DeliveryOption: models.DeliveryScheduled,
	}

	_, err := s.orders.CreateOrder(s.ctx, input, 99999)
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *OrderServiceSuite) TestCancelOrderRestoresStock() {
	user := s.seedUser()
	product := s.seedProduct("oranges", "3.00", 50)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 5}},
		PaymentMethod:  models.PaymentEWallet,
		DeliveryOption: models.DeliveryExpress2H,
	}
	order, err := s.orders.CreateOrder(s.ctx, input, user.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.orders.CancelOrder(s.ctx, order.ID))

	cancelled, err := s.orders.GetOrderByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderCancelled, cancelled.Status)

	var updated models.Product
	s.Require().NoError(s.db.First(&updated, product.ID).Error)
	s.Equal(50, updated.Stock)
	s.Equal(0, updated.Sold)
}

func (s *OrderServiceSuite) TestCancelOrderRejectedAfterShipping() {
	user := s.seedUser()
	product := s.seedProduct("grapes", "6.00", 20)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  models.PaymentCOD,
		DeliveryOption: models.DeliveryExpress2H,
	}
	order, err := s.orders.CreateOrder(s.ctx, input, user.ID)
	s.Require().NoError(err)

	_, err = s.orders.UpdateOrderStatus(s.ctx, order.ID, models.OrderShipping)
	s.Require().NoError(err)

	err = s.orders.CancelOrder(s.ctx, order.ID)
	s.Require().Error(err)
	s.Equal(apperr.KindIllegalState, apperr.KindOf(err))

	// Stock effects of the live order stay applied.
	var updated models.Product
	s.Require().NoError(s.db.First(&updated, product.ID).Error)
	s.Equal(19, updated.Stock)
	s.Equal(1, updated.Sold)
}

func (s *OrderServiceSuite) TestUpdateOrderStatusRejectsUnknownValue() {
	user := s.seedUser()
	product := s.seedProduct("melons", "8.00", 5)

	input := &CreateOrderInput{
		Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  models.PaymentCOD,
		DeliveryOption: models.DeliverySameDay,
	}
	order, err := s.orders.CreateOrder(s.ctx, input, user.ID)
	s.Require().NoError(err)

	_, err = s.orders.UpdateOrderStatus(s.ctx, order.ID, models.OrderStatus("TELEPORTED"))
	s.Require().Error(err)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(err))
}

func (s *OrderServiceSuite) TestOrderStatsCountsByStatus() {
	user := s.seedUser()
	product := s.seedProduct("kiwis", "1.50", 100)

	for i := 0; i < 3; i++ {
		input := &CreateOrderInput{
			Items:          []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod:  models.PaymentCOD,
			DeliveryOption: models.DeliveryExpress2H,
		}
		_, err := s.orders.CreateOrder(s.ctx, input, user.ID)
		s.Require().NoError(err)
	}

	stats, err := s.orders.OrderStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats["pending"])
	s.Equal(int64(0), stats["delivered"])
}
