package services

import (
	"context"
	"os"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/database"
	"github.com/freshmart/backend/internal/models"
)

type SupplierOrderServiceSuite struct {
	suite.Suite
	db     *gorm.DB
	orders *SupplierOrderService
	ctx    context.Context
}

func TestSupplierOrderServiceSuite(t *testing.T) {
	if os.Getenv("TEST_DB_DSN") == "" {
		t.Skip("TEST_DB_DSN not set, skipping database integration tests")
	}
	suite.Run(t, new(SupplierOrderServiceSuite))
}

func (s *SupplierOrderServiceSuite) SetupSuite() {
	db, err := database.Open(os.Getenv("TEST_DB_DSN"))
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db
	s.orders = NewSupplierOrderService(db)
	s.ctx = context.Background()
}

func (s *SupplierOrderServiceSuite) SetupTest() {
	for _, table := range []string{
		"supplier_order_items", "supplier_orders", "suppliers",
		"products", "categories",
	} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
}

func (s *SupplierOrderServiceSuite) seedSupplier(name string) *models.Supplier {
	supplier := &models.Supplier{Name: name, Email: name + "@example.com"}
	s.Require().NoError(s.db.Create(supplier).Error)
	return supplier
}

func (s *SupplierOrderServiceSuite) seedProduct(name string) *models.Product {
	category := &models.Category{Name: "Pantry " + name, Slug: "pantry-" + name}
	s.Require().NoError(s.db.Create(category).Error)

	product := &models.Product{
		Name:         name,
		Slug:         name,
		Price:        decimal.RequireFromString("5.00"),
		Image:        "/img.jpg",
		CategoryID:   category.ID,
		CategorySlug: category.Slug,
		Stock:        10,
		Status:       models.ProductInStock,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *SupplierOrderServiceSuite) TestCreateSupplierOrderComputesTotals() {
	supplier := s.seedSupplier("Green Farms")
	rice := s.seedProduct("rice")
	flour := s.seedProduct("flour")

	order, err := s.orders.CreateSupplierOrder(s.ctx, &SupplierOrderCreateRequest{
		OrderDate:            "2025-07-09",
		ExpectedDeliveryDate: "2025-07-16",
		SupplierID:           supplier.ID,
		Notes:                "restock",
		Items: []SupplierOrderItemRequest{
			{ProductID: rice.ID, Quantity: 4, UnitPrice: decimal.RequireFromString("12.50")},
			{ProductID: flour.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	s.Require().NoError(err)

	s.Regexp(regexp.MustCompile(`^PO-20250709-[0-9A-F]{8}$`), order.OrderNumber)
	s.Equal(models.SupplierOrderPending, order.Status)
	s.Equal("2025-07-09", order.OrderDate)
	s.Equal("2025-07-16", order.ExpectedDeliveryDate)
	s.True(order.TotalAmount.Equal(decimal.RequireFromString("66.00")))

	s.Require().NotNil(order.Supplier)
	s.Equal(supplier.ID, order.Supplier.ID)

	s.Require().Len(order.Items, 2)
	s.Equal("rice", order.Items[0].ProductName)
	s.True(order.Items[0].TotalPrice.Equal(decimal.RequireFromString("50.00")))
	s.Equal("flour", order.Items[1].ProductName)
	s.True(order.Items[1].TotalPrice.Equal(decimal.RequireFromString("16.00")))

	// Purchase orders never touch product stock.
	var updated models.Product
	s.Require().NoError(s.db.First(&updated, rice.ID).Error)
	s.Equal(10, updated.Stock)
}

func (s *SupplierOrderServiceSuite) TestCreateSupplierOrderUnknownSupplier() {
	product := s.seedProduct("sugar")

	_, err := s.orders.CreateSupplierOrder(s.ctx, &SupplierOrderCreateRequest{
		SupplierID: 99999,
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("3.00")},
		},
	})
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *SupplierOrderServiceSuite) TestCreateSupplierOrderUnknownProduct() {
	supplier := s.seedSupplier("Blue Dairy")

	_, err := s.orders.CreateSupplierOrder(s.ctx, &SupplierOrderCreateRequest{
		SupplierID: supplier.ID,
		Items: []SupplierOrderItemRequest{
			{ProductID: 99999, Quantity: 1, UnitPrice: decimal.RequireFromString("3.00")},
		},
	})
	s.Require().Error(err)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(err))

	var count int64
	s.Require().NoError(s.db.Model(&models.SupplierOrder{}).Count(&count).Error)
	s.Equal(int64(0), count)
}

func (s *SupplierOrderServiceSuite) TestCreateSupplierOrderNonPositiveUnitPrice() {
	supplier := s.seedSupplier("Red Mills")
	salt := s.seedProduct("salt")
	pepper := s.seedProduct("pepper")

	// A bad line anywhere in the payload rolls back the whole order.
	_, err := s.orders.CreateSupplierOrder(s.ctx, &SupplierOrderCreateRequest{
		SupplierID: supplier.ID,
		Items: []SupplierOrderItemRequest{
			{ProductID: salt.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("1.50")},
			{ProductID: pepper.ID, Quantity: 1, UnitPrice: decimal.Zero},
		},
	})
	s.Require().Error(err)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(err))

	var orders, items int64
	s.Require().NoError(s.db.Model(&models.SupplierOrder{}).Count(&orders).Error)
	s.Require().NoError(s.db.Model(&models.SupplierOrderItem{}).Count(&items).Error)
	s.Equal(int64(0), orders)
	s.Equal(int64(0), items)
}

func (s *SupplierOrderServiceSuite) TestGetAllOrdersFlattensProducts() {
	supplier := s.seedSupplier("Hill Orchard")
	apples := s.seedProduct("apples-bulk")

	created, err := s.orders.CreateSupplierOrder(s.ctx, &SupplierOrderCreateRequest{
		SupplierID: supplier.ID,
		Items: []SupplierOrderItemRequest{
			{ProductID: apples.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("4.00")},
		},
	})
	s.Require().NoError(err)

	orders, err := s.orders.GetAllOrders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)

	s.Equal(created.OrderNumber, orders[0].OrderNumber)
	s.Require().NotNil(orders[0].Supplier)
	s.Equal("Hill Orchard", orders[0].Supplier.Name)
	s.Require().Len(orders[0].Items, 1)
	s.Equal("apples-bulk", orders[0].Items[0].ProductName)
	s.True(orders[0].TotalAmount.Equal(decimal.RequireFromString("12.00")))
}
