package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the customer order lifecycle.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipping  OrderStatus = "SHIPPING"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// AllOrderStatuses lists every lifecycle state, in progression order.
var AllOrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderShipping, OrderDelivered, OrderCancelled,
}

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipping, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentQR      PaymentMethod = "QR"
	PaymentEWallet PaymentMethod = "EWALLET"
)

// DeliveryOption drives the estimated delivery timestamp.
type DeliveryOption string

const (
	DeliveryExpress2H DeliveryOption = "EXPRESS_2H"
	DeliverySameDay   DeliveryOption = "SAME_DAY"
	DeliveryScheduled DeliveryOption = "SCHEDULED"
)

// ShippingAddress is embedded into the order row (shipping_* columns).
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	City     string `json:"city"`
}

// Order is the model for the 'orders' table.
type Order struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"userId" gorm:"not null;index"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	ShippingFee decimal.Decimal `json:"shippingFee" gorm:"type:decimal(10,2);not null"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(10,2)"`
	FinalTotal  decimal.Decimal `json:"finalTotal" gorm:"type:decimal(10,2);not null"`

	Status OrderStatus `json:"status" gorm:"size:20;not null;default:'PENDING';index"`

	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`

	PaymentMethod     PaymentMethod  `json:"paymentMethod" gorm:"size:20;not null"`
	DeliveryOption    DeliveryOption `json:"deliveryOption" gorm:"size:20;not null"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
	Note              string         `json:"note" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem captures price and quantity at the time of purchase.
type OrderItem struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	OrderID   int64           `json:"orderId" gorm:"index;not null"`
	ProductID int64           `json:"productId" gorm:"not null"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	CreatedAt time.Time       `json:"createdAt"`
}
