package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierOrderPending is the status every new purchase order starts in.
const SupplierOrderPending = "PENDING"

// SupplierOrder is an inbound purchase order placed with a supplier.
// It never touches product stock; it records what was bought, not what
// was fulfilled.
type SupplierOrder struct {
	ID                   int64      `json:"id" gorm:"primaryKey"`
	OrderNumber          string     `json:"orderNumber" gorm:"size:64;uniqueIndex;not null"`
	OrderDate            time.Time  `json:"orderDate" gorm:"type:date"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty" gorm:"type:date"`

	SupplierID int64     `json:"supplierId" gorm:"not null;index"`
	Supplier   *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`

	Notes       string          `json:"notes" gorm:"type:text"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2)"`
	Status      string          `json:"status" gorm:"size:50;default:'PENDING'"`

	Items []SupplierOrderItem `json:"items" gorm:"foreignKey:SupplierOrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SupplierOrderItem is one purchased line on a supplier order.
type SupplierOrderItem struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	SupplierOrderID int64           `json:"supplierOrderId" gorm:"index;not null"`
	ProductID       int64           `json:"productId" gorm:"not null"`
	Product         *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	UnitPrice       decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
}
