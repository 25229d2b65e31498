package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:150" json:"email"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PurchaseOrderPending   = "PENDING"
	PurchaseOrderReceived  = "RECEIVED"
	PurchaseOrderCancelled = "CANCELLED"
)

type PurchaseOrder struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID      uuid.UUID           `gorm:"type:uuid;index;not null" json:"shop_id"`
	SupplierID  uuid.UUID           `gorm:"type:uuid;index;not null" json:"supplier_id"`
	Supplier    *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	OrderNumber string              `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Status      string              `gorm:"size:20;index;default:'PENDING'" json:"status"`
	TotalAmount float64             `gorm:"not null;default:0" json:"total_amount"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"purchase_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	UnitCost        float64   `gorm:"not null" json:"unit_cost"`
}
