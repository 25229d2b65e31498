package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"shop_id"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category     *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name         string     `gorm:"size:150;index;not null" json:"name"`
	Sku          string     `gorm:"size:50;index" json:"sku"`
	Barcode      string     `gorm:"size:50;index" json:"barcode"`
	QuantityType string     `gorm:"size:20;default:'COUNT'" json:"quantity_type"`
	// Stock is fractional: weighed goods sell in partial units.
	Stock        float64   `gorm:"not null;default:0" json:"stock"`
	ReorderLevel float64   `gorm:"not null;default:10" json:"reorder_level"`
	CostPrice    float64   `gorm:"not null;default:0" json:"cost_price"`
	SellingPrice float64   `gorm:"not null;default:0" json:"selling_price"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StockMovement struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"product_id"`
	Product         *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type            string     `gorm:"size:20;not null" json:"type"` // IN, OUT, ADJUSTMENT
	Quantity        float64    `gorm:"not null" json:"quantity"`
	BatchNumber     string     `gorm:"size:50" json:"batch_number"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	ReferenceNumber string     `gorm:"size:50" json:"reference_number"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
)
