package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID             uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	Name               string    `gorm:"size:100;index;not null" json:"name"`
	Email              string    `gorm:"size:150" json:"email"`
	Phone              string    `gorm:"size:15" json:"phone"`
	Address            string    `gorm:"type:text" json:"address"`
	DiscountPercentage float64   `gorm:"default:0" json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CustomerPricing holds a per-customer override of a product's price.
type CustomerPricing struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID         uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customer_product;not null" json:"customer_id"`
	ProductID          uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customer_product;not null" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CustomPrice        float64   `gorm:"default:0" json:"custom_price"`
	DiscountPercentage float64   `gorm:"default:0" json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
