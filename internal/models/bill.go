package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentCash       = "CASH"
	PaymentUpi        = "UPI"
	PaymentNetBanking = "NET_BANKING"

	BillStatusPaid      = "PAID"
	BillStatusCancelled = "CANCELLED"
)

// Bill is a finalized sale. Customer name and mobile are copied onto the
// bill at sale time so later customer edits never rewrite history.
type Bill struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"shop_id"`
	BillNumber     string     `gorm:"size:50;uniqueIndex;not null" json:"bill_number"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer       *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName   string     `gorm:"size:100" json:"customer_name"`
	CustomerMobile string     `gorm:"size:15" json:"customer_mobile"`
	PaymentMode    string     `gorm:"size:20;default:'CASH'" json:"payment_mode"`
	Status         string     `gorm:"size:20;index;default:'PAID'" json:"status"`
	SubTotal       float64    `gorm:"not null" json:"sub_total"`
	TaxAmount      float64    `gorm:"not null" json:"tax_amount"`
	Cgst           float64    `gorm:"not null" json:"cgst"`
	Sgst           float64    `gorm:"not null" json:"sgst"`
	Igst           float64    `gorm:"not null" json:"igst"`
	GrandTotal     float64    `gorm:"not null" json:"grand_total"`
	Items          []BillItem `gorm:"foreignKey:BillID" json:"items"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}

type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BillID    uuid.UUID `gorm:"type:uuid;index;not null" json:"bill_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	TaxAmount float64   `gorm:"not null" json:"tax_amount"`
	CreatedAt time.Time `json:"created_at"`
}
