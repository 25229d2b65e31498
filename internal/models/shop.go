package models

import (
	"time"

	"github.com/google/uuid"
)

type Shop struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Mobile    string    `gorm:"size:15" json:"mobile"`
	Gstin     string    `gorm:"size:20" json:"gstin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
