package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	BackupFullDatabase = "FULL_DATABASE"

	BackupCompleted = "COMPLETED"
	BackupFailed    = "FAILED"
)

type Backup struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID       *uuid.UUID     `gorm:"type:uuid;index" json:"shop_id"`
	Type         string         `gorm:"size:30;default:'FULL_DATABASE'" json:"type"`
	FileName     string         `gorm:"size:255" json:"file_name"`
	FilePath     string         `gorm:"size:512" json:"file_path"`
	FileSize     int64          `json:"file_size"`
	Status       string         `gorm:"size:20;index" json:"status"`
	IsAutomatic  bool           `gorm:"default:false" json:"is_automatic"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
}
