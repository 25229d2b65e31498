package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationLowStock      = "LOW_STOCK"
	NotificationBackupSuccess = "BACKUP_SUCCESS"
	NotificationBackupFailed  = "BACKUP_FAILED"
	NotificationTest          = "TEST"

	NotificationSent   = "SENT"
	NotificationFailed = "FAILED"
)

type NotificationLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type         string         `gorm:"size:30;index" json:"type"`
	Recipient    string         `gorm:"size:150" json:"recipient"`
	Subject      string         `gorm:"size:255" json:"subject"`
	Status       string         `gorm:"size:20;index" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	Payload      datatypes.JSON `json:"payload,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
