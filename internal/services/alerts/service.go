package alerts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"retail-pos-backend/internal/config"
	"retail-pos-backend/internal/models"
)

// Service delivers email notifications over SMTP and records every
// attempt in the notification log. Delivery failures are logged, never
// propagated into the caller's transaction.
type Service struct {
	db   *gorm.DB
	cfg  config.SMTPConfig
	send func(*gomail.Message) error
}

func NewService(db *gorm.DB, cfg config.SMTPConfig) *Service {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Service{
		db:   db,
		cfg:  cfg,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// SetSender overrides the SMTP delivery function (used in tests).
func (s *Service) SetSender(send func(*gomail.Message) error) {
	s.send = send
}

// CheckLowStock scans every shop for active products at or below their
// reorder level and emails the verified owners. Returns the number of
// alerts sent.
func (s *Service) CheckLowStock(shopID *uuid.UUID) (int, error) {
	query := s.db.Preload("Owner")
	if shopID != nil {
		query = query.Where("id = ?", *shopID)
	}

	var shops []models.Shop
	if err := query.Find(&shops).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, shop := range shops {
		var products []models.Product
		err := s.db.Where("shop_id = ? AND is_active = ? AND stock <= reorder_level", shop.ID, true).
			Order("stock asc").Find(&products).Error
		if err != nil {
			zap.S().Errorf("low stock query failed for shop %s: %v", shop.Name, err)
			continue
		}
		if len(products) == 0 {
			continue
		}
		if shop.Owner == nil || shop.Owner.Email == "" || !shop.Owner.IsVerified {
			continue
		}

		subject := fmt.Sprintf("Low stock alert: %s", shop.Name)
		if err := s.deliver(models.NotificationLowStock, shop.Owner.Email, subject,
			lowStockBody(shop.Name, products), lowStockPayload(shop, products)); err != nil {
			zap.S().Errorf("low stock alert to %s failed: %v", shop.Owner.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendBackupResult emails the outcome of a backup run.
func (s *Service) SendBackupResult(email string, backup *models.Backup) error {
	kind := models.NotificationBackupSuccess
	subject := "Backup completed"
	body := fmt.Sprintf("Backup %s completed at %s (%d bytes).",
		backup.FileName, time.Now().Format(time.RFC1123), backup.FileSize)
	if backup.Status == models.BackupFailed {
		kind = models.NotificationBackupFailed
		subject = "Backup failed"
		body = fmt.Sprintf("Backup failed: %s", backup.ErrorMessage)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"backup_id": backup.ID,
		"file_name": backup.FileName,
		"status":    backup.Status,
		"automatic": backup.IsAutomatic,
	})
	return s.deliver(kind, email, subject, body, payload)
}

// SendTestEmail verifies the SMTP configuration.
func (s *Service) SendTestEmail(email string) error {
	return s.deliver(models.NotificationTest, email, "Test email",
		"SMTP configuration is working.", nil)
}

// Retry re-sends a previously failed notification.
func (s *Service) Retry(id uuid.UUID) error {
	var log models.NotificationLog
	if err := s.db.First(&log, "id = ?", id).Error; err != nil {
		return err
	}
	body := fmt.Sprintf("Retry of notification %s (%s).", log.ID, log.Subject)
	return s.deliver(log.Type, log.Recipient, log.Subject, body, []byte(log.Payload))
}

func (s *Service) deliver(kind, recipient, subject, body string, payload []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	sendErr := s.send(msg)

	log := models.NotificationLog{
		ID:        uuid.New(),
		Type:      kind,
		Recipient: recipient,
		Subject:   subject,
		Status:    models.NotificationSent,
		Payload:   datatypes.JSON(payload),
	}
	if sendErr != nil {
		log.Status = models.NotificationFailed
		log.ErrorMessage = sendErr.Error()
	}
	if err := s.db.Create(&log).Error; err != nil {
		zap.S().Errorf("failed to record notification log: %v", err)
	}
	return sendErr
}

func lowStockBody(shopName string, products []models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following products in %s are at or below their reorder level:\n\n", shopName)
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: stock %g (reorder level %g)\n", p.Name, p.Stock, p.ReorderLevel)
	}
	return b.String()
}

func lowStockPayload(shop models.Shop, products []models.Product) []byte {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"shop_id":  shop.ID,
		"shop":     shop.Name,
		"products": names,
	})
	return payload
}
