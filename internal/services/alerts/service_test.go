package alerts

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-pos-backend/internal/config"
	"retail-pos-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(db *gorm.DB) (*Service, *[]*gomail.Message) {
	svc := NewService(db, config.SMTPConfig{From: "alerts@example.com"})
	var sent []*gomail.Message
	svc.SetSender(func(m *gomail.Message) error {
		sent = append(sent, m)
		return nil
	})
	return svc, &sent
}

func seedShopWithOwner(t *testing.T, db *gorm.DB, verified bool) models.Shop {
	t.Helper()
	owner := models.User{
		ID:         uuid.New(),
		Name:       "Owner",
		Email:      "owner@example.com",
		Password:   "x",
		IsVerified: verified,
	}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	shop := models.Shop{ID: uuid.New(), OwnerID: owner.ID, Name: "Main Branch"}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

func TestCheckLowStockSendsAndLogs(t *testing.T) {
	db := newTestDB(t)
	shop := seedShopWithOwner(t, db, true)
	low := models.Product{
		ID: uuid.New(), ShopID: shop.ID, Name: "Matchbox",
		Stock: 2, ReorderLevel: 10, IsActive: true,
	}
	fine := models.Product{
		ID: uuid.New(), ShopID: shop.ID, Name: "Candles",
		Stock: 50, ReorderLevel: 10, IsActive: true,
	}
	if err := db.Create(&low).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&fine).Error; err != nil {
		t.Fatal(err)
	}

	svc, sent := newTestService(db)
	count, err := svc.CheckLowStock(nil)
	if err != nil {
		t.Fatalf("CheckLowStock: %v", err)
	}
	if count != 1 {
		t.Errorf("alerts sent = %d, want 1", count)
	}
	if len(*sent) != 1 {
		t.Fatalf("messages = %d, want 1", len(*sent))
	}

	var logs []models.NotificationLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Type != models.NotificationLowStock || logs[0].Status != models.NotificationSent {
		t.Errorf("unexpected log: %+v", logs)
	}
	if logs[0].Recipient != "owner@example.com" {
		t.Errorf("recipient = %q", logs[0].Recipient)
	}
}

func TestCheckLowStockSkipsUnverifiedOwner(t *testing.T) {
	db := newTestDB(t)
	shop := seedShopWithOwner(t, db, false)
	if err := db.Create(&models.Product{
		ID: uuid.New(), ShopID: shop.ID, Name: "Matchbox",
		Stock: 2, ReorderLevel: 10, IsActive: true,
	}).Error; err != nil {
		t.Fatal(err)
	}

	svc, sent := newTestService(db)
	count, err := svc.CheckLowStock(nil)
	if err != nil {
		t.Fatalf("CheckLowStock: %v", err)
	}
	if count != 0 || len(*sent) != 0 {
		t.Errorf("sent %d alerts to an unverified owner", count)
	}
}

func TestDeliveryFailureIsLogged(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, config.SMTPConfig{From: "alerts@example.com"})
	svc.SetSender(func(*gomail.Message) error {
		return errors.New("connection refused")
	})

	if err := svc.SendTestEmail("someone@example.com"); err == nil {
		t.Fatal("expected send error")
	}

	var log models.NotificationLog
	if err := db.First(&log).Error; err != nil {
		t.Fatalf("no log row: %v", err)
	}
	if log.Status != models.NotificationFailed {
		t.Errorf("status = %q, want %q", log.Status, models.NotificationFailed)
	}
	if log.ErrorMessage == "" {
		t.Error("error message empty")
	}
}

func TestSendBackupResultVariants(t *testing.T) {
	db := newTestDB(t)
	svc, sent := newTestService(db)

	ok := &models.Backup{ID: uuid.New(), FileName: "backup-1.json", Status: models.BackupCompleted}
	if err := svc.SendBackupResult("owner@example.com", ok); err != nil {
		t.Fatalf("success variant: %v", err)
	}
	failed := &models.Backup{ID: uuid.New(), Status: models.BackupFailed, ErrorMessage: "disk full"}
	if err := svc.SendBackupResult("owner@example.com", failed); err != nil {
		t.Fatalf("failure variant: %v", err)
	}
	if len(*sent) != 2 {
		t.Fatalf("messages = %d, want 2", len(*sent))
	}

	var kinds []string
	db.Model(&models.NotificationLog{}).Order("created_at").Pluck("type", &kinds)
	want := map[string]bool{
		models.NotificationBackupSuccess: false,
		models.NotificationBackupFailed:  false,
	}
	for _, k := range kinds {
		want[k] = true
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("no log of type %s", k)
		}
	}
}
