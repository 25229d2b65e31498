package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
)

// Dump is the on-disk shape of a full-database backup.
type Dump struct {
	CreatedAt          time.Time                  `json:"created_at"`
	Users              []models.User              `json:"users"`
	Shops              []models.Shop              `json:"shops"`
	Categories         []models.Category          `json:"categories"`
	Products           []models.Product           `json:"products"`
	Customers          []models.Customer          `json:"customers"`
	CustomerPricings   []models.CustomerPricing   `json:"customer_pricings"`
	Bills              []models.Bill              `json:"bills"`
	BillItems          []models.BillItem          `json:"bill_items"`
	StockMovements     []models.StockMovement     `json:"stock_movements"`
	Suppliers          []models.Supplier          `json:"suppliers"`
	PurchaseOrders     []models.PurchaseOrder     `json:"purchase_orders"`
	PurchaseOrderItems []models.PurchaseOrderItem `json:"purchase_order_items"`
}

// Service writes JSON full-database dumps to the backup directory and
// tracks them through Backup rows.
type Service struct {
	db        *gorm.DB
	dir       string
	retention int
}

func NewService(db *gorm.DB, dir string, retention int) *Service {
	return &Service{db: db, dir: dir, retention: retention}
}

// Create produces a backup file and records its outcome. The Backup row
// is written even when the dump fails, carrying the error message.
func (s *Service) Create(shopID *uuid.UUID, automatic bool) (*models.Backup, error) {
	record := models.Backup{
		ID:          uuid.New(),
		ShopID:      shopID,
		Type:        models.BackupFullDatabase,
		IsAutomatic: automatic,
	}

	dump, err := s.collect()
	if err == nil {
		err = s.write(dump, &record)
	}

	now := time.Now()
	record.CompletedAt = &now
	if err != nil {
		record.Status = models.BackupFailed
		record.ErrorMessage = err.Error()
	} else {
		record.Status = models.BackupCompleted
	}

	if dbErr := s.db.Create(&record).Error; dbErr != nil {
		return nil, errors.Wrap(dbErr, "record backup")
	}
	if err != nil {
		return &record, err
	}

	if pruned, pruneErr := s.Prune(); pruneErr != nil {
		zap.S().Errorf("backup prune failed: %v", pruneErr)
	} else if pruned > 0 {
		zap.S().Infof("pruned %d old backups", pruned)
	}
	return &record, nil
}

func (s *Service) collect() (*Dump, error) {
	dump := &Dump{CreatedAt: time.Now().UTC()}
	steps := []struct {
		name string
		dest interface{}
	}{
		{"users", &dump.Users},
		{"shops", &dump.Shops},
		{"categories", &dump.Categories},
		{"products", &dump.Products},
		{"customers", &dump.Customers},
		{"customer pricings", &dump.CustomerPricings},
		{"bills", &dump.Bills},
		{"bill items", &dump.BillItems},
		{"stock movements", &dump.StockMovements},
		{"suppliers", &dump.Suppliers},
		{"purchase orders", &dump.PurchaseOrders},
		{"purchase order items", &dump.PurchaseOrderItems},
	}
	for _, step := range steps {
		if err := s.db.Find(step.dest).Error; err != nil {
			return nil, errors.Wrapf(err, "dump %s", step.name)
		}
	}
	return dump, nil
}

func (s *Service) write(dump *Dump, record *models.Backup) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "create backup dir")
	}

	prefix := "backup"
	if record.IsAutomatic {
		prefix = "auto-backup"
	}
	fileName := prefix + "-" + time.Now().UTC().Format("20060102-150405") + ".json"
	filePath := filepath.Join(s.dir, fileName)

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal dump")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return errors.Wrap(err, "write backup file")
	}

	record.FileName = fileName
	record.FilePath = filePath
	record.FileSize = int64(len(data))

	meta, _ := json.Marshal(map[string]int{
		"shops":    len(dump.Shops),
		"products": len(dump.Products),
		"bills":    len(dump.Bills),
	})
	record.Metadata = datatypes.JSON(meta)
	return nil
}

// History lists recorded backups, newest first.
func (s *Service) History() ([]models.Backup, error) {
	var backups []models.Backup
	err := s.db.Order("created_at desc").Find(&backups).Error
	return backups, err
}

// FilePath resolves a backup file name to its path under the backup
// directory, rejecting path traversal.
func (s *Service) FilePath(fileName string) (string, error) {
	if fileName != filepath.Base(fileName) {
		return "", errors.New("invalid file name")
	}
	path := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// Delete removes a backup row and its file.
func (s *Service) Delete(id uuid.UUID) error {
	var record models.Backup
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		return err
	}
	if record.FilePath != "" {
		if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
			zap.S().Warnf("failed to remove backup file %s: %v", record.FilePath, err)
		}
	}
	return s.db.Delete(&record).Error
}

// Restore replaces the database contents with the dump in the given
// file, table by table, inside one transaction.
func (s *Service) Restore(fileName string) error {
	path, err := s.FilePath(fileName)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read backup file")
	}
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return errors.Wrap(err, "parse backup file")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			rows  interface{}
			count int
		}{
			{&models.PurchaseOrderItem{}, &dump.PurchaseOrderItems, len(dump.PurchaseOrderItems)},
			{&models.PurchaseOrder{}, &dump.PurchaseOrders, len(dump.PurchaseOrders)},
			{&models.Supplier{}, &dump.Suppliers, len(dump.Suppliers)},
			{&models.StockMovement{}, &dump.StockMovements, len(dump.StockMovements)},
			{&models.BillItem{}, &dump.BillItems, len(dump.BillItems)},
			{&models.Bill{}, &dump.Bills, len(dump.Bills)},
			{&models.CustomerPricing{}, &dump.CustomerPricings, len(dump.CustomerPricings)},
			{&models.Customer{}, &dump.Customers, len(dump.Customers)},
			{&models.Product{}, &dump.Products, len(dump.Products)},
			{&models.Category{}, &dump.Categories, len(dump.Categories)},
			{&models.Shop{}, &dump.Shops, len(dump.Shops)},
			{&models.User{}, &dump.Users, len(dump.Users)},
		}
		for _, step := range steps {
			if err := tx.Where("1 = 1").Delete(step.model).Error; err != nil {
				return errors.Wrap(err, "clear table")
			}
		}
		// Re-insert parents before children.
		for i := len(steps) - 1; i >= 0; i-- {
			if steps[i].count == 0 {
				continue
			}
			if err := tx.Create(steps[i].rows).Error; err != nil {
				return errors.Wrap(err, "restore rows")
			}
		}
		return nil
	})
}

// Prune deletes the oldest completed backups beyond the retention count.
func (s *Service) Prune() (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	var old []models.Backup
	err := s.db.Where("status = ?", models.BackupCompleted).
		Order("created_at desc").Offset(s.retention).Find(&old).Error
	if err != nil {
		return 0, err
	}
	for _, record := range old {
		if err := s.Delete(record.ID); err != nil {
			return 0, err
		}
	}
	return len(old), nil
}
