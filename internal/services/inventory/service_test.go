package inventory

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/services/billing"
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

func seedProduct(t *testing.T, db *gorm.DB, stock float64) models.Product {
	t.Helper()
	product := models.Product{
		ID:       uuid.New(),
		ShopID:   uuid.New(),
		Name:     "Atta 5kg",
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) float64 {
	t.Helper()
	var p models.Product
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Stock
}

func TestRecordMovementIn(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 10)

	movement, err := NewService(db).RecordMovement(MovementInput{
		ProductID:   product.ID,
		Type:        models.MovementIn,
		Quantity:    5,
		BatchNumber: "B-42",
	})
	if err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}
	if movement.Type != models.MovementIn {
		t.Errorf("type = %q", movement.Type)
	}
	if got := stockOf(t, db, product.ID); got != 15 {
		t.Errorf("stock = %g, want 15", got)
	}
}

func TestRecordMovementOutBelowZeroRejected(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 3)

	svc := NewService(db)
	if _, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementOut,
		Quantity:  2,
	}); err != nil {
		t.Fatalf("valid OUT: %v", err)
	}
	if got := stockOf(t, db, product.ID); got != 1 {
		t.Fatalf("stock = %g, want 1", got)
	}

	_, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementOut,
		Quantity:  5,
	})
	if _, ok := err.(*billing.InsufficientStockError); !ok {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if got := stockOf(t, db, product.ID); got != 1 {
		t.Errorf("stock changed to %g on rejected movement", got)
	}
	// The rejected movement must not have left a row behind.
	var count int64
	db.Model(&models.StockMovement{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 1 {
		t.Errorf("movement rows = %d, want 1", count)
	}
}

func TestRecordMovementAdjustmentSigned(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 10)

	svc := NewService(db)
	if _, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementAdjustment,
		Quantity:  -4,
		Notes:     "stocktake correction",
	}); err != nil {
		t.Fatalf("adjustment: %v", err)
	}
	if got := stockOf(t, db, product.ID); got != 6 {
		t.Errorf("stock = %g, want 6", got)
	}

	_, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementAdjustment,
		Quantity:  -20,
	})
	if _, ok := err.(*billing.ValidationError); !ok {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 10)
	svc := NewService(db)

	if _, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      "TRANSFER",
		Quantity:  1,
	}); err == nil {
		t.Error("invalid type accepted")
	}
	if _, err := svc.RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementIn,
		Quantity:  0,
	}); err == nil {
		t.Error("zero quantity accepted")
	}
	if _, err := svc.RecordMovement(MovementInput{
		ProductID: uuid.New(),
		Type:      models.MovementIn,
		Quantity:  1,
	}); err == nil {
		t.Error("unknown product accepted")
	}
}

// interleaveStockChange runs a stock decrement right after the movement
// row is inserted, landing between RecordMovement's product read and its
// stock write, as a sale committing mid-movement would.
func interleaveStockChange(t *testing.T, db *gorm.DB, productID uuid.UUID, qty float64) {
	t.Helper()
	err := db.Callback().Create().After("gorm:create").Register("interleaved_sale", func(tx *gorm.DB) {
		if tx.Statement.Table != "stock_movements" {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE products SET stock = stock - ? WHERE id = ?", qty, productID)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func TestRecordMovementDoesNotOverwriteConcurrentSale(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 10)
	interleaveStockChange(t, db, product.ID, 2)

	if _, err := NewService(db).RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementIn,
		Quantity:  5,
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	// 10, minus the interleaved sale's 2, plus the movement's 5. A
	// stale overwrite would land on 15 and lose the sale.
	if got := stockOf(t, db, product.ID); got != 13 {
		t.Errorf("stock = %g, want 13", got)
	}
}

func TestRecordMovementOutAppliesDeltaUnderConcurrentSale(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 10)
	interleaveStockChange(t, db, product.ID, 2)

	if _, err := NewService(db).RecordMovement(MovementInput{
		ProductID: product.ID,
		Type:      models.MovementOut,
		Quantity:  3,
	}); err != nil {
		t.Fatalf("RecordMovement: %v", err)
	}

	if got := stockOf(t, db, product.ID); got != 5 {
		t.Errorf("stock = %g, want 5", got)
	}
}

func TestListMovements(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 100)
	svc := NewService(db)

	for _, qty := range []float64{5, 10} {
		if _, err := svc.RecordMovement(MovementInput{
			ProductID: product.ID,
			Type:      models.MovementOut,
			Quantity:  qty,
		}); err != nil {
			t.Fatalf("movement: %v", err)
		}
	}

	movements, err := svc.ListMovements(product.ID)
	if err != nil {
		t.Fatalf("ListMovements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("got %d movements, want 2", len(movements))
	}
}
