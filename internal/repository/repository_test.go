package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

func seedBill(t *testing.T, db *gorm.DB, shopID uuid.UUID, number, name, mode string) models.Bill {
	t.Helper()
	bill := models.Bill{
		ID:           uuid.New(),
		ShopID:       shopID,
		BillNumber:   number,
		CustomerName: name,
		PaymentMode:  mode,
		Status:       models.BillStatusPaid,
		GrandTotal:   100,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return bill
}

func TestSearchBillsFilters(t *testing.T) {
	db := newTestDB(t)
	shopID := uuid.New()
	seedBill(t, db, shopID, "INV-AAAA-20260830-0001", "Walk-in Customer", models.PaymentCash)
	seedBill(t, db, shopID, "INV-AAAA-20260830-0002", "Asha Traders", models.PaymentUpi)
	seedBill(t, db, uuid.New(), "INV-BBBB-20260830-0001", "Other Shop", models.PaymentCash)

	repo := NewBillRepository(db)

	all, err := repo.SearchBills(shopID, "", "", nil, nil)
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d bills, want 2", len(all))
	}

	byName, err := repo.SearchBills(shopID, "asha", "", nil, nil)
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(byName) != 1 || byName[0].CustomerName != "Asha Traders" {
		t.Errorf("name search returned %+v", byName)
	}

	// "mobile" is the frontend alias for UPI.
	byMode, err := repo.SearchBills(shopID, "", "mobile", nil, nil)
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(byMode) != 1 || byMode[0].PaymentMode != models.PaymentUpi {
		t.Errorf("mode search returned %+v", byMode)
	}

	future := time.Now().Add(time.Hour)
	none, err := repo.SearchBills(shopID, "", "", &future, nil)
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("date filter returned %d bills, want 0", len(none))
	}
}

func TestNormalizePaymentMode(t *testing.T) {
	cases := map[string]string{
		"cash":   models.PaymentCash,
		"other":  models.PaymentCash,
		"card":   models.PaymentNetBanking,
		"mobile": models.PaymentUpi,
		"upi":    models.PaymentUpi,
	}
	for in, want := range cases {
		if got := normalizePaymentMode(in); got != want {
			t.Errorf("normalizePaymentMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchProducts(t *testing.T) {
	db := newTestDB(t)
	shopID := uuid.New()
	for _, p := range []models.Product{
		{ID: uuid.New(), ShopID: shopID, Name: "Sugar 1kg", Sku: "SG-1", Barcode: "890123", IsActive: true},
		{ID: uuid.New(), ShopID: shopID, Name: "Brown Sugar", Sku: "SG-2", IsActive: true},
		{ID: uuid.New(), ShopID: shopID, Name: "Salt", Sku: "SL-1", IsActive: true},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatal(err)
		}
	}

	repo := NewProductRepository(db)

	byName, err := repo.SearchProducts(shopID, "sugar")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("name search returned %d, want 2", len(byName))
	}

	byBarcode, err := repo.SearchProducts(shopID, "890123")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(byBarcode) != 1 || byBarcode[0].Name != "Sugar 1kg" {
		t.Errorf("barcode search returned %+v", byBarcode)
	}
}

func TestLowStockExcludesInactive(t *testing.T) {
	db := newTestDB(t)
	shopID := uuid.New()
	for _, p := range []models.Product{
		{ID: uuid.New(), ShopID: shopID, Name: "Low Active", Stock: 2, ReorderLevel: 10, IsActive: true},
		{ID: uuid.New(), ShopID: shopID, Name: "Low Inactive", Stock: 2, ReorderLevel: 10, IsActive: false},
		{ID: uuid.New(), ShopID: shopID, Name: "Healthy", Stock: 50, ReorderLevel: 10, IsActive: true},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatal(err)
		}
	}

	products, err := NewProductRepository(db).LowStock(shopID)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Low Active" {
		t.Errorf("LowStock returned %+v", products)
	}
}
