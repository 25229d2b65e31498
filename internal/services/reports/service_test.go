package reports

import (
	"path/filepath"
	"testing"
	"time"

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

func seedSaleData(t *testing.T, db *gorm.DB) (models.Shop, models.Product) {
	t.Helper()
	shop := models.Shop{ID: uuid.New(), OwnerID: uuid.New(), Name: "Main Branch"}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatal(err)
	}
	product := models.Product{
		ID: uuid.New(), ShopID: shop.ID, Name: "Sugar 1kg",
		Stock: 100, ReorderLevel: 10, CostPrice: 60, SellingPrice: 100, IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}
	return shop, product
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	shop, product := seedSaleData(t, db)

	sales := billing.NewService(db)
	bill, err := sales.CreateSale(billing.CreateSaleInput{
		ShopID: shop.ID,
		Items:  []billing.LineItem{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	// A cancelled bill must not count toward revenue.
	second, err := sales.CreateSale(billing.CreateSaleInput{
		ShopID: shop.ID,
		Items:  []billing.LineItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, err := sales.CancelSale(second.ID); err != nil {
		t.Fatalf("CancelSale: %v", err)
	}

	stats, err := NewService(db).DashboardStats(shop.ID)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TodayBills != 1 {
		t.Errorf("TodayBills = %d, want 1", stats.TodayBills)
	}
	if stats.TodayRevenue != bill.GrandTotal {
		t.Errorf("TodayRevenue = %g, want %g", stats.TodayRevenue, bill.GrandTotal)
	}
	if stats.MonthRevenue != bill.GrandTotal {
		t.Errorf("MonthRevenue = %g, want %g", stats.MonthRevenue, bill.GrandTotal)
	}
	if stats.TotalProducts != 1 {
		t.Errorf("TotalProducts = %d, want 1", stats.TotalProducts)
	}
	if stats.LowStockCount != 0 {
		t.Errorf("LowStockCount = %d, want 0", stats.LowStockCount)
	}
}

func TestSalesReportAggregation(t *testing.T) {
	db := newTestDB(t)
	shop, product := seedSaleData(t, db)

	sales := billing.NewService(db)
	for i := 0; i < 2; i++ {
		if _, err := sales.CreateSale(billing.CreateSaleInput{
			ShopID: shop.ID,
			Items:  []billing.LineItem{{ProductID: product.ID, Quantity: 3}},
		}); err != nil {
			t.Fatalf("CreateSale: %v", err)
		}
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	report, err := NewService(db).SalesReport(shop.ID, from, to)
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}

	if report.ShopName != "Main Branch" {
		t.Errorf("ShopName = %q", report.ShopName)
	}
	if report.TotalBills != 2 {
		t.Errorf("TotalBills = %d, want 2", report.TotalBills)
	}
	// 6 units at 100 with 18% GST.
	if report.TotalRevenue != 708 {
		t.Errorf("TotalRevenue = %g, want 708", report.TotalRevenue)
	}
	if report.TotalTax != 108 {
		t.Errorf("TotalTax = %g, want 108", report.TotalTax)
	}
	if len(report.ProductSales) != 1 {
		t.Fatalf("ProductSales = %d rows, want 1", len(report.ProductSales))
	}
	ps := report.ProductSales[0]
	if ps.ProductName != "Sugar 1kg" || ps.QuantitySold != 6 {
		t.Errorf("unexpected product row: %+v", ps)
	}
	// Profit: 6 units at (100 - 60).
	if ps.Profit != 240 || report.TotalProfit != 240 {
		t.Errorf("Profit = %g / total %g, want 240", ps.Profit, report.TotalProfit)
	}
}

func TestSalesReportEmptyPeriod(t *testing.T) {
	db := newTestDB(t)
	shop, _ := seedSaleData(t, db)

	from := time.Now().AddDate(0, 0, -60)
	to := time.Now().AddDate(0, 0, -30)
	report, err := NewService(db).SalesReport(shop.ID, from, to)
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}
	if report.TotalBills != 0 || report.TotalRevenue != 0 || len(report.ProductSales) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
