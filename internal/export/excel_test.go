package export

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"retail-pos-backend/internal/models"
)

func TestInventoryWorkbook(t *testing.T) {
	products := []models.Product{
		{
			ID:           uuid.New(),
			Name:         "Sugar 1kg",
			Sku:          "SG-1",
			Category:     &models.Category{Name: "Groceries"},
			Stock:        3,
			ReorderLevel: 10,
			CostPrice:    38,
			SellingPrice: 45,
			IsActive:     true,
		},
		{
			ID:           uuid.New(),
			Name:         "Old Stock Item",
			Stock:        100,
			ReorderLevel: 5,
		},
	}

	f := InventoryWorkbook(products)

	if got := f.GetCellValue("Inventory", "A1"); got != "Product Name" {
		t.Errorf("A1 = %q", got)
	}
	if got := f.GetCellValue("Inventory", "A2"); got != "Sugar 1kg" {
		t.Errorf("A2 = %q", got)
	}
	if got := f.GetCellValue("Inventory", "B2"); got != "Groceries" {
		t.Errorf("B2 = %q", got)
	}
	if got := f.GetCellValue("Inventory", "C3"); got != "N/A" {
		t.Errorf("missing SKU rendered as %q, want N/A", got)
	}
	if got := f.GetCellValue("Inventory", "J3"); got != "Inactive" {
		t.Errorf("J3 = %q", got)
	}
	// Summary block: 2 products, 1 at or below reorder level.
	if got := f.GetCellValue("Inventory", "B5"); got != "2" {
		t.Errorf("total products = %q, want 2", got)
	}
	if got := f.GetCellValue("Inventory", "B6"); got != "1" {
		t.Errorf("low stock items = %q, want 1", got)
	}
}

func TestBillsWorkbookTotals(t *testing.T) {
	bills := []models.Bill{
		{
			BillNumber: "INV-AAAA-20260830-0001", CustomerName: "Walk-in Customer",
			PaymentMode: models.PaymentCash, Status: models.BillStatusPaid,
			SubTotal: 200, TaxAmount: 36, Cgst: 18, Sgst: 18,
			GrandTotal: 236, CreatedAt: time.Now(),
		},
		{
			BillNumber: "INV-AAAA-20260830-0002", CustomerName: "Asha",
			CustomerMobile: "9876543210", PaymentMode: models.PaymentUpi,
			Status: models.BillStatusPaid, SubTotal: 100, TaxAmount: 5,
			GrandTotal: 105, CreatedAt: time.Now(),
		},
	}

	f := BillsWorkbook(bills)

	if got := f.GetCellValue("Bills", "A2"); got != "INV-AAAA-20260830-0001" {
		t.Errorf("A2 = %q", got)
	}
	if got := f.GetCellValue("Bills", "D2"); got != "N/A" {
		t.Errorf("missing mobile rendered as %q", got)
	}
	if got := f.GetCellValue("Bills", "B5"); got != "2" {
		t.Errorf("total bills = %q, want 2", got)
	}
	if got := f.GetCellValue("Bills", "B6"); got != "341" {
		t.Errorf("total sales = %q, want 341", got)
	}
	if got := f.GetCellValue("Bills", "B7"); got != "41" {
		t.Errorf("total tax = %q, want 41", got)
	}
}

func TestSalesReportWorkbookSheets(t *testing.T) {
	report := SalesReport{
		ShopName:     "Main Branch",
		From:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		TotalBills:   12,
		TotalRevenue: 3540,
		TotalTax:     540,
		TotalProfit:  900,
		ProductSales: []ProductSale{
			{ProductName: "Sugar 1kg", QuantitySold: 24, Revenue: 1080, Profit: 240},
		},
	}

	f := SalesReportWorkbook(report)

	if got := f.GetCellValue("Summary", "B2"); got != "Main Branch" {
		t.Errorf("shop name = %q", got)
	}
	if got := f.GetCellValue("Summary", "B3"); got != "01-08-2026 to 30-08-2026" {
		t.Errorf("period = %q", got)
	}
	if got := f.GetCellValue("Summary", "B4"); got != "12" {
		t.Errorf("total bills = %q", got)
	}
	if got := f.GetCellValue("Product-wise Sales", "A2"); got != "Sugar 1kg" {
		t.Errorf("product row = %q", got)
	}
}

func TestSalesReportWorkbookOmitsEmptyProductSheet(t *testing.T) {
	f := SalesReportWorkbook(SalesReport{ShopName: "Empty Shop"})
	if got := f.GetCellValue("Product-wise Sales", "A1"); got != "" {
		t.Errorf("unexpected product sheet content %q", got)
	}
}

func TestAxis(t *testing.T) {
	cases := map[string]string{
		axis(0, 1):  "A1",
		axis(1, 2):  "B2",
		axis(25, 1): "Z1",
		axis(26, 3): "AA3",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("axis = %q, want %q", got, want)
		}
	}
}
