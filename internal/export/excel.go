package export

import (
	"fmt"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"

	"retail-pos-backend/internal/models"
)

const headerStyle = `{"font":{"bold":true,"color":"#FFFFFF"},"fill":{"type":"pattern","pattern":1,"color":["#4472C4"]}}`

// InventoryWorkbook renders a shop's catalog with a trailing summary of
// total and low-stock product counts.
func InventoryWorkbook(products []models.Product) *excelize.File {
	f := excelize.NewFile()
	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Product Name", "Category", "SKU", "Barcode", "Quantity Type",
		"Current Stock", "Reorder Level", "Cost Price", "Selling Price", "Status",
	}
	writeHeader(f, sheet, headers)

	lowStock := 0
	for i, p := range products {
		row := i + 2
		category := "Uncategorized"
		if p.Category != nil {
			category = p.Category.Name
		}
		status := "Inactive"
		if p.IsActive {
			status = "Active"
		}
		if p.Stock <= p.ReorderLevel {
			lowStock++
		}
		setRow(f, sheet, row,
			p.Name, category, orNA(p.Sku), orNA(p.Barcode), p.QuantityType,
			p.Stock, p.ReorderLevel, p.CostPrice, p.SellingPrice, status)
	}

	summary := len(products) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary), "Total Products:")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary), len(products))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary+1), "Low Stock Items:")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary+1), lowStock)
	return f
}

// BillsWorkbook renders bills with a totals block at the bottom.
func BillsWorkbook(bills []models.Bill) *excelize.File {
	f := excelize.NewFile()
	sheet := "Bills"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Bill Number", "Date", "Customer Name", "Customer Mobile", "Payment Mode",
		"Sub Total", "CGST", "SGST", "IGST", "Total Tax", "Grand Total", "Status",
	}
	writeHeader(f, sheet, headers)

	var totalSales, totalTax float64
	for i, b := range bills {
		row := i + 2
		setRow(f, sheet, row,
			b.BillNumber, b.CreatedAt.Format("02-01-2006 15:04"),
			b.CustomerName, orNA(b.CustomerMobile), b.PaymentMode,
			b.SubTotal, b.Cgst, b.Sgst, b.Igst, b.TaxAmount, b.GrandTotal, b.Status)
		totalSales += b.GrandTotal
		totalTax += b.TaxAmount
	}

	summary := len(bills) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary), "Total Bills:")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary), len(bills))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary+1), "Total Sales:")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary+1), totalSales)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary+2), "Total Tax Collected:")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summary+2), totalTax)
	return f
}

// SalesReport aggregates billing figures for a shop and period.
type SalesReport struct {
	ShopName     string
	From, To     time.Time
	TotalBills   int64
	TotalRevenue float64
	TotalTax     float64
	TotalProfit  float64
	ProductSales []ProductSale
}

type ProductSale struct {
	ProductName  string
	QuantitySold float64
	Revenue      float64
	Profit       float64
}

// SalesReportWorkbook renders a summary sheet plus a product-wise sheet.
func SalesReportWorkbook(report SalesReport) *excelize.File {
	f := excelize.NewFile()
	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	writeHeader(f, summary, []string{"Metric", "Value"})
	period := fmt.Sprintf("%s to %s",
		report.From.Format("02-01-2006"), report.To.Format("02-01-2006"))
	rows := []struct {
		metric string
		value  interface{}
	}{
		{"Shop Name", report.ShopName},
		{"Report Period", period},
		{"Total Bills", report.TotalBills},
		{"Total Revenue", report.TotalRevenue},
		{"Total Tax Collected", report.TotalTax},
		{"Total Profit", report.TotalProfit},
	}
	for i, r := range rows {
		setRow(f, summary, i+2, r.metric, r.value)
	}

	if len(report.ProductSales) > 0 {
		sheet := "Product-wise Sales"
		f.NewSheet(sheet)
		writeHeader(f, sheet, []string{"Product Name", "Quantity Sold", "Revenue", "Profit"})
		for i, p := range report.ProductSales {
			setRow(f, sheet, i+2, p.ProductName, p.QuantitySold, p.Revenue, p.Profit)
		}
	}
	return f
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, axis(i, 1), h)
	}
	if style, err := f.NewStyle(headerStyle); err == nil {
		f.SetCellStyle(sheet, axis(0, 1), axis(len(headers)-1, 1), style)
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, axis(i, row), v)
	}
}

// axis converts a zero-based column index and one-based row to an A1
// reference. Column count here never exceeds two letters.
func axis(col, row int) string {
	name := ""
	col++
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return fmt.Sprintf("%s%d", name, row)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
