package reports

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/export"
	"retail-pos-backend/internal/models"
)

// Service aggregates billing and inventory figures for the dashboard and
// exported reports. Cancelled bills are excluded from revenue.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type DashboardStats struct {
	TodayBills     int64   `json:"today_bills"`
	TodayRevenue   float64 `json:"today_revenue"`
	MonthRevenue   float64 `json:"month_revenue"`
	TotalProducts  int64   `json:"total_products"`
	TotalCustomers int64   `json:"total_customers"`
	LowStockCount  int64   `json:"low_stock_count"`
}

func (s *Service) DashboardStats(shopID uuid.UUID) (*DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}

	paid := s.db.Model(&models.Bill{}).
		Where("shop_id = ? AND status = ?", shopID, models.BillStatusPaid).
		Session(&gorm.Session{})

	if err := paid.Where("created_at >= ?", dayStart).
		Count(&stats.TodayBills).Error; err != nil {
		return nil, err
	}
	if err := paid.Where("created_at >= ?", dayStart).
		Select("COALESCE(SUM(grand_total),0)").Scan(&stats.TodayRevenue).Error; err != nil {
		return nil, err
	}
	if err := paid.Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(grand_total),0)").Scan(&stats.MonthRevenue).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).
		Where("shop_id = ?", shopID).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Customer{}).
		Where("shop_id = ?", shopID).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND is_active = ? AND stock <= reorder_level", shopID, true).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

type QuickStats struct {
	TodayBills   int64   `json:"today_bills"`
	TodayRevenue float64 `json:"today_revenue"`
}

func (s *Service) QuickStats(shopID uuid.UUID) (*QuickStats, error) {
	full, err := s.DashboardStats(shopID)
	if err != nil {
		return nil, err
	}
	return &QuickStats{TodayBills: full.TodayBills, TodayRevenue: full.TodayRevenue}, nil
}

// SalesReport builds the figures behind the exported report workbook.
func (s *Service) SalesReport(shopID uuid.UUID, from, to time.Time) (*export.SalesReport, error) {
	var shop models.Shop
	if err := s.db.First(&shop, "id = ?", shopID).Error; err != nil {
		return nil, err
	}

	report := &export.SalesReport{ShopName: shop.Name, From: from, To: to}

	base := s.db.Model(&models.Bill{}).
		Where("shop_id = ? AND status = ? AND created_at >= ? AND created_at <= ?",
			shopID, models.BillStatusPaid, from, to).
		Session(&gorm.Session{})

	if err := base.Count(&report.TotalBills).Error; err != nil {
		return nil, err
	}
	if err := base.Select("COALESCE(SUM(grand_total),0)").
		Scan(&report.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := base.Select("COALESCE(SUM(tax_amount),0)").
		Scan(&report.TotalTax).Error; err != nil {
		return nil, err
	}

	type productRow struct {
		ProductName  string
		QuantitySold float64
		Revenue      float64
		Profit       float64
	}
	var rows []productRow
	err := s.db.Model(&models.BillItem{}).
		Select(`products.name AS product_name,
			COALESCE(SUM(bill_items.quantity),0) AS quantity_sold,
			COALESCE(SUM(bill_items.quantity * bill_items.price),0) AS revenue,
			COALESCE(SUM(bill_items.quantity * (bill_items.price - products.cost_price)),0) AS profit`).
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Joins("JOIN products ON products.id = bill_items.product_id").
		Where("bills.shop_id = ? AND bills.status = ? AND bills.created_at >= ? AND bills.created_at <= ?",
			shopID, models.BillStatusPaid, from, to).
		Group("products.name").
		Order("revenue desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		report.TotalProfit += row.Profit
		report.ProductSales = append(report.ProductSales, export.ProductSale{
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
			Profit:       row.Profit,
		})
	}
	return report, nil
}
