package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Expose DB if needed
func (r *BillRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single bill with its lines and product references.
func (r *BillRepository) GetByID(id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items.Product").Preload("Customer").
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// SearchBills lists a shop's most recent bills with optional filters.
func (r *BillRepository) SearchBills(shopID uuid.UUID, search, paymentMode string, startDate, endDate *time.Time) ([]models.Bill, error) {
	query := r.db.Model(&models.Bill{}).Where("shop_id = ?", shopID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(bill_number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_mobile LIKE ?",
			like, like, "%"+search+"%")
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}
	if paymentMode != "" && !strings.EqualFold(paymentMode, "all") {
		query = query.Where("payment_mode = ?", normalizePaymentMode(paymentMode))
	}

	var bills []models.Bill
	err := query.Preload("Items.Product").
		Order("created_at desc").Limit(50).Find(&bills).Error
	return bills, err
}

// ListByCustomer returns the purchase history for one customer.
func (r *BillRepository) ListByCustomer(customerID uuid.UUID) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Items.Product").
		Order("created_at desc").Find(&bills).Error
	return bills, err
}

// CountForShop returns the all-time bill count for a shop.
func (r *BillRepository) CountForShop(shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bill{}).Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}

// normalizePaymentMode maps the frontend's filter aliases onto the
// stored enum values.
func normalizePaymentMode(mode string) string {
	switch strings.ToLower(mode) {
	case "cash", "other":
		return models.PaymentCash
	case "card":
		return models.PaymentNetBanking
	case "mobile":
		return models.PaymentUpi
	default:
		return strings.ToUpper(mode)
	}
}
