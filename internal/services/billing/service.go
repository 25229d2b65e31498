package billing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
)

const defaultTaxRatePercent = 18

// Service runs the sale ledger transaction: it turns a cart into a
// persisted bill while atomically adjusting product stock. All
// correctness under concurrency is delegated to the store transaction;
// no in-process locks are taken.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type LineItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       float64   `json:"quantity"`
	Price          *float64  `json:"price"`
	TaxRatePercent *float64  `json:"tax_rate_percent"`
}

type CreateSaleInput struct {
	ShopID         uuid.UUID  `json:"shop_id"`
	CustomerID     *uuid.UUID `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerMobile string     `json:"customer_mobile"`
	PaymentMode    string     `json:"payment_mode"`
	Items          []LineItem `json:"items"`
}

// CreateSale validates each cart line against the catalog, decrements
// stock, computes GST totals and persists the bill with its items as one
// atomic unit. Any failure rolls back every effect, including stock
// decrements from earlier lines of the same call.
func (s *Service) CreateSale(in CreateSaleInput) (*models.Bill, error) {
	if len(in.Items) == 0 {
		return nil, &ValidationError{Reason: "cart must contain at least one item"}
	}

	var bill models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var shop models.Shop
		if err := tx.First(&shop, "id = ?", in.ShopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "shop", ID: in.ShopID.String()}
			}
			return errors.Wrap(err, "load shop")
		}

		if in.CustomerID != nil {
			var customer models.Customer
			err := tx.First(&customer, "id = ? AND shop_id = ?", *in.CustomerID, in.ShopID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &InvalidReferenceError{CustomerID: in.CustomerID.String()}
				}
				return errors.Wrap(err, "load customer")
			}
		}

		var subTotal, totalTax, totalCgst, totalSgst, totalIgst, grandTotal float64
		var items []models.BillItem

		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "product", ID: line.ProductID.String()}
				}
				return errors.Wrap(err, "load product")
			}

			qty := line.Quantity
			if qty <= 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
				return &ValidationError{Reason: fmt.Sprintf("invalid quantity for product %s", product.Name)}
			}

			if product.Stock < qty {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   qty,
				}
			}

			// Guarded decrement: the condition re-checks stock so a
			// concurrent sale losing the race cannot drive it negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, qty).
				Update("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				return errors.Wrap(res.Error, "decrement stock")
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   qty,
				}
			}

			price := product.SellingPrice
			if line.Price != nil {
				price = *line.Price
			}
			taxRate := float64(defaultTaxRatePercent) / 100
			if line.TaxRatePercent != nil {
				taxRate = *line.TaxRatePercent / 100
			}

			lineBase := price * qty
			lineTax := lineBase * taxRate
			cgst := lineTax / 2
			sgst := lineTax / 2
			igst := 0.0 // domestic-only tax model

			subTotal += lineBase
			totalTax += lineTax
			totalCgst += cgst
			totalSgst += sgst
			totalIgst += igst
			grandTotal += lineBase + lineTax

			items = append(items, models.BillItem{
				ID:        uuid.New(),
				ProductID: product.ID,
				Quantity:  qty,
				Price:     price,
				TaxAmount: lineTax,
			})
		}

		billNumber, err := s.nextBillNumber(tx, in.ShopID)
		if err != nil {
			return err
		}

		customerName := in.CustomerName
		if customerName == "" {
			customerName = "Walk-in Customer"
		}
		paymentMode := in.PaymentMode
		if paymentMode == "" {
			paymentMode = models.PaymentCash
		}

		bill = models.Bill{
			ID:             uuid.New(),
			ShopID:         in.ShopID,
			BillNumber:     billNumber,
			CustomerID:     in.CustomerID,
			CustomerName:   customerName,
			CustomerMobile: in.CustomerMobile,
			PaymentMode:    paymentMode,
			Status:         models.BillStatusPaid,
			SubTotal:       subTotal,
			TaxAmount:      totalTax,
			Cgst:           totalCgst,
			Sgst:           totalSgst,
			Igst:           totalIgst,
			GrandTotal:     grandTotal,
			Items:          items,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return errors.Wrap(err, "create bill")
		}

		return tx.Preload("Items.Product").Preload("Customer").
			First(&bill, "id = ?", bill.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// CancelSale reverses a paid bill: each line's quantity is returned to
// its product's stock and the bill flips to CANCELLED. Line items are
// never rewritten. Cancelling twice is rejected, not silently ignored.
func (s *Service) CancelSale(billID uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bill, "id = ?", billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "bill", ID: billID.String()}
			}
			return errors.Wrap(err, "load bill")
		}

		if bill.Status == models.BillStatusCancelled {
			return &InvalidStateError{Reason: "bill already cancelled"}
		}

		for _, item := range bill.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity))
			if res.Error != nil {
				return errors.Wrap(res.Error, "restore stock")
			}
		}

		if err := tx.Model(&models.Bill{}).
			Where("id = ?", bill.ID).
			Update("status", models.BillStatusCancelled).Error; err != nil {
			return errors.Wrap(err, "update bill status")
		}

		return tx.Preload("Items.Product").Preload("Customer").
			First(&bill, "id = ?", bill.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// nextBillNumber derives INV-{shop suffix}-{UTC date}-{seq}. The per-day
// count is read inside the caller's transaction so the insert and the
// count share one snapshot; the unique index on bill_number turns a true
// concurrent collision into a constraint error instead of a duplicate.
func (s *Service) nextBillNumber(tx *gorm.DB, shopID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := tx.Model(&models.Bill{}).
		Where("shop_id = ? AND created_at >= ?", shopID, dayStart).
		Count(&count).Error
	if err != nil {
		return "", errors.Wrap(err, "count bills")
	}

	return fmt.Sprintf("INV-%s-%s-%04d",
		shopSuffix(shopID), now.Format("20060102"), count+1), nil
}

func shopSuffix(shopID uuid.UUID) string {
	id := shopID.String()
	if len(id) < 4 {
		return "SHOP"
	}
	return strings.ToUpper(id[len(id)-4:])
}
