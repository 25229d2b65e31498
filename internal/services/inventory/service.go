package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/services/billing"
)

// Service records stock movements and keeps the product stock figure in
// step with them, inside one transaction per movement.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type MovementInput struct {
	ProductID       uuid.UUID  `json:"product_id"`
	Type            string     `json:"type"`
	Quantity        float64    `json:"quantity"`
	BatchNumber     string     `json:"batch_number"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	ReferenceNumber string     `json:"reference_number"`
	Notes           string     `json:"notes"`
	CreatedBy       uuid.UUID  `json:"-"`
}

// RecordMovement writes the movement row and applies it to the product's
// stock. OUT movements fail when they would drive stock negative;
// ADJUSTMENT applies the signed quantity directly.
func (s *Service) RecordMovement(in MovementInput) (*models.StockMovement, error) {
	if in.Type != models.MovementIn && in.Type != models.MovementOut && in.Type != models.MovementAdjustment {
		return nil, &billing.ValidationError{Reason: "invalid movement type"}
	}
	if in.Quantity == 0 {
		return nil, &billing.ValidationError{Reason: "quantity must be non-zero"}
	}

	var movement models.StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &billing.NotFoundError{Entity: "product", ID: in.ProductID.String()}
			}
			return errors.Wrap(err, "load product")
		}

		delta := in.Quantity
		switch in.Type {
		case models.MovementIn:
			if in.Quantity < 0 {
				return &billing.ValidationError{Reason: "IN movement requires a positive quantity"}
			}
		case models.MovementOut:
			if in.Quantity < 0 {
				return &billing.ValidationError{Reason: "OUT movement requires a positive quantity"}
			}
			delta = -in.Quantity
			if product.Stock < in.Quantity {
				return &billing.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   in.Quantity,
				}
			}
		case models.MovementAdjustment:
			if product.Stock+delta < 0 {
				return &billing.ValidationError{Reason: "adjustment would drive stock negative"}
			}
		}

		movement = models.StockMovement{
			ID:              uuid.New(),
			ProductID:       in.ProductID,
			Type:            in.Type,
			Quantity:        in.Quantity,
			BatchNumber:     in.BatchNumber,
			ExpiryDate:      in.ExpiryDate,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			CreatedBy:       in.CreatedBy,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return errors.Wrap(err, "create movement")
		}

		// Applied as a delta, never an overwrite: a concurrent sale
		// committing between our read and this write must not be lost.
		// Negative deltas re-check the floor in the condition.
		if delta >= 0 {
			return tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock + ?", delta)).Error
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, -delta).
			Update("stock", gorm.Expr("stock - ?", -delta))
		if res.Error != nil {
			return errors.Wrap(res.Error, "apply movement")
		}
		if res.RowsAffected == 0 {
			if in.Type == models.MovementOut {
				return &billing.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   in.Quantity,
				}
			}
			return &billing.ValidationError{Reason: "adjustment would drive stock negative"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

// ListMovements returns a product's movement history, newest first.
func (s *Service) ListMovements(productID uuid.UUID) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := s.db.Where("product_id = ?", productID).
		Order("created_at desc").Find(&movements).Error
	return movements, err
}
