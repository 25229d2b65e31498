package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) DB() *gorm.DB {
	return r.db
}

func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts filters a shop's catalog by name, SKU or barcode.
func (r *ProductRepository) SearchProducts(shopID uuid.UUID, query string) ([]models.Product, error) {
	dbQuery := r.db.Model(&models.Product{}).Where("shop_id = ?", shopID)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR barcode = ?",
			like, like, query)
	}

	var products []models.Product
	err := dbQuery.Preload("Category").Order("name asc").Find(&products).Error
	return products, err
}

// LowStock lists active products at or below their reorder level.
func (r *ProductRepository) LowStock(shopID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("shop_id = ? AND is_active = ? AND stock <= reorder_level", shopID, true).
		Preload("Category").Order("stock asc").Find(&products).Error
	return products, err
}
