package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/repository"
)

type ProductHandler struct {
	products *repository.ProductRepository
}

func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	ShopID       uuid.UUID  `json:"shop_id" binding:"required"`
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         string     `json:"name" binding:"required"`
	Sku          string     `json:"sku"`
	Barcode      string     `json:"barcode"`
	QuantityType string     `json:"quantity_type"`
	Stock        float64    `json:"stock"`
	ReorderLevel *float64   `json:"reorder_level"`
	CostPrice    float64    `json:"cost_price"`
	SellingPrice float64    `json:"selling_price"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ID:           uuid.New(),
		ShopID:       req.ShopID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Sku:          req.Sku,
		Barcode:      req.Barcode,
		QuantityType: req.QuantityType,
		Stock:        req.Stock,
		ReorderLevel: 10,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		IsActive:     true,
	}
	if req.QuantityType == "" {
		product.QuantityType = "COUNT"
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}

	if err := h.products.DB().Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *ProductHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	if q := c.Query("search"); q != "" {
		products, err := h.products.SearchProducts(shopID, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	var products []models.Product
	query := h.products.DB().Preload("Category").Where("shop_id = ?", shopID)
	if cat := c.Query("category_id"); cat != "" {
		query = query.Where("category_id = ?", cat)
	}
	if err := query.Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var req struct {
		CategoryID   *uuid.UUID `json:"category_id"`
		Name         *string    `json:"name"`
		Sku          *string    `json:"sku"`
		Barcode      *string    `json:"barcode"`
		QuantityType *string    `json:"quantity_type"`
		ReorderLevel *float64   `json:"reorder_level"`
		CostPrice    *float64   `json:"cost_price"`
		SellingPrice *float64   `json:"selling_price"`
		IsActive     *bool      `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Sku != nil {
		product.Sku = *req.Sku
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.QuantityType != nil {
		product.QuantityType = *req.QuantityType
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		product.SellingPrice = *req.SellingPrice
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.products.DB().Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete deactivates instead of removing when the product already appears
// on bills, so historical invoices keep their reference.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var billed int64
	h.products.DB().Model(&models.BillItem{}).Where("product_id = ?", id).Count(&billed)
	if billed > 0 {
		product.IsActive = false
		if err := h.products.DB().Save(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not deactivate product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deactivated", "product": product})
		return
	}

	err = h.products.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.StockMovement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CustomerPricing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) LowStock(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}
	products, err := h.products.LowStock(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list low stock products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
