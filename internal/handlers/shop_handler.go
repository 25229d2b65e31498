package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/middleware"
	"retail-pos-backend/internal/models"
)

type ShopHandler struct {
	db *gorm.DB
}

func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

type shopRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
	Gstin   string `json:"gstin"`
}

// ownedShop loads the shop and verifies it belongs to the caller.
func (h *ShopHandler) ownedShop(c *gin.Context, shopID uuid.UUID) (*models.Shop, bool) {
	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return nil, false
	}
	if shop.OwnerID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return nil, false
	}
	return &shop, true
}

func (h *ShopHandler) Create(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop := models.Shop{
		ID:      uuid.New(),
		OwnerID: middleware.UserID(c),
		Name:    req.Name,
		Address: req.Address,
		Mobile:  req.Mobile,
		Gstin:   req.Gstin,
	}
	if err := h.db.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create shop"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shop": shop})
}

func (h *ShopHandler) List(c *gin.Context) {
	var shops []models.Shop
	if err := h.db.Where("owner_id = ?", middleware.UserID(c)).Order("created_at").Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list shops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shop, ok := h.ownedShop(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shop, ok := h.ownedShop(c, id)
	if !ok {
		return
	}

	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop.Name = req.Name
	shop.Address = req.Address
	shop.Mobile = req.Mobile
	shop.Gstin = req.Gstin
	if err := h.db.Save(shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update shop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// Delete removes the shop and everything hanging off it in one
// transaction: bills, movements, purchase orders, catalog, customers.
func (h *ShopHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shop, ok := h.ownedShop(c, id)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id IN (?)", tx.Model(&models.Bill{}).Select("id").Where("shop_id = ?", shop.ID)).
			Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Bill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_order_id IN (?)", tx.Model(&models.PurchaseOrder{}).Select("id").Where("shop_id = ?", shop.ID)).
			Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.PurchaseOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Supplier{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id IN (?)", tx.Model(&models.Product{}).Select("id").Where("shop_id = ?", shop.ID)).
			Delete(&models.StockMovement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id IN (?)", tx.Model(&models.Customer{}).Select("id").Where("shop_id = ?", shop.ID)).
			Delete(&models.CustomerPricing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(shop).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete shop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shop deleted"})
}
