package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-pos-backend/internal/middleware"
	"retail-pos-backend/internal/models"
)

type PurchaseOrderHandler struct {
	db *gorm.DB
}

func NewPurchaseOrderHandler(db *gorm.DB) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{db: db}
}

type purchaseOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	UnitCost  float64   `json:"unit_cost"`
}

type purchaseOrderRequest struct {
	ShopID     uuid.UUID                  `json:"shop_id" binding:"required"`
	SupplierID uuid.UUID                  `json:"supplier_id" binding:"required"`
	Items      []purchaseOrderItemRequest `json:"items" binding:"required,min=1"`
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req purchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.PurchaseOrder
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, "id = ? AND shop_id = ?", req.SupplierID, req.ShopID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.PurchaseOrder{}).Where("shop_id = ?", req.ShopID).Count(&count).Error; err != nil {
			return err
		}

		order = models.PurchaseOrder{
			ID:          uuid.New(),
			ShopID:      req.ShopID,
			SupplierID:  req.SupplierID,
			OrderNumber: fmt.Sprintf("PO-%s-%04d", time.Now().UTC().Format("20060102"), count+1),
			Status:      models.PurchaseOrderPending,
		}
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ? AND shop_id = ?", item.ProductID, req.ShopID).Error; err != nil {
				return err
			}
			cost := item.UnitCost
			if cost == 0 {
				cost = product.CostPrice
			}
			order.Items = append(order.Items, models.PurchaseOrderItem{
				ID:              uuid.New(),
				PurchaseOrderID: order.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				UnitCost:        cost,
			})
			order.TotalAmount += item.Quantity * cost
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create purchase order: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchase_order": order})
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	query := h.db.Preload("Supplier").Preload("Items.Product").Where("shop_id = ?", shopID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list purchase orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_orders": orders})
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var order models.PurchaseOrder
	if err := h.db.Preload("Supplier").Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_order": order})
}

// Receive marks a pending order received and books an IN movement for
// every line, which bumps the products' stock.
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var order models.PurchaseOrder
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}
	if order.Status != models.PurchaseOrderPending {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending orders can be received"})
		return
	}

	userID := middleware.UserID(c)
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			movement := models.StockMovement{
				ID:              uuid.New(),
				ProductID:       item.ProductID,
				Type:            models.MovementIn,
				Quantity:        item.Quantity,
				ReferenceNumber: order.OrderNumber,
				Notes:           "purchase order received",
				CreatedBy:       userID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&order).Update("status", models.PurchaseOrderReceived).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not receive purchase order"})
		return
	}

	order.Status = models.PurchaseOrderReceived
	c.JSON(http.StatusOK, gin.H{"purchase_order": order})
}

func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var order models.PurchaseOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}
	if order.Status != models.PurchaseOrderPending {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending orders can be cancelled"})
		return
	}

	if err := h.db.Model(&order).Update("status", models.PurchaseOrderCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel purchase order"})
		return
	}
	order.Status = models.PurchaseOrderCancelled
	c.JSON(http.StatusOK, gin.H{"purchase_order": order})
}
