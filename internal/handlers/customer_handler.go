package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/repository"
)

type CustomerHandler struct {
	db    *gorm.DB
	bills *repository.BillRepository
}

func NewCustomerHandler(db *gorm.DB, bills *repository.BillRepository) *CustomerHandler {
	return &CustomerHandler{db: db, bills: bills}
}

type customerRequest struct {
	ShopID             uuid.UUID `json:"shop_id" binding:"required"`
	Name               string    `json:"name" binding:"required"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	DiscountPercentage float64   `json:"discount_percentage"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		ID:                 uuid.New(),
		ShopID:             req.ShopID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		DiscountPercentage: req.DiscountPercentage,
	}
	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *CustomerHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	query := h.db.Where("shop_id = ?", shopID)
	if q := c.Query("search"); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := query.Order("name").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	var req struct {
		Name               *string  `json:"name"`
		Email              *string  `json:"email"`
		Phone              *string  `json:"phone"`
		Address            *string  `json:"address"`
		DiscountPercentage *float64 `json:"discount_percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.DiscountPercentage != nil {
		customer.DiscountPercentage = *req.DiscountPercentage
	}

	if err := h.db.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerPricing{}).Error; err != nil {
			return err
		}
		// Bills keep the denormalized name; only the link is cleared.
		if err := tx.Model(&models.Bill{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, "id = ?", id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

// PurchaseHistory lists the customer's bills, newest first.
func (h *CustomerHandler) PurchaseHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bills, err := h.bills.ListByCustomer(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load purchase history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

type pricingRequest struct {
	ProductID          uuid.UUID `json:"product_id" binding:"required"`
	CustomPrice        float64   `json:"custom_price"`
	DiscountPercentage float64   `json:"discount_percentage"`
}

// SetPricing upserts the customer's override for one product.
func (h *CustomerHandler) SetPricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pricing := models.CustomerPricing{
		ID:                 uuid.New(),
		CustomerID:         id,
		ProductID:          req.ProductID,
		CustomPrice:        req.CustomPrice,
		DiscountPercentage: req.DiscountPercentage,
	}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"custom_price", "discount_percentage", "updated_at"}),
	}).Create(&pricing).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save pricing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

func (h *CustomerHandler) ListPricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var pricing []models.CustomerPricing
	if err := h.db.Preload("Product").Where("customer_id = ?", id).Find(&pricing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list pricing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

func (h *CustomerHandler) DeletePricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.db.Where("customer_id = ? AND product_id = ?", id, productID).
		Delete(&models.CustomerPricing{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete pricing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pricing removed"})
}
