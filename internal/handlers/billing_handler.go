package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retail-pos-backend/internal/repository"
	billing "retail-pos-backend/internal/services/billing"
)

type BillingHandler struct {
	service *billing.Service
	bills   *repository.BillRepository
}

func NewBillingHandler(service *billing.Service, bills *repository.BillRepository) *BillingHandler {
	return &BillingHandler{service: service, bills: bills}
}

func (h *BillingHandler) CreateSale(c *gin.Context) {
	var in billing.CreateSaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.service.CreateSale(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

func (h *BillingHandler) CancelSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	bill, err := h.service.CancelSale(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	bill, err := h.bills.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

func (h *BillingHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	start := parseDate(c.Query("start_date"))
	end := parseDate(c.Query("end_date"))
	if end != nil {
		e := end.Add(24 * time.Hour)
		end = &e
	}

	bills, err := h.bills.SearchBills(shopID, c.Query("search"), c.Query("payment_mode"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bills"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
