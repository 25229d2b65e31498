package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-pos-backend/internal/middleware"
	inventory "retail-pos-backend/internal/services/inventory"
)

type StockHandler struct {
	service *inventory.Service
}

func NewStockHandler(service *inventory.Service) *StockHandler {
	return &StockHandler{service: service}
}

func (h *StockHandler) RecordMovement(c *gin.Context) {
	var in inventory.MovementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.CreatedBy = middleware.UserID(c)

	movement, err := h.service.RecordMovement(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movement": movement})
}

func (h *StockHandler) ListMovements(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	movements, err := h.service.ListMovements(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list movements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
