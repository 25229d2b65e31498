package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reports "retail-pos-backend/internal/services/reports"
)

type DashboardHandler struct {
	service *reports.Service
}

func NewDashboardHandler(service *reports.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	stats, err := h.service.DashboardStats(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *DashboardHandler) QuickStats(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	stats, err := h.service.QuickStats(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *DashboardHandler) SalesReport(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	from, to := reportRange(c)
	report, err := h.service.SalesReport(shopID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// reportRange reads start_date/end_date query params, defaulting to the
// last 30 days. The end date is inclusive.
func reportRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := parseDate(c.Query("start_date")); s != nil {
		from = *s
	}
	if e := parseDate(c.Query("end_date")); e != nil {
		to = e.Add(24 * time.Hour)
	}
	return from, to
}
