package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retail-pos-backend/internal/scheduler"
	alerts "retail-pos-backend/internal/services/alerts"
)

// CronHandler exposes the scheduled jobs for manual triggering.
type CronHandler struct {
	scheduler *scheduler.Scheduler
	alerts    *alerts.Service
}

func NewCronHandler(sched *scheduler.Scheduler, alertSvc *alerts.Service) *CronHandler {
	return &CronHandler{scheduler: sched, alerts: alertSvc}
}

func (h *CronHandler) TriggerLowStockCheck(c *gin.Context) {
	var shopID *uuid.UUID
	if s := c.Query("shop_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
			return
		}
		shopID = &id
	}

	sent, err := h.alerts.CheckLowStock(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "low stock check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "low stock check completed", "alerts_sent": sent})
}

func (h *CronHandler) TriggerBackup(c *gin.Context) {
	h.scheduler.RunAutomaticBackup()
	c.JSON(http.StatusOK, gin.H{"message": "automatic backup triggered"})
}
