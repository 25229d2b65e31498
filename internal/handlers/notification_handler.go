package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
	alerts "retail-pos-backend/internal/services/alerts"
)

type NotificationHandler struct {
	db      *gorm.DB
	service *alerts.Service
}

func NewNotificationHandler(db *gorm.DB, service *alerts.Service) *NotificationHandler {
	return &NotificationHandler{db: db, service: service}
}

func (h *NotificationHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	limit := cast.ToInt(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var logs []models.NotificationLog
	if err := query.Limit(limit).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": logs})
}

func (h *NotificationHandler) Stats(c *gin.Context) {
	type row struct {
		Type   string
		Status string
		Count  int64
	}
	var rows []row
	err := h.db.Model(&models.NotificationLog{}).
		Select("type, status, COUNT(*) as count").
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}

	var total, sent, failed int64
	byType := map[string]int64{}
	for _, r := range rows {
		total += r.Count
		byType[r.Type] += r.Count
		switch r.Status {
		case models.NotificationSent:
			sent += r.Count
		case models.NotificationFailed:
			failed += r.Count
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"sent":    sent,
		"failed":  failed,
		"by_type": byType,
	})
}

// Retry re-sends a failed notification to its original recipient.
func (h *NotificationHandler) Retry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Retry(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification resent"})
}

type testEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *NotificationHandler) SendTest(c *gin.Context) {
	var req testEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SendTestEmail(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "test email failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test email sent"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.db.Delete(&models.NotificationLog{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

// ClearOld drops logs older than the given number of days, 30 by default.
func (h *NotificationHandler) ClearOld(c *gin.Context) {
	days := cast.ToInt(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	res := h.db.Where("created_at < ?", cutoff).Delete(&models.NotificationLog{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}
