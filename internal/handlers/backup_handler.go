package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	backup "retail-pos-backend/internal/services/backup"
)

type BackupHandler struct {
	service *backup.Service
}

func NewBackupHandler(service *backup.Service) *BackupHandler {
	return &BackupHandler{service: service}
}

func (h *BackupHandler) Create(c *gin.Context) {
	var shopID *uuid.UUID
	if s := c.Query("shop_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
			return
		}
		shopID = &id
	}

	record, err := h.service.Create(shopID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backup failed", "backup": record})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"backup": record})
}

func (h *BackupHandler) History(c *gin.Context) {
	backups, err := h.service.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list backups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": backups})
}

func (h *BackupHandler) Download(c *gin.Context) {
	path, err := h.service.FilePath(c.Param("fileName"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup file not found"})
		return
	}
	c.FileAttachment(path, c.Param("fileName"))
}

func (h *BackupHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete backup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup deleted"})
}

type restoreRequest struct {
	FileName string `json:"file_name" binding:"required"`
}

// Restore replaces all table contents with the backup's data.
func (h *BackupHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Restore(req.FileName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "restore failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "restore completed"})
}
