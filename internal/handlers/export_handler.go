package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"retail-pos-backend/internal/export"
	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/repository"
	reports "retail-pos-backend/internal/services/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	products *repository.ProductRepository
	bills    *repository.BillRepository
	reports  *reports.Service
}

func NewExportHandler(products *repository.ProductRepository, bills *repository.BillRepository, reportsSvc *reports.Service) *ExportHandler {
	return &ExportHandler{products: products, bills: bills, reports: reportsSvc}
}

func (h *ExportHandler) Inventory(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	var products []models.Product
	if err := h.products.DB().Preload("Category").
		Where("shop_id = ?", shopID).Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load inventory"})
		return
	}

	h.stream(c, "inventory", export.InventoryWorkbook(products))
}

func (h *ExportHandler) Bills(c *gin.Context) {
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

	bills, err := h.bills.SearchBills(shopID, "", "", start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load bills"})
		return
	}

	h.stream(c, "bills", export.BillsWorkbook(bills))
}

func (h *ExportHandler) SalesReport(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id query parameter required"})
		return
	}

	from, to := reportRange(c)
	report, err := h.reports.SalesReport(shopID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}

	h.stream(c, "sales-report", export.SalesReportWorkbook(*report))
}

func (h *ExportHandler) stream(c *gin.Context, name string, file *excelize.File) {
	fileName := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		zap.S().Errorw("excel export failed", "name", name, "error", err)
	}
}
