package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"retail-pos-backend/internal/config"
	handler "retail-pos-backend/internal/handlers"
	"retail-pos-backend/internal/middleware"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/scheduler"
	alerts "retail-pos-backend/internal/services/alerts"
	backup "retail-pos-backend/internal/services/backup"
	billing "retail-pos-backend/internal/services/billing"
	inventory "retail-pos-backend/internal/services/inventory"
	reports "retail-pos-backend/internal/services/reports"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, sched *scheduler.Scheduler, alertSvc *alerts.Service, backupSvc *backup.Service) {
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)

	billingSvc := billing.NewService(db)
	inventorySvc := inventory.NewService(db)
	reportsSvc := reports.NewService(db)

	authHandler := handler.NewAuthHandler(db, cfg)
	shopHandler := handler.NewShopHandler(db)
	categoryHandler := handler.NewCategoryHandler(db)
	productHandler := handler.NewProductHandler(productRepo)
	stockHandler := handler.NewStockHandler(inventorySvc)
	billingHandler := handler.NewBillingHandler(billingSvc, billRepo)
	customerHandler := handler.NewCustomerHandler(db, billRepo)
	supplierHandler := handler.NewSupplierHandler(db)
	orderHandler := handler.NewPurchaseOrderHandler(db)
	dashboardHandler := handler.NewDashboardHandler(reportsSvc)
	backupHandler := handler.NewBackupHandler(backupSvc)
	exportHandler := handler.NewExportHandler(productRepo, billRepo, reportsSvc)
	notificationHandler := handler.NewNotificationHandler(db, alertSvc)
	cronHandler := handler.NewCronHandler(sched, alertSvc)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Authenticate(cfg.JWTSecret))

	protected.GET("/auth/me", authHandler.Me)

	shops := protected.Group("/shops")
	shops.POST("", shopHandler.Create)
	shops.GET("", shopHandler.List)
	shops.GET("/:id", shopHandler.Get)
	shops.PUT("/:id", shopHandler.Update)
	shops.DELETE("/:id", shopHandler.Delete)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	products := protected.Group("/products")
	products.POST("", productHandler.Create)
	products.GET("", productHandler.List)
	products.GET("/low-stock", productHandler.LowStock)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	inventoryGroup := protected.Group("/inventory")
	inventoryGroup.POST("/movements", stockHandler.RecordMovement)
	inventoryGroup.GET("/movements/:productId", stockHandler.ListMovements)

	bills := protected.Group("/bills")
	bills.POST("", billingHandler.CreateSale)
	bills.GET("", billingHandler.List)
	bills.GET("/:id", billingHandler.Get)
	bills.POST("/:id/cancel", billingHandler.CancelSale)

	customers := protected.Group("/customers")
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.GET("/:id/history", customerHandler.PurchaseHistory)
	customers.GET("/:id/pricing", customerHandler.ListPricing)
	customers.POST("/:id/pricing", customerHandler.SetPricing)
	customers.DELETE("/:id/pricing/:productId", customerHandler.DeletePricing)

	suppliers := protected.Group("/suppliers")
	suppliers.POST("", supplierHandler.Create)
	suppliers.GET("", supplierHandler.List)
	suppliers.PUT("/:id", supplierHandler.Update)
	suppliers.DELETE("/:id", supplierHandler.Delete)

	orders := protected.Group("/purchase-orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/receive", orderHandler.Receive)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/stats", dashboardHandler.Stats)
	dashboard.GET("/quick-stats", dashboardHandler.QuickStats)
	dashboard.GET("/sales-report", dashboardHandler.SalesReport)

	exports := protected.Group("/exports")
	exports.GET("/inventory", exportHandler.Inventory)
	exports.GET("/bills", exportHandler.Bills)
	exports.GET("/sales-report", exportHandler.SalesReport)

	backups := protected.Group("/backups")
	backups.POST("", backupHandler.Create)
	backups.GET("", backupHandler.History)
	backups.GET("/download/:fileName", backupHandler.Download)
	backups.DELETE("/:id", backupHandler.Delete)
	backups.POST("/restore", backupHandler.Restore)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.GET("/stats", notificationHandler.Stats)
	notifications.POST("/:id/retry", notificationHandler.Retry)
	notifications.POST("/test-email", notificationHandler.SendTest)
	notifications.DELETE("/clear", notificationHandler.ClearOld)
	notifications.DELETE("/:id", notificationHandler.Delete)

	cron := protected.Group("/cron")
	cron.POST("/low-stock-check", cronHandler.TriggerLowStockCheck)
	cron.POST("/backup", cronHandler.TriggerBackup)
}
