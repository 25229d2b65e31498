package models

// Tables lists every entity handed to AutoMigrate, in dependency order.
var Tables = []interface{}{
	&User{},
	&Shop{},
	&Category{},
	&Product{},
	&Customer{},
	&CustomerPricing{},
	&Bill{},
	&BillItem{},
	&StockMovement{},
	&Supplier{},
	&PurchaseOrder{},
	&PurchaseOrderItem{},
	&Backup{},
	&NotificationLog{},
}
