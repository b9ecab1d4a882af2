package models

// Tables lists every persisted model in migration order.
var Tables = []interface{}{
	&User{},
	&Supplier{},
	&Product{},
	&Sale{},
	&SaleItem{},
	&Purchase{},
	&PurchaseItem{},
	&Expense{},
}
