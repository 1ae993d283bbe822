package dto

// DashboardSummaryDTO resumen para el panel principal.
type DashboardSummaryDTO struct {
	TotalProducts    int                     `json:"total_products"`
	TotalSuppliers   int                     `json:"total_suppliers"`
	LowStockCount    int                     `json:"low_stock_count"`
	PendingTransfers int                     `json:"pending_transfers"`
	LowStockProducts []ProductResponse       `json:"low_stock_products"`
	RecentReceipts   []StockReceiptResponse  `json:"recent_receipts"`
	RecentTransfers  []StockTransferResponse `json:"recent_transfers"`
}
