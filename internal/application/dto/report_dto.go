package dto

import "time"

// ReportSummary métricas agregadas del periodo.
type ReportSummary struct {
	TotalProducts    int `json:"total_products"`
	TotalReceived    int `json:"total_received"`
	TotalTransferred int `json:"total_transferred"` // solo transferencias completadas
	LowStockItems    int `json:"low_stock_items"`
	ActiveSuppliers  int `json:"active_suppliers"`
}

// ReportData instantánea de reporte: resumen + libros filtrados por periodo
// y categoría. Es una vista de solo lectura sobre el snapshot del Store.
type ReportData struct {
	Period           string                  `json:"period"`
	Category         string                  `json:"category,omitempty"`
	GeneratedAt      time.Time               `json:"generated_at"`
	From             time.Time               `json:"from"`
	Summary          ReportSummary           `json:"summary"`
	Receipts         []StockReceiptResponse  `json:"receipts"`
	Transfers        []StockTransferResponse `json:"transfers"`
	LowStockProducts []ProductResponse       `json:"low_stock_products"`
}
