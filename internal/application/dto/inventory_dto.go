package dto

import (
	"time"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// CreateStockReceiptRequest body para POST /api/receipts.
// Date en formato "2006-01-02"; vacío equivale a hoy. SupplierName puede
// omitirse si se envía SupplierID (se denormaliza el nombre actual).
type CreateStockReceiptRequest struct {
	SupplierID   string `json:"supplier_id,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Date         string `json:"date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// StockReceiptResponse representación HTTP de una recepción.
type StockReceiptResponse struct {
	ID           string    `json:"id"`
	SupplierID   string    `json:"supplier_id,omitempty"`
	SupplierName string    `json:"supplier_name"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes,omitempty"`
	ReceivedBy   string    `json:"received_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewStockReceiptResponse convierte la entidad a su representación HTTP.
func NewStockReceiptResponse(r *entity.StockReceipt) StockReceiptResponse {
	return StockReceiptResponse{
		ID:           r.ID,
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		Date:         r.Date,
		Notes:        r.Notes,
		ReceivedBy:   r.ReceivedBy,
		CreatedAt:    r.CreatedAt,
	}
}

// NewStockReceiptListResponse mapea un slice de entidades.
func NewStockReceiptListResponse(list []entity.StockReceipt) []StockReceiptResponse {
	items := make([]StockReceiptResponse, 0, len(list))
	for i := range list {
		items = append(items, NewStockReceiptResponse(&list[i]))
	}
	return items
}

// CreateStockTransferRequest body para POST /api/transfers.
// Status vacío equivale a "pending".
type CreateStockTransferRequest struct {
	ReceiverName string `json:"receiver_name"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Date         string `json:"date,omitempty"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateTransferStatusRequest body para PUT /api/transfers/:id/status.
type UpdateTransferStatusRequest struct {
	Status string `json:"status"`
}

// StockTransferResponse representación HTTP de una transferencia.
type StockTransferResponse struct {
	ID            string    `json:"id"`
	ReceiverName  string    `json:"receiver_name"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	TransferredBy string    `json:"transferred_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewStockTransferResponse convierte la entidad a su representación HTTP.
func NewStockTransferResponse(t *entity.StockTransfer) StockTransferResponse {
	return StockTransferResponse{
		ID:            t.ID,
		ReceiverName:  t.ReceiverName,
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		Quantity:      t.Quantity,
		Date:          t.Date,
		Status:        t.Status,
		Notes:         t.Notes,
		TransferredBy: t.TransferredBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// NewStockTransferListResponse mapea un slice de entidades.
func NewStockTransferListResponse(list []entity.StockTransfer) []StockTransferResponse {
	items := make([]StockTransferResponse, 0, len(list))
	for i := range list {
		items = append(items, NewStockTransferResponse(&list[i]))
	}
	return items
}
