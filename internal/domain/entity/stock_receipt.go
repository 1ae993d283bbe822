package entity

import "time"

// StockReceipt es una entrada del libro de recepciones: registro append-only
// de stock entrante. No existe operación de actualización; crear una recepción
// incrementa la cantidad del producto referenciado en Quantity.
//
// SupplierName y ProductName se copian al momento de crear el registro
// (denormalizados a propósito: el historial conserva los nombres de la época).
type StockReceipt struct {
	ID           string
	SupplierID   string // opcional
	SupplierName string
	ProductID    string
	ProductName  string
	Quantity     int // siempre > 0
	Date         time.Time
	Notes        string
	ReceivedBy   string // opcional, actor que registró la recepción
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
