package entity

import "time"

// Estados válidos para StockTransfer.
const (
	TransferPending   = "pending"
	TransferInTransit = "in_transit"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
)

// ValidTransferStatus indica si s es uno de los estados reconocidos.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferPending, TransferInTransit, TransferCompleted, TransferCancelled:
		return true
	}
	return false
}

// StockTransfer registra una salida de stock hacia un receptor/destino.
// El estado es mutable después de la creación; la cantidad del producto solo
// se descuenta cuando el estado llega a "completed", y exactamente una vez.
type StockTransfer struct {
	ID            string
	ReceiverName  string
	ProductID     string
	ProductName   string // denormalizado al crear
	Quantity      int    // siempre > 0
	Date          time.Time
	Status        string
	Notes         string
	TransferredBy string // opcional, actor
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
