package entity

import "time"

// Product representa un producto del almacén.
// Quantity es un entero no negativo: solo lo mutan recepciones (+) y
// transferencias completadas (−); nunca puede quedar por debajo de cero.
// StockAlert es el umbral de stock bajo (Quantity <= StockAlert ⇒ alerta).
type Product struct {
	ID         string
	Name       string
	SKU        string // opcional
	Category   string // opcional
	Quantity   int
	StockAlert int
	Unit       string // etiqueta de unidad: "pieces", "bottles", etc.
	SupplierID string // opcional, referencia a Supplier
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de alerta.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.StockAlert
}
