package entity

import "time"

// Supplier representa un proveedor. Las recepciones guardan el nombre
// denormalizado, así que renombrar un proveedor no altera el historial.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
