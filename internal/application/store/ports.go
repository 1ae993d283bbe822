package store

import (
	"context"

	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es lo que convierte los pares
// recepción + incremento y transferencia + decremento en una sola escritura
// atómica en lugar de dos llamadas remotas independientes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		receipts repository.StockReceiptRepository,
		transfers repository.StockTransferRepository,
	) error) error
}

// Gateway agrupa los puertos de persistencia que consume el Store. Los
// adaptadores no validan reglas de negocio; eso es responsabilidad exclusiva
// del Store.
type Gateway struct {
	Products  repository.ProductRepository
	Suppliers repository.SupplierRepository
	Receipts  repository.StockReceiptRepository
	Transfers repository.StockTransferRepository
	Profiles  repository.ProfileRepository
	Tx        TxRunner
}
