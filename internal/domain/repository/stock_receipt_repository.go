package repository

import (
	"context"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// StockReceiptRepository define el puerto de persistencia para el libro de
// recepciones. No hay Update ni Delete: las recepciones son append-only.
type StockReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.StockReceipt) error
	List(ctx context.Context) ([]*entity.StockReceipt, error)
}
