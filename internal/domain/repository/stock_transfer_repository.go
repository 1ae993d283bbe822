package repository

import (
	"context"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// StockTransferRepository define el puerto de persistencia para transferencias.
type StockTransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id string) (*entity.StockTransfer, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]*entity.StockTransfer, error)
}
