package repository

import (
	"context"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los adaptadores no aplican reglas de negocio; la única excepción es el
// guard de fila en AdjustQuantity, que es una restricción de integridad
// (la cantidad nunca puede quedar negativa), no una validación.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustQuantity suma delta (puede ser negativo) de forma atómica a nivel
	// de fila y devuelve la cantidad resultante. Si el ajuste dejaría la
	// cantidad negativa devuelve domain.ErrInsufficientStock.
	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
