package repository

import (
	"context"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para las identidades
// de autenticación (el sustituto in-process del proveedor externo).
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
