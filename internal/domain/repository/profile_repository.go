package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile.
// Delete elimina solo la fila de perfil; la baja de la cuenta en el
// proveedor de identidad queda fuera del alcance de este puerto.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	SetMustSetPassword(ctx context.Context, userID string, must bool) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]*entity.Profile, error)
	Delete(ctx context.Context, id string) error
}
