package entity

import "time"

// Roles válidos para Profile. El modelo actual reconoce solo dos roles;
// el set de cuatro roles de una revisión anterior quedó retirado.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole indica si r es uno de los roles reconocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff
}

// DefaultPermissions devuelve los permisos predefinidos para un rol.
func DefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{"all"}
	case RoleStaff:
		return []string{"stock_receive", "stock_transfer"}
	}
	return nil
}

// Profile es el registro de usuario a nivel de aplicación, ligado a una
// Account por UserID. MustSetPassword fuerza el flujo de establecer
// contraseña tras una invitación, antes de cualquier otra ruta autenticada.
type Profile struct {
	ID              string
	UserID          string // → Account.ID
	Username        string
	Email           string
	Role            string // admin | staff
	Permissions     []string
	MustSetPassword bool
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
