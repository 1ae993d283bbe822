package dto

import (
	"time"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + perfil del usuario autenticado.
type LoginResponse struct {
	Token           string          `json:"token"`
	MustSetPassword bool            `json:"must_set_password"`
	User            ProfileResponse `json:"user"`
}

// SetPasswordRequest body para POST /api/auth/password.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// InviteUserRequest body para POST /api/auth/users (solo admin).
// La cuenta se crea con una contraseña temporal; el invitado debe establecer
// la suya en el primer inicio de sesión (must_set_password).
type InviteUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateProfileRequest body para PUT /api/users/:id. Campos nil no se tocan.
type UpdateProfileRequest struct {
	Username    *string   `json:"username,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// ProfileResponse representación HTTP de un perfil de usuario.
type ProfileResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Permissions     []string   `json:"permissions"`
	MustSetPassword bool       `json:"must_set_password"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewProfileResponse convierte la entidad a su representación HTTP.
func NewProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Username:        p.Username,
		Email:           p.Email,
		Role:            p.Role,
		Permissions:     p.Permissions,
		MustSetPassword: p.MustSetPassword,
		LastLogin:       p.LastLogin,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewProfileListResponse mapea un slice de entidades.
func NewProfileListResponse(list []entity.Profile) []ProfileResponse {
	items := make([]ProfileResponse, 0, len(list))
	for i := range list {
		items = append(items, NewProfileResponse(&list[i]))
	}
	return items
}
