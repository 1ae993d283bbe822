package entity

import "time"

// Account es la identidad de autenticación (credenciales). Separada del
// Profile: una cuenta autenticada sin perfil aprovisionado NO es un usuario
// válido de la aplicación.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
