// Package auth implementa el puente de sesión: autenticación contra las
// cuentas locales, resolución del perfil de aplicación y emisión de JWT.
//
// La identidad (Account) y el perfil (Profile) son registros separados. Una
// cuenta que autentica pero no tiene fila de perfil NO es un usuario válido:
// el login falla explícitamente en lugar de continuar con un usuario a medias.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
	"github.com/tu-usuario/bodega-pro/pkg/config"
	"github.com/tu-usuario/bodega-pro/pkg/jwt"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
)

// MinPasswordLen es el mínimo aceptado al establecer contraseña.
const MinPasswordLen = 8

// Usecase orquesta login, invitaciones y el flujo de establecer contraseña.
type Usecase struct {
	accounts repository.AccountRepository
	store    *store.Store
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUsecase construye el caso de uso de autenticación.
func NewUsecase(accounts repository.AccountRepository, st *store.Store, jwtCfg config.JWTConfig, log *logger.Logger) *Usecase {
	return &Usecase{accounts: accounts, store: st, jwtCfg: jwtCfg, log: log}
}

// Login autentica email + contraseña y devuelve el token con el perfil.
// Credenciales incorrectas y cuentas inexistentes responden igual
// (ErrUnauthorized); una cuenta válida sin perfil es ErrProfileNotFound.
func (u *Usecase) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return dto.LoginResponse{}, domain.ErrUnauthorized
	}

	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("buscar cuenta: %w", err)
	}
	if account == nil {
		return dto.LoginResponse{}, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return dto.LoginResponse{}, domain.ErrUnauthorized
	}

	profile, ok := u.store.ProfileByUserID(account.ID)
	if !ok {
		u.log.Warn().Str("email", email).Msg("cuenta autenticada sin perfil aprovisionado")
		return dto.LoginResponse{}, domain.ErrProfileNotFound
	}

	if err := u.store.RecordLogin(ctx, profile.ID); err == nil {
		now := time.Now()
		profile.LastLogin = &now
	}

	token, err := jwt.Generate(u.jwtCfg.Secret, account.ID, profile.Username, profile.Role, u.jwtCfg.Issuer, u.jwtCfg.Expiration)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("generar token: %w", err)
	}

	return dto.LoginResponse{
		Token:           token,
		MustSetPassword: profile.MustSetPassword,
		User:            dto.NewProfileResponse(&profile),
	}, nil
}

// SetPassword establece la contraseña definitiva del usuario autenticado y
// apaga la bandera must_set_password.
func (u *Usecase) SetPassword(ctx context.Context, userID string, req dto.SetPasswordRequest) error {
	if len(req.Password) < MinPasswordLen {
		return domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear contraseña: %w", err)
	}
	if err := u.accounts.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("actualizar contraseña: %w", err)
	}
	return u.store.ClearMustSetPassword(ctx, userID)
}

// InviteUser aprovisiona cuenta + perfil para un nuevo usuario (solo admin).
// La cuenta nace con una contraseña temporal que se devuelve una única vez;
// el invitado debe reemplazarla en su primer inicio de sesión.
func (u *Usecase) InviteUser(ctx context.Context, req dto.InviteUserRequest) (dto.ProfileResponse, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" {
		return dto.ProfileResponse{}, "", fmt.Errorf("%w: nombre de usuario y email son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(req.Role) {
		return dto.ProfileResponse{}, "", fmt.Errorf("%w: rol %q no reconocido", domain.ErrInvalidInput, req.Role)
	}

	existing, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		return dto.ProfileResponse{}, "", fmt.Errorf("buscar cuenta: %w", err)
	}
	if existing != nil {
		return dto.ProfileResponse{}, "", domain.ErrEmailAlreadyExists
	}

	tempPassword, err := randomPassword()
	if err != nil {
		return dto.ProfileResponse{}, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return dto.ProfileResponse{}, "", fmt.Errorf("hashear contraseña temporal: %w", err)
	}

	now := time.Now()
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return dto.ProfileResponse{}, "", domain.ErrEmailAlreadyExists
		}
		return dto.ProfileResponse{}, "", fmt.Errorf("crear cuenta: %w", err)
	}

	profile := &entity.Profile{
		ID:              uuid.New().String(),
		UserID:          account.ID,
		Username:        username,
		Email:           email,
		Role:            req.Role,
		Permissions:     entity.DefaultPermissions(req.Role),
		MustSetPassword: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.store.AddProfile(ctx, profile); err != nil {
		// la cuenta queda huérfana; se limpia para no bloquear el email
		if delErr := u.accounts.Delete(ctx, account.ID); delErr != nil {
			u.log.Error().Err(delErr).Str("account_id", account.ID).Msg("no se pudo limpiar la cuenta huérfana")
		}
		return dto.ProfileResponse{}, "", err
	}

	return dto.NewProfileResponse(profile), tempPassword, nil
}

// DeleteUser elimina el perfil y da de baja la cuenta asociada.
func (u *Usecase) DeleteUser(ctx context.Context, profileID string) error {
	userID, err := u.store.DeleteUserProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if err := u.accounts.Delete(ctx, userID); err != nil {
		// el perfil ya no existe; la cuenta huérfana solo se registra
		u.log.Error().Err(err).Str("account_id", userID).Msg("no se pudo eliminar la cuenta")
	}
	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar contraseña temporal: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
