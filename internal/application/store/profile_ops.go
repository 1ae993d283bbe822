package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/pkg/metrics"
)

// AddProfile persiste un perfil recién aprovisionado (flujo de invitación) y
// lo antepone al snapshot. Si el perfil no trae permisos se asignan los
// predefinidos de su rol.
func (s *Store) AddProfile(ctx context.Context, profile *entity.Profile) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if strings.TrimSpace(profile.Username) == "" || strings.TrimSpace(profile.Email) == "" {
		return s.reject("profile", "create", "Usuario inválido",
			fmt.Errorf("%w: nombre de usuario y email son obligatorios", domain.ErrInvalidInput))
	}
	if !entity.ValidRole(profile.Role) {
		return s.reject("profile", "create", "Usuario inválido",
			fmt.Errorf("%w: rol %q no reconocido", domain.ErrInvalidInput, profile.Role))
	}
	if len(profile.Permissions) == 0 {
		profile.Permissions = entity.DefaultPermissions(profile.Role)
	}

	if err := s.gw.Profiles.Create(ctx, profile); err != nil {
		return s.reject("profile", "create", "Error al crear usuario", err)
	}

	clone := copyProfile(profile)
	s.mu.Lock()
	s.profiles = append([]*entity.Profile{&clone}, s.profiles...)
	s.version++
	s.mu.Unlock()

	s.committed("profile", "create", profile.ID, "Usuario invitado",
		fmt.Sprintf("%s invitado como %s", profile.Username, profile.Role))
	return nil
}

// UpdateUserProfile actualiza los campos editables de un perfil. Cambiar el
// rol reinicia los permisos a los predefinidos del nuevo rol, salvo que la
// petición traiga permisos explícitos.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (entity.Profile, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findProfile(id)
	var snapshot entity.Profile
	if cur != nil {
		snapshot = copyProfile(cur)
	}
	s.mu.RUnlock()
	if cur == nil {
		return entity.Profile{}, s.reject("profile", "update", "Usuario no encontrado", domain.ErrProfileNotFound)
	}

	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			return entity.Profile{}, s.reject("profile", "update", "Usuario inválido",
				fmt.Errorf("%w: el nombre de usuario es obligatorio", domain.ErrInvalidInput))
		}
		snapshot.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		snapshot.Email = *req.Email
	}
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) {
			return entity.Profile{}, s.reject("profile", "update", "Usuario inválido",
				fmt.Errorf("%w: rol %q no reconocido", domain.ErrInvalidInput, *req.Role))
		}
		if *req.Role != snapshot.Role && req.Permissions == nil {
			snapshot.Permissions = entity.DefaultPermissions(*req.Role)
		}
		snapshot.Role = *req.Role
	}
	if req.Permissions != nil {
		snapshot.Permissions = append([]string(nil), (*req.Permissions)...)
	}
	snapshot.UpdatedAt = time.Now()

	if err := s.gw.Profiles.Update(ctx, &snapshot); err != nil {
		return entity.Profile{}, s.reject("profile", "update", "Error al actualizar usuario", err)
	}

	s.mu.Lock()
	if p := s.findProfile(id); p != nil {
		*p = copyProfile(&snapshot)
	}
	s.version++
	s.mu.Unlock()

	s.committed("profile", "update", id, "Usuario actualizado",
		fmt.Sprintf("%s actualizado", snapshot.Username))
	return snapshot, nil
}

// DeleteUserProfile elimina el perfil de la aplicación. La cuenta del
// proveedor de identidad se da de baja en el caso de uso de autenticación,
// no aquí.
func (s *Store) DeleteUserProfile(ctx context.Context, id string) (userID string, err error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findProfile(id)
	var username string
	if cur != nil {
		username = cur.Username
		userID = cur.UserID
	}
	s.mu.RUnlock()
	if cur == nil {
		return "", s.reject("profile", "delete", "Usuario no encontrado", domain.ErrProfileNotFound)
	}

	if err := s.gw.Profiles.Delete(ctx, id); err != nil {
		return "", s.reject("profile", "delete", "Error al eliminar usuario", err)
	}

	s.mu.Lock()
	out := s.profiles[:0]
	for _, p := range s.profiles {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.profiles = out
	s.version++
	s.mu.Unlock()

	s.committed("profile", "delete", id, "Usuario eliminado",
		fmt.Sprintf("%s eliminado", username))
	return userID, nil
}

// ClearMustSetPassword apaga la bandera de contraseña pendiente tras el flujo
// de establecer contraseña. Sin perfil que actualizar no hay escritura ni
// evento: falla con perfil no encontrado.
func (s *Store) ClearMustSetPassword(ctx context.Context, userID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var id string
	s.mu.RLock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			id = p.ID
			break
		}
	}
	s.mu.RUnlock()
	if id == "" {
		return s.reject("profile", "set_password", "Usuario no encontrado", domain.ErrProfileNotFound)
	}

	if err := s.gw.Profiles.SetMustSetPassword(ctx, userID, false); err != nil {
		return s.reject("profile", "set_password", "Error al actualizar usuario", err)
	}

	s.mu.Lock()
	if p := s.findProfile(id); p != nil {
		p.MustSetPassword = false
		p.UpdatedAt = time.Now()
	}
	s.version++
	s.mu.Unlock()

	s.committed("profile", "set_password", id, "Contraseña establecida",
		"La contraseña fue actualizada correctamente")
	return nil
}

// RecordLogin sella la hora del último inicio de sesión. Es una mutación
// silenciosa: no genera notificación.
func (s *Store) RecordLogin(ctx context.Context, profileID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now()
	if err := s.gw.Profiles.TouchLastLogin(ctx, profileID, now); err != nil {
		metrics.StoreMutation("profile", "login", "error")
		s.log.Warn().Err(err).Str("profile_id", profileID).Msg("no se pudo sellar last_login")
		return err
	}

	s.mu.Lock()
	if p := s.findProfile(profileID); p != nil {
		at := now
		p.LastLogin = &at
	}
	s.version++
	s.mu.Unlock()

	metrics.StoreMutation("profile", "login", "ok")
	s.emit(ChangeEvent{Entity: "profile", Action: "login", ID: profileID})
	return nil
}
