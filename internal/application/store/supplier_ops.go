package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// AddSupplier valida y crea un proveedor, y lo antepone al snapshot.
func (s *Store) AddSupplier(ctx context.Context, req dto.CreateSupplierRequest) (entity.Supplier, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if strings.TrimSpace(req.Name) == "" {
		return entity.Supplier{}, s.reject("supplier", "create", "Proveedor inválido",
			fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput))
	}

	now := time.Now()
	sp := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.gw.Suppliers.Create(ctx, sp); err != nil {
		return entity.Supplier{}, s.reject("supplier", "create", "Error al guardar proveedor", err)
	}

	s.mu.Lock()
	s.suppliers = append([]*entity.Supplier{sp}, s.suppliers...)
	s.version++
	s.mu.Unlock()

	s.committed("supplier", "create", sp.ID, "Proveedor agregado",
		fmt.Sprintf("%s agregado", sp.Name))
	return *sp, nil
}

// UpdateSupplier actualiza los campos editables de un proveedor. Renombrar no
// toca el historial de recepciones: el nombre está denormalizado allí.
func (s *Store) UpdateSupplier(ctx context.Context, id string, req dto.UpdateSupplierRequest) (entity.Supplier, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findSupplier(id)
	var snapshot entity.Supplier
	if cur != nil {
		snapshot = *cur
	}
	s.mu.RUnlock()
	if cur == nil {
		return entity.Supplier{}, s.reject("supplier", "update", "Proveedor no encontrado", domain.ErrNotFound)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return entity.Supplier{}, s.reject("supplier", "update", "Proveedor inválido",
				fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput))
		}
		snapshot.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactPerson != nil {
		snapshot.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		snapshot.Email = *req.Email
	}
	if req.Phone != nil {
		snapshot.Phone = *req.Phone
	}
	if req.Address != nil {
		snapshot.Address = *req.Address
	}
	snapshot.UpdatedAt = time.Now()

	if err := s.gw.Suppliers.Update(ctx, &snapshot); err != nil {
		return entity.Supplier{}, s.reject("supplier", "update", "Error al actualizar proveedor", err)
	}

	s.mu.Lock()
	if sp := s.findSupplier(id); sp != nil {
		*sp = snapshot
	}
	s.version++
	s.mu.Unlock()

	s.committed("supplier", "update", id, "Proveedor actualizado",
		fmt.Sprintf("%s actualizado", snapshot.Name))
	return snapshot, nil
}

// DeleteSupplier elimina un proveedor. Los productos que lo referencian
// conservan su supplier_id huérfano; la vista lo resuelve como desconocido.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findSupplier(id)
	var name string
	if cur != nil {
		name = cur.Name
	}
	s.mu.RUnlock()
	if cur == nil {
		return s.reject("supplier", "delete", "Proveedor no encontrado", domain.ErrNotFound)
	}

	if err := s.gw.Suppliers.Delete(ctx, id); err != nil {
		return s.reject("supplier", "delete", "Error al eliminar proveedor", err)
	}

	s.mu.Lock()
	out := s.suppliers[:0]
	for _, sp := range s.suppliers {
		if sp.ID != id {
			out = append(out, sp)
		}
	}
	s.suppliers = out
	s.version++
	s.mu.Unlock()

	s.committed("supplier", "delete", id, "Proveedor eliminado",
		fmt.Sprintf("%s eliminado", name))
	return nil
}
