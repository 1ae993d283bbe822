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

// AddProduct valida y crea un producto, y lo antepone al snapshot.
func (s *Store) AddProduct(ctx context.Context, req dto.CreateProductRequest) (entity.Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if strings.TrimSpace(req.Name) == "" {
		return entity.Product{}, s.reject("product", "create", "Producto inválido",
			fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput))
	}
	if req.Quantity < 0 {
		return entity.Product{}, s.reject("product", "create", "Producto inválido",
			fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput))
	}
	if req.StockAlert < 0 {
		return entity.Product{}, s.reject("product", "create", "Producto inválido",
			fmt.Errorf("%w: el umbral de alerta no puede ser negativo", domain.ErrInvalidInput))
	}
	if req.SupplierID != "" {
		s.mu.RLock()
		known := s.findSupplier(req.SupplierID) != nil
		s.mu.RUnlock()
		if !known {
			return entity.Product{}, s.reject("product", "create", "Producto inválido",
				fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, req.SupplierID))
		}
	}

	now := time.Now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(req.Name),
		SKU:        req.SKU,
		Category:   req.Category,
		Quantity:   req.Quantity,
		StockAlert: req.StockAlert,
		Unit:       req.Unit,
		SupplierID: req.SupplierID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Unit == "" {
		p.Unit = "pieces"
	}

	if err := s.gw.Products.Create(ctx, p); err != nil {
		return entity.Product{}, s.reject("product", "create", "Error al guardar producto", err)
	}

	s.mu.Lock()
	s.products = append([]*entity.Product{p}, s.products...)
	s.version++
	s.mu.Unlock()

	s.committed("product", "create", p.ID, "Producto agregado",
		fmt.Sprintf("%s agregado al inventario", p.Name))
	return *p, nil
}

// UpdateProduct actualiza los campos editables de un producto. La cantidad
// no es editable por esta vía.
func (s *Store) UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (entity.Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findProduct(id)
	var snapshot entity.Product
	if cur != nil {
		snapshot = *cur
	}
	s.mu.RUnlock()
	if cur == nil {
		return entity.Product{}, s.reject("product", "update", "Producto no encontrado", domain.ErrNotFound)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return entity.Product{}, s.reject("product", "update", "Producto inválido",
				fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput))
		}
		snapshot.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		snapshot.SKU = *req.SKU
	}
	if req.Category != nil {
		snapshot.Category = *req.Category
	}
	if req.StockAlert != nil {
		if *req.StockAlert < 0 {
			return entity.Product{}, s.reject("product", "update", "Producto inválido",
				fmt.Errorf("%w: el umbral de alerta no puede ser negativo", domain.ErrInvalidInput))
		}
		snapshot.StockAlert = *req.StockAlert
	}
	if req.Unit != nil {
		snapshot.Unit = *req.Unit
	}
	if req.SupplierID != nil {
		if *req.SupplierID != "" {
			s.mu.RLock()
			known := s.findSupplier(*req.SupplierID) != nil
			s.mu.RUnlock()
			if !known {
				return entity.Product{}, s.reject("product", "update", "Producto inválido",
					fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, *req.SupplierID))
			}
		}
		snapshot.SupplierID = *req.SupplierID
	}
	snapshot.UpdatedAt = time.Now()

	if err := s.gw.Products.Update(ctx, &snapshot); err != nil {
		return entity.Product{}, s.reject("product", "update", "Error al actualizar producto", err)
	}

	s.mu.Lock()
	if p := s.findProduct(id); p != nil {
		// La cantidad puede haber cambiado por otra mutación concurrente con
		// el remoto; el Update no la toca, así que se conserva la vigente.
		snapshot.Quantity = p.Quantity
		*p = snapshot
	}
	s.version++
	s.mu.Unlock()

	s.committed("product", "update", id, "Producto actualizado",
		fmt.Sprintf("%s actualizado", snapshot.Name))
	return snapshot, nil
}

// DeleteProduct elimina un producto del backend y del snapshot.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur := s.findProduct(id)
	var name string
	if cur != nil {
		name = cur.Name
	}
	s.mu.RUnlock()
	if cur == nil {
		return s.reject("product", "delete", "Producto no encontrado", domain.ErrNotFound)
	}

	if err := s.gw.Products.Delete(ctx, id); err != nil {
		return s.reject("product", "delete", "Error al eliminar producto", err)
	}

	s.mu.Lock()
	s.products = removeProduct(s.products, id)
	s.version++
	s.mu.Unlock()

	s.committed("product", "delete", id, "Producto eliminado",
		fmt.Sprintf("%s eliminado del inventario", name))
	return nil
}

func removeProduct(list []*entity.Product, id string) []*entity.Product {
	out := list[:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
