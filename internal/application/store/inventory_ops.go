package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
)

// AddStockReceipt registra una recepción de stock y aumenta la cantidad del
// producto en la misma transacción remota. Si cualquiera de las dos escrituras
// falla, ninguna persiste y el snapshot queda intacto.
//
// actor es el usuario autenticado que registra la recepción.
func (s *Store) AddStockReceipt(ctx context.Context, req dto.CreateStockReceiptRequest, actor string) (entity.StockReceipt, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if req.Quantity <= 0 {
		return entity.StockReceipt{}, s.reject("receipt", "create", "Recepción inválida",
			fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput))
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return entity.StockReceipt{}, s.reject("receipt", "create", "Recepción inválida",
			fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	s.mu.RLock()
	product := s.findProduct(req.ProductID)
	var productName string
	if product != nil {
		productName = product.Name
	}
	supplierName := strings.TrimSpace(req.SupplierName)
	if req.SupplierID != "" {
		if sp := s.findSupplier(req.SupplierID); sp != nil {
			supplierName = sp.Name
		}
	}
	s.mu.RUnlock()
	if product == nil {
		return entity.StockReceipt{}, s.reject("receipt", "create", "Producto no encontrado", domain.ErrNotFound)
	}
	if supplierName == "" {
		return entity.StockReceipt{}, s.reject("receipt", "create", "Recepción inválida",
			fmt.Errorf("%w: el proveedor es obligatorio", domain.ErrInvalidInput))
	}

	now := time.Now()
	receipt := &entity.StockReceipt{
		SupplierID:   req.SupplierID,
		SupplierName: supplierName,
		ProductID:    req.ProductID,
		ProductName:  productName,
		Quantity:     req.Quantity,
		Date:         date,
		Notes:        req.Notes,
		ReceivedBy:   actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var newQty int
	err = s.gw.Tx.Run(ctx, func(
		products repository.ProductRepository,
		receipts repository.StockReceiptRepository,
		_ repository.StockTransferRepository,
	) error {
		if err := receipts.Create(ctx, receipt); err != nil {
			return err
		}
		q, err := products.AdjustQuantity(ctx, req.ProductID, req.Quantity)
		if err != nil {
			return err
		}
		newQty = q
		return nil
	})
	if err != nil {
		return entity.StockReceipt{}, s.reject("receipt", "create", "Error al registrar recepción", err)
	}

	s.mu.Lock()
	s.receipts = append([]*entity.StockReceipt{receipt}, s.receipts...)
	if p := s.findProduct(req.ProductID); p != nil {
		p.Quantity = newQty
		p.UpdatedAt = now
	}
	s.version++
	s.mu.Unlock()

	s.committed("receipt", "create", receipt.ID, "Stock recibido",
		fmt.Sprintf("%d × %s recibido de %s", receipt.Quantity, productName, supplierName))
	return *receipt, nil
}

// AddStockTransfer registra una salida de stock. La validación de stock
// disponible ocurre antes de cualquier escritura remota y aplica a todo
// estado inicial, cancelled incluido: una transferencia por encima del stock
// se rechaza sin tocar el backend. Solo el estado "completed" descuenta la
// cantidad, y lo hace en la misma transacción que crea el registro.
func (s *Store) AddStockTransfer(ctx context.Context, req dto.CreateStockTransferRequest, actor string) (entity.StockTransfer, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if strings.TrimSpace(req.ReceiverName) == "" {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Transferencia inválida",
			fmt.Errorf("%w: el receptor es obligatorio", domain.ErrInvalidInput))
	}
	if req.Quantity <= 0 {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Transferencia inválida",
			fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput))
	}
	status := req.Status
	if status == "" {
		status = entity.TransferPending
	}
	if !entity.ValidTransferStatus(status) {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Transferencia inválida",
			fmt.Errorf("%w: estado %q no reconocido", domain.ErrInvalidInput, status))
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Transferencia inválida",
			fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	s.mu.RLock()
	product := s.findProduct(req.ProductID)
	var productName string
	var available int
	if product != nil {
		productName = product.Name
		available = product.Quantity
	}
	s.mu.RUnlock()
	if product == nil {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Producto no encontrado", domain.ErrNotFound)
	}
	if req.Quantity > available {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Transferencia fallida",
			fmt.Errorf("%w: solo hay %d unidades de %s", domain.ErrInsufficientStock, available, productName))
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ReceiverName:  strings.TrimSpace(req.ReceiverName),
		ProductID:     req.ProductID,
		ProductName:   productName,
		Quantity:      req.Quantity,
		Date:          date,
		Status:        status,
		Notes:         req.Notes,
		TransferredBy: actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	newQty := available
	if status == entity.TransferCompleted {
		err = s.gw.Tx.Run(ctx, func(
			products repository.ProductRepository,
			_ repository.StockReceiptRepository,
			transfers repository.StockTransferRepository,
		) error {
			if err := transfers.Create(ctx, transfer); err != nil {
				return err
			}
			q, err := products.AdjustQuantity(ctx, req.ProductID, -req.Quantity)
			if err != nil {
				return err
			}
			newQty = q
			return nil
		})
	} else {
		err = s.gw.Transfers.Create(ctx, transfer)
	}
	if err != nil {
		return entity.StockTransfer{}, s.reject("transfer", "create", "Error al registrar transferencia", err)
	}

	s.mu.Lock()
	s.transfers = append([]*entity.StockTransfer{transfer}, s.transfers...)
	if status == entity.TransferCompleted {
		if p := s.findProduct(req.ProductID); p != nil {
			p.Quantity = newQty
			p.UpdatedAt = now
		}
	}
	s.version++
	s.mu.Unlock()

	s.committed("transfer", "create", transfer.ID, "Transferencia registrada",
		fmt.Sprintf("%d × %s para %s", transfer.Quantity, productName, transfer.ReceiverName))
	return *transfer, nil
}

// UpdateTransferStatus cambia el estado de una transferencia. El descuento de
// stock ocurre exactamente una vez, en la transición a "completed" desde
// cualquier estado no completado, en la misma transacción que persiste el
// estado. Repetir el estado vigente es un no-op. "completed" es final.
func (s *Store) UpdateTransferStatus(ctx context.Context, id, status string) (entity.StockTransfer, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !entity.ValidTransferStatus(status) {
		return entity.StockTransfer{}, s.reject("transfer", "update_status", "Estado inválido",
			fmt.Errorf("%w: estado %q no reconocido", domain.ErrInvalidInput, status))
	}

	s.mu.RLock()
	cur := s.findTransfer(id)
	var snapshot entity.StockTransfer
	var available int
	var productKnown bool
	if cur != nil {
		snapshot = *cur
		if p := s.findProduct(cur.ProductID); p != nil {
			available = p.Quantity
			productKnown = true
		}
	}
	s.mu.RUnlock()
	if cur == nil {
		return entity.StockTransfer{}, s.reject("transfer", "update_status", "Transferencia no encontrada", domain.ErrNotFound)
	}
	if snapshot.Status == status {
		return snapshot, nil
	}
	if snapshot.Status == entity.TransferCompleted {
		return entity.StockTransfer{}, s.reject("transfer", "update_status", "Estado inválido",
			fmt.Errorf("%w: una transferencia completada es final", domain.ErrInvalidInput))
	}

	completing := status == entity.TransferCompleted
	if completing {
		if !productKnown {
			return entity.StockTransfer{}, s.reject("transfer", "update_status", "Producto no encontrado", domain.ErrNotFound)
		}
		if snapshot.Quantity > available {
			return entity.StockTransfer{}, s.reject("transfer", "update_status", "Transferencia fallida",
				fmt.Errorf("%w: solo hay %d unidades de %s", domain.ErrInsufficientStock, available, snapshot.ProductName))
		}
	}

	now := time.Now()
	newQty := available
	var err error
	if completing {
		err = s.gw.Tx.Run(ctx, func(
			products repository.ProductRepository,
			_ repository.StockReceiptRepository,
			transfers repository.StockTransferRepository,
		) error {
			if err := transfers.UpdateStatus(ctx, id, status); err != nil {
				return err
			}
			q, err := products.AdjustQuantity(ctx, snapshot.ProductID, -snapshot.Quantity)
			if err != nil {
				return err
			}
			newQty = q
			return nil
		})
	} else {
		err = s.gw.Transfers.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return entity.StockTransfer{}, s.reject("transfer", "update_status", "Error al actualizar transferencia", err)
	}

	s.mu.Lock()
	if t := s.findTransfer(id); t != nil {
		t.Status = status
		t.UpdatedAt = now
		snapshot = *t
	}
	if completing {
		if p := s.findProduct(snapshot.ProductID); p != nil {
			p.Quantity = newQty
			p.UpdatedAt = now
		}
	}
	s.version++
	s.mu.Unlock()

	title := "Transferencia actualizada"
	msg := fmt.Sprintf("%s ahora está %s", snapshot.ProductName, status)
	if completing {
		title = "Transferencia completada"
		msg = fmt.Sprintf("%d × %s entregado a %s", snapshot.Quantity, snapshot.ProductName, snapshot.ReceiverName)
	}
	s.committed("transfer", "update_status", id, title, msg)
	return snapshot, nil
}
