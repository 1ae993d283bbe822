// Package analytics arma las vistas agregadas (panel y reportes) leyendo
// exclusivamente del snapshot del Store: nunca consulta el backend.
package analytics

import (
	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// recentLimit acota los movimientos recientes del panel.
const recentLimit = 5

// DashboardUsecase produce el resumen del panel principal.
type DashboardUsecase struct {
	store *store.Store
}

// NewDashboardUsecase construye el caso de uso del panel.
func NewDashboardUsecase(st *store.Store) *DashboardUsecase {
	return &DashboardUsecase{store: st}
}

// Summary calcula el resumen sobre el snapshot vigente. El stock bajo se
// recalcula aquí, no se lee de ningún cache.
func (u *DashboardUsecase) Summary() dto.DashboardSummaryDTO {
	products := u.store.Products()
	suppliers := u.store.Suppliers()
	receipts := u.store.Receipts()
	transfers := u.store.Transfers()
	low := u.store.LowStockProducts()

	pending := 0
	for i := range transfers {
		if transfers[i].Status == entity.TransferPending || transfers[i].Status == entity.TransferInTransit {
			pending++
		}
	}

	return dto.DashboardSummaryDTO{
		TotalProducts:    len(products),
		TotalSuppliers:   len(suppliers),
		LowStockCount:    len(low),
		PendingTransfers: pending,
		LowStockProducts: dto.NewProductListResponse(low),
		RecentReceipts:   dto.NewStockReceiptListResponse(head(receipts, recentLimit)),
		RecentTransfers:  dto.NewStockTransferListResponse(head(transfers, recentLimit)),
	}
}

func head[T any](list []T, n int) []T {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
