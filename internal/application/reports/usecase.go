// Package reports arma instantáneas de reporte sobre el snapshot del Store
// y las exporta como JSON, XLSX o PDF.
package reports

import (
	"fmt"
	"time"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// Periodos de reporte soportados.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// PDFGenerator exporta un reporte como documento PDF.
type PDFGenerator interface {
	Generate(data *dto.ReportData) ([]byte, error)
}

// XLSXGenerator exporta un reporte como libro XLSX.
type XLSXGenerator interface {
	Generate(data *dto.ReportData) ([]byte, error)
}

// Usecase produce reportes de inventario filtrados por periodo y categoría.
type Usecase struct {
	store *store.Store
	pdf   PDFGenerator
	xlsx  XLSXGenerator
}

// NewUsecase construye el caso de uso de reportes.
func NewUsecase(st *store.Store, pdf PDFGenerator, xlsx XLSXGenerator) *Usecase {
	return &Usecase{store: st, pdf: pdf, xlsx: xlsx}
}

// Build arma la instantánea del reporte. category vacío incluye todas.
func (u *Usecase) Build(period, category string) (dto.ReportData, error) {
	now := time.Now()
	from, err := periodStart(period, now)
	if err != nil {
		return dto.ReportData{}, err
	}

	products := u.store.Products()
	categoryOf := make(map[string]string, len(products))
	var scopedProducts []entity.Product
	for _, p := range products {
		categoryOf[p.ID] = p.Category
		if category == "" || p.Category == category {
			scopedProducts = append(scopedProducts, p)
		}
	}

	inScope := func(productID string) bool {
		return category == "" || categoryOf[productID] == category
	}

	var receipts []entity.StockReceipt
	totalReceived := 0
	activeSuppliers := map[string]struct{}{}
	for _, r := range u.store.Receipts() {
		if r.Date.Before(from) || !inScope(r.ProductID) {
			continue
		}
		receipts = append(receipts, r)
		totalReceived += r.Quantity
		activeSuppliers[r.SupplierName] = struct{}{}
	}

	var transfers []entity.StockTransfer
	totalTransferred := 0
	for _, t := range u.store.Transfers() {
		if t.Date.Before(from) || !inScope(t.ProductID) {
			continue
		}
		transfers = append(transfers, t)
		if t.Status == entity.TransferCompleted {
			totalTransferred += t.Quantity
		}
	}

	var low []entity.Product
	for _, p := range scopedProducts {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}

	return dto.ReportData{
		Period:      period,
		Category:    category,
		GeneratedAt: now,
		From:        from,
		Summary: dto.ReportSummary{
			TotalProducts:    len(scopedProducts),
			TotalReceived:    totalReceived,
			TotalTransferred: totalTransferred,
			LowStockItems:    len(low),
			ActiveSuppliers:  len(activeSuppliers),
		},
		Receipts:         dto.NewStockReceiptListResponse(receipts),
		Transfers:        dto.NewStockTransferListResponse(transfers),
		LowStockProducts: dto.NewProductListResponse(low),
	}, nil
}

// BuildPDF arma el reporte y lo exporta como PDF.
func (u *Usecase) BuildPDF(period, category string) ([]byte, error) {
	data, err := u.Build(period, category)
	if err != nil {
		return nil, err
	}
	return u.pdf.Generate(&data)
}

// BuildXLSX arma el reporte y lo exporta como libro XLSX.
func (u *Usecase) BuildXLSX(period, category string) ([]byte, error) {
	data, err := u.Build(period, category)
	if err != nil {
		return nil, err
	}
	return u.xlsx.Generate(&data)
}

// periodStart devuelve el inicio del periodo relativo a now.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case PeriodWeekly:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonthly:
		return now.AddDate(0, -1, 0), nil
	case PeriodYearly:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: periodo %q no reconocido", domain.ErrInvalidInput, period)
}
