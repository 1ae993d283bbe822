package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
)

func TestGenerate_DocumentoPDFValido(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	data := &dto.ReportData{
		Period:      "weekly",
		Category:    "fluidos",
		GeneratedAt: now,
		From:        now.AddDate(0, 0, -7),
		Summary: dto.ReportSummary{
			TotalProducts: 1, TotalReceived: 10, TotalTransferred: 4,
			LowStockItems: 1, ActiveSuppliers: 1,
		},
		Receipts: []dto.StockReceiptResponse{
			{ProductName: "Aceite", SupplierName: "Lubricantes del Norte", Quantity: 10, Date: now},
		},
		Transfers: []dto.StockTransferResponse{
			{ProductName: "Aceite", ReceiverName: "Taller", Quantity: 4, Status: "completed", Date: now},
		},
		LowStockProducts: []dto.ProductResponse{
			{Name: "Aceite", Category: "fluidos", Quantity: 2, StockAlert: 5, Unit: "bottles"},
		},
	}

	out, err := NewMarotoReportGenerator().Generate(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerate_ReporteVacio(t *testing.T) {
	now := time.Now()
	out, err := NewMarotoReportGenerator().Generate(&dto.ReportData{
		Period: "daily", GeneratedAt: now, From: now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
