package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
)

func sampleReport() *dto.ReportData {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return &dto.ReportData{
		Period:      "monthly",
		GeneratedAt: now,
		From:        now.AddDate(0, -1, 0),
		Summary: dto.ReportSummary{
			TotalProducts: 2, TotalReceived: 17, TotalTransferred: 4,
			LowStockItems: 1, ActiveSuppliers: 2,
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
}

func TestGenerate_LibroConCuatroHojas(t *testing.T) {
	out, err := NewExcelizeReportGenerator().Generate(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{sheetSummary, sheetReceipts, sheetTransfers, sheetLowStock},
		f.GetSheetList(),
	)

	title, err := f.GetCellValue(sheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reporte de Inventario", title)

	product, err := f.GetCellValue(sheetReceipts, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Aceite", product)

	qty, err := f.GetCellValue(sheetLowStock, "C2")
	require.NoError(t, err)
	assert.Equal(t, "2", qty)
}
