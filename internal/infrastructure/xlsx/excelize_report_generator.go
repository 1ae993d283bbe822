// Package xlsx implementa la exportación de reportes de inventario como libro
// XLSX con excelize: una hoja de resumen más una por cada libro del periodo.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
)

// Nombres de hoja del libro generado.
const (
	sheetSummary   = "Resumen"
	sheetReceipts  = "Recepciones"
	sheetTransfers = "Transferencias"
	sheetLowStock  = "Stock Bajo"
)

// ExcelizeReportGenerator implementa reports.XLSXGenerator.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator construye el generador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// Generate genera el libro XLSX del reporte y devuelve sus bytes.
func (g *ExcelizeReportGenerator) Generate(data *dto.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{sheetReceipts, sheetTransfers, sheetLowStock} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	if err := g.writeSummary(f, data, headerStyle); err != nil {
		return nil, err
	}
	if err := g.writeReceipts(f, data.Receipts, headerStyle); err != nil {
		return nil, err
	}
	if err := g.writeTransfers(f, data.Transfers, headerStyle); err != nil {
		return nil, err
	}
	if err := g.writeLowStock(f, data.LowStockProducts, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ExcelizeReportGenerator) writeSummary(f *excelize.File, data *dto.ReportData, headerStyle int) error {
	rows := [][2]interface{}{
		{"Periodo", data.Period},
		{"Categoría", orDash(data.Category)},
		{"Generado", data.GeneratedAt.Format("2006-01-02 15:04")},
		{"Desde", data.From.Format("2006-01-02")},
		{"", ""},
		{"Total de productos", data.Summary.TotalProducts},
		{"Unidades recibidas", data.Summary.TotalReceived},
		{"Unidades transferidas", data.Summary.TotalTransferred},
		{"Productos con stock bajo", data.Summary.LowStockItems},
		{"Proveedores activos", data.Summary.ActiveSuppliers},
	}
	if err := f.SetCellValue(sheetSummary, "A1", "Reporte de Inventario"); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("xlsx: resumen: %w", err)
	}
	for i, r := range rows {
		rowN := i + 2
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", rowN), r[0]); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", rowN), r[1]); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	return f.SetColWidth(sheetSummary, "A", "B", 26)
}

func (g *ExcelizeReportGenerator) writeReceipts(f *excelize.File, receipts []dto.StockReceiptResponse, headerStyle int) error {
	if err := writeHeader(f, sheetReceipts, headerStyle,
		"Fecha", "Producto", "Proveedor", "Cantidad", "Registrado por", "Notas"); err != nil {
		return err
	}
	for i, r := range receipts {
		rowN := i + 2
		cells := []interface{}{
			r.Date.Format("2006-01-02"), r.ProductName, r.SupplierName,
			r.Quantity, r.ReceivedBy, r.Notes,
		}
		if err := writeRow(f, sheetReceipts, rowN, cells); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetReceipts, "A", "F", 20)
}

func (g *ExcelizeReportGenerator) writeTransfers(f *excelize.File, transfers []dto.StockTransferResponse, headerStyle int) error {
	if err := writeHeader(f, sheetTransfers, headerStyle,
		"Fecha", "Producto", "Receptor", "Cantidad", "Estado", "Registrado por"); err != nil {
		return err
	}
	for i, t := range transfers {
		rowN := i + 2
		cells := []interface{}{
			t.Date.Format("2006-01-02"), t.ProductName, t.ReceiverName,
			t.Quantity, t.Status, t.TransferredBy,
		}
		if err := writeRow(f, sheetTransfers, rowN, cells); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetTransfers, "A", "F", 20)
}

func (g *ExcelizeReportGenerator) writeLowStock(f *excelize.File, products []dto.ProductResponse, headerStyle int) error {
	if err := writeHeader(f, sheetLowStock, headerStyle,
		"Producto", "Categoría", "Cantidad", "Umbral", "Unidad"); err != nil {
		return err
	}
	for i, p := range products {
		rowN := i + 2
		cells := []interface{}{p.Name, orDash(p.Category), p.Quantity, p.StockAlert, p.Unit}
		if err := writeRow(f, sheetLowStock, rowN, cells); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetLowStock, "A", "E", 18)
}

func writeHeader(f *excelize.File, sheet string, style int, labels ...string) error {
	for i, label := range labels {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: %s: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, col+"1", label); err != nil {
			return fmt.Errorf("xlsx: %s: %w", sheet, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(labels))
	if err != nil {
		return fmt.Errorf("xlsx: %s: %w", sheet, err)
	}
	return f.SetCellStyle(sheet, "A1", last+"1", style)
}

func writeRow(f *excelize.File, sheet string, rowN int, cells []interface{}) error {
	for i, v := range cells {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: %s: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowN), v); err != nil {
			return fmt.Errorf("xlsx: %s: %w", sheet, err)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
