// Package pdf implementa la exportación de reportes de inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario │ Periodo + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / recibido / transferido / stock bajo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Recepciones del periodo                             │
//	│  TABLA: Transferencias del periodo                          │
//	│  TABLA: Productos con stock bajo                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de los periodos.
var periodLabels = map[string]string{
	"daily":   "Diario",
	"weekly":  "Semanal",
	"monthly": "Mensual",
	"yearly":  "Anual",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(data *dto.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("RECEPCIONES DEL PERIODO"))
	if len(data.Receipts) == 0 {
		m.AddRows(emptyRow("Sin recepciones en el periodo"))
	} else {
		m.AddRows(receiptHeaderRow())
		for _, r := range receiptRows(data.Receipts) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("TRANSFERENCIAS DEL PERIODO"))
	if len(data.Transfers) == 0 {
		m.AddRows(emptyRow("Sin transferencias en el periodo"))
	} else {
		m.AddRows(transferHeaderRow())
		for _, r := range transferRows(data.Transfers) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PRODUCTOS CON STOCK BAJO"))
	if len(data.LowStockProducts) == 0 {
		m.AddRows(emptyRow("Ningún producto por debajo de su umbral"))
	} else {
		m.AddRows(lowStockHeaderRow())
		for _, r := range lowStockRows(data.LowStockProducts) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y periodo + fecha de generación (der).
func headerRow(data *dto.ReportData) core.Row {
	label := periodLabels[data.Period]
	if label == "" {
		label = data.Period
	}
	if data.Category != "" {
		label += " · " + data.Category
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega Pro", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Desde: "+data.From.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRow: métricas agregadas en cinco columnas.
func summaryRow(data *dto.ReportData) core.Row {
	metric := func(size int, label string, value int) core.Col {
		return col.New(size).Add(
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(label, props.Text{
				Size: 7, Align: align.Center, Top: 9, Color: colorGray,
			}),
		)
	}
	s := data.Summary
	return row.New(15).Add(
		metric(3, "Productos", s.TotalProducts),
		metric(2, "Recibido", s.TotalReceived),
		metric(3, "Transferido", s.TotalTransferred),
		metric(2, "Stock bajo", s.LowStockItems),
		metric(2, "Proveedores", s.ActiveSuppliers),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1,
	}))
}

func receiptHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Proveedor", 4, align.Left),
		headerCell("Cant.", 2, align.Right),
	)
}

func receiptRows(receipts []dto.StockReceiptResponse) []core.Row {
	result := make([]core.Row, 0, len(receipts))
	for _, r := range receipts {
		result = append(result, row.New(5).Add(
			cell(r.Date.Format("02/01/2006"), 2, align.Left),
			cell(r.ProductName, 4, align.Left),
			cell(r.SupplierName, 4, align.Left),
			cell(fmt.Sprintf("%d", r.Quantity), 2, align.Right),
		))
	}
	return result
}

func transferHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Receptor", 3, align.Left),
		headerCell("Estado", 2, align.Left),
		headerCell("Cant.", 1, align.Right),
	)
}

func transferRows(transfers []dto.StockTransferResponse) []core.Row {
	result := make([]core.Row, 0, len(transfers))
	for _, t := range transfers {
		result = append(result, row.New(5).Add(
			cell(t.Date.Format("02/01/2006"), 2, align.Left),
			cell(t.ProductName, 4, align.Left),
			cell(t.ReceiverName, 3, align.Left),
			cell(t.Status, 2, align.Left),
			cell(fmt.Sprintf("%d", t.Quantity), 1, align.Right),
		))
	}
	return result
}

func lowStockHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Producto", 5, align.Left),
		headerCell("Categoría", 3, align.Left),
		headerCell("Cant.", 2, align.Right),
		headerCell("Umbral", 2, align.Right),
	)
}

func lowStockRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(5).Add(
			cell(p.Name, 5, align.Left),
			cell(p.Category, 3, align.Left),
			cell(fmt.Sprintf("%d %s", p.Quantity, p.Unit), 2, align.Right),
			cell(fmt.Sprintf("%d", p.StockAlert), 2, align.Right),
		))
	}
	return result
}
