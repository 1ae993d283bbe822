package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/reports"
)

// ReportHandler expone el reporte de inventario en JSON, XLSX o PDF.
type ReportHandler struct {
	uc *reports.Usecase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.Usecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de inventario
// @Description  Resumen + libros del periodo, filtrables por categoría. format=xlsx o format=pdf descargan el documento.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period    query  string  false  "daily | weekly | monthly | yearly"  default(monthly)
// @Param        category  query  string  false  "Categoría de producto"
// @Param        format    query  string  false  "json | xlsx | pdf"  default(json)
// @Success      200  {object}  dto.ReportData
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	period := c.Query("period", reports.PeriodMonthly)
	category := c.Query("category")
	format := c.Query("format", "json")

	switch format {
	case "json":
		data, err := h.uc.Build(period, category)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(data)
	case "xlsx":
		out, err := h.uc.BuildXLSX(period, category)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, attachment("xlsx", period))
		return c.Send(out)
	case "pdf":
		out, err := h.uc.BuildPDF(period, category)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, attachment("pdf", period))
		return c.Send(out)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, xlsx o pdf"})
}

func attachment(ext, period string) string {
	return fmt.Sprintf(`attachment; filename="reporte-inventario-%s-%s.%s"`,
		period, time.Now().Format("20060102"), ext)
}
