package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/analytics"
)

// DashboardHandler expone el resumen del panel principal.
type DashboardHandler struct {
	uc *analytics.DashboardUsecase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del panel
// @Description  Totales, transferencias pendientes, stock bajo y libros recientes sobre el snapshot vigente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}
