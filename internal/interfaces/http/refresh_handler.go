package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/store"
)

// RefreshHandler dispara una recarga manual del snapshot, además de la
// programada. Útil cuando otro proceso escribió directo en la base.
type RefreshHandler struct {
	store *store.Store
}

// NewRefreshHandler construye el handler.
func NewRefreshHandler(st *store.Store) *RefreshHandler {
	return &RefreshHandler{store: st}
}

// Refresh godoc
// @Summary      Recargar el snapshot desde la base
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/refresh [post]
func (h *RefreshHandler) Refresh(c *fiber.Ctx) error {
	if err := h.store.Refresh(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"version": h.store.Version()})
}
