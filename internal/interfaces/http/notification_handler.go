package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/store"
)

// NotificationHandler expone las notificaciones recientes del Store y su
// versión de snapshot, para que los clientes detecten cambios por sondeo.
type NotificationHandler struct {
	store *store.Store
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(st *store.Store) *NotificationHandler {
	return &NotificationHandler{store: st}
}

// List godoc
// @Summary      Notificaciones recientes
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version":       h.store.Version(),
		"notifications": h.store.Notifier().Recent(),
	})
}
