package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/pkg/metrics"
)

// MetricsMiddleware cuenta cada petición con su método, ruta registrada y
// código de estado. Usa la plantilla de la ruta (/api/products/:id) para no
// explotar la cardinalidad de la métrica.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.HTTPRequest(c.Method(), path, status)
		return err
	}
}
