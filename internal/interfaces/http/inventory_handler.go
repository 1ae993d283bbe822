package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
)

// InventoryHandler maneja recepciones y transferencias de stock (protegido).
// Toda mutación queda sellada con el username del token como actor.
type InventoryHandler struct {
	store *store.Store
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(st *store.Store) *InventoryHandler {
	return &InventoryHandler{store: st}
}

// CreateReceipt godoc
// @Summary      Registrar recepción de stock
// @Description  Crea la entrada del libro e incrementa la cantidad del producto en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockReceiptRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.StockReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *InventoryHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateStockReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.store.AddStockReceipt(c.Context(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockReceiptResponse(&out))
}

// ListReceipts godoc
// @Summary      Listar recepciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockReceiptResponse
// @Router       /api/receipts [get]
func (h *InventoryHandler) ListReceipts(c *fiber.Ctx) error {
	return c.JSON(dto.NewStockReceiptListResponse(h.store.Receipts()))
}

// CreateTransfer godoc
// @Summary      Registrar transferencia de stock
// @Description  Rechaza cantidades por encima del stock disponible sin escribir en el backend. Solo el estado "completed" descuenta stock.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTransferRequest  true  "Datos de la transferencia"
// @Success      201   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateStockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.store.AddStockTransfer(c.Context(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockTransferResponse(&out))
}

// ListTransfers godoc
// @Summary      Listar transferencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockTransferResponse
// @Router       /api/transfers [get]
func (h *InventoryHandler) ListTransfers(c *fiber.Ctx) error {
	return c.JSON(dto.NewStockTransferListResponse(h.store.Transfers()))
}

// UpdateTransferStatus godoc
// @Summary      Actualizar estado de una transferencia
// @Description  La transición a "completed" descuenta el stock exactamente una vez. Estados finales no admiten cambios.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.UpdateTransferStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/status [put]
func (h *InventoryHandler) UpdateTransferStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransferStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.store.UpdateTransferStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockTransferResponse(&out))
}
