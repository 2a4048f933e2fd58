package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
)

// InventoryHandler maneja movimientos, valorización y stock por producto.
type InventoryHandler struct {
	register  *inventory.RegisterMovementUseCase
	valuation *inventory.ValuationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, valuation *inventory.ValuationUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, valuation: valuation}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, unit_price"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.register.RegisterMovement(c.Context(), inventory.MovementInputFromRequest(GetUserID(c), in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetValuation godoc
// @Summary      Existencias valorizadas de un producto en un mes
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        month  query  int     false  "Mes (1-12), por defecto el actual"
// @Param        year   query  int     false  "Año, por defecto el actual"
// @Success      200  {object}  dto.MonthlyValuationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/valuation [get]
func (h *InventoryHandler) GetValuation(c *fiber.Ctx) error {
	month, year, err := periodQuery(c, now())
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	snap, err := h.valuation.ComputeMonthlyValuation(c.Context(), c.Params("id"), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToValuationDTO(snap))
}

// GetStock recalcula el stock desde el historial y lo compara con el contador guardado.
// GET /api/products/:id/stock
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.valuation.ComputeCurrentStock(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}
