package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
	"github.com/dentalperu/inventario-dental/internal/application/notification"
)

// ReorderHandler sugerencias de reposición y pedido al proveedor.
type ReorderHandler struct {
	replenishment *inventory.ReplenishmentUseCase
	alerts        *notification.AlertUseCase
}

// NewReorderHandler construye el handler.
func NewReorderHandler(replenishment *inventory.ReplenishmentUseCase, alerts *notification.AlertUseCase) *ReorderHandler {
	return &ReorderHandler{replenishment: replenishment, alerts: alerts}
}

// List godoc
// @Summary      Productos bajo el stock mínimo con la cantidad sugerida
// @Tags         reorders
// @Produce      json
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/reorders [get]
func (h *ReorderHandler) List(c *fiber.Ctx) error {
	list, err := h.replenishment.SuggestReorders(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "reorders": list})
}

// Send envía la lista de reposición como pedido por WhatsApp.
// POST /api/reorders/send
func (h *ReorderHandler) Send(c *fiber.Ctx) error {
	var in dto.SendOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	items, err := h.replenishment.SuggestReorders(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.alerts.SendSupplierOrder(c.Context(), in.Phone, items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
