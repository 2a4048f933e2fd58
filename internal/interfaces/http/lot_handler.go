package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
)

// LotHandler lotes con vencimiento.
type LotHandler struct {
	lots   *inventory.LotUseCase
	expiry *inventory.ExpiryUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(lots *inventory.LotUseCase, expiry *inventory.ExpiryUseCase) *LotHandler {
	return &LotHandler{lots: lots, expiry: expiry}
}

// Expiring godoc
// @Summary      Lotes próximos a vencer
// @Tags         lots
// @Produce      json
// @Param        days             query  int   false  "Ventana en días (por defecto 30)"
// @Param        include_expired  query  bool  false  "Incluir lotes ya vencidos"
// @Success      200  {array}   dto.ExpiringLotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/lots/expiring [get]
func (h *LotHandler) Expiring(c *fiber.Ctx) error {
	days := inventory.DefaultExpiryDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "VALIDATION", "days debe ser un entero")
		}
		days = n
	}
	includeExpired := false
	if v := c.Query("include_expired"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "VALIDATION", "include_expired debe ser true o false")
		}
		includeExpired = b
	}

	lots, err := h.expiry.FindExpiringLots(c.Context(), days, includeExpired)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "total": len(lots), "lots": lots})
}

// Register POST /api/lots. No modifica el stock.
func (h *LotHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.lots.RegisterLot(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
