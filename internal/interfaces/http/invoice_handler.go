package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/billing"
	"github.com/dentalperu/inventario-dental/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc *billing.CreateInvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create emite la factura, descuenta inventario y devuelve el PDF.
// Número y total viajan en las cabeceras X-Invoice-Number y X-Invoice-Total.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.uc.CreateInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set("X-Invoice-Number", res.Number)
	c.Set("X-Invoice-Total", res.Total.StringFixed(2))
	return sendFile(c, fiber.StatusCreated, &dto.FileDTO{
		Filename:    res.Filename,
		ContentType: "application/pdf",
		Content:     res.PDF,
	})
}
