package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/application/inventory"
)

// ReportHandler reporte mensual de existencias: JSON, PDF, XLSX y cierre de mes.
type ReportHandler struct {
	report *inventory.ReportUseCase
	export *inventory.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(report *inventory.ReportUseCase, export *inventory.ExportUseCase) *ReportHandler {
	return &ReportHandler{report: report, export: export}
}

// Monthly godoc
// @Summary      Reporte mensual de existencias valorizadas
// @Tags         reports
// @Produce      json
// @Param        month  query  int  false  "Mes (1-12)"
// @Param        year   query  int  false  "Año"
// @Success      200  {object}  dto.MonthlyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	month, year, err := periodQuery(c, now())
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.report.GenerateMonthlyReport(c.Context(), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MonthlyPDF GET /api/reports/monthly/pdf
func (h *ReportHandler) MonthlyPDF(c *fiber.Ctx) error {
	month, year, err := periodQuery(c, now())
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	file, err := h.export.ExportPDF(c.Context(), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, fiber.StatusOK, file)
}

// MonthlyXLSX GET /api/reports/monthly/xlsx
func (h *ReportHandler) MonthlyXLSX(c *fiber.Ctx) error {
	month, year, err := periodQuery(c, now())
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	file, err := h.export.ExportXLSX(c.Context(), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, fiber.StatusOK, file)
}

// Close godoc
// @Summary      Cerrar mes (guarda un snapshot por producto)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseMonthRequest  true  "month, year"
// @Success      200  {object}  dto.CloseMonthResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly/close [post]
func (h *ReportHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseMonthRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.report.CloseMonth(c.Context(), in.Month, in.Year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
