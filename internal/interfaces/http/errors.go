package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
)

// writeError traduce un error de la capa de aplicación a status y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotifierDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOTIFIER_DISABLED", Message: err.Error()})
	}

	kind := domain.KindOf(err)
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch kind {
	case domain.KindValidation:
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case domain.KindNotFound:
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case domain.KindStorage:
		code = "STORAGE"
	}
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	if kind != domain.KindUnknown {
		resp.Kind = kind.String()
	}
	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg, Kind: domain.KindValidation.String()})
}

// periodQuery lee ?month=&year=; si faltan usa el mes en curso.
func periodQuery(c *fiber.Ctx, now time.Time) (month, year int, err error) {
	month, year = int(now.Month()), now.Year()
	if v := c.Query("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("month inválido: %q", v)
		}
	}
	if v := c.Query("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("year inválido: %q", v)
		}
	}
	return month, year, nil
}

// sendFile responde un archivo para descarga.
func sendFile(c *fiber.Ctx, status int, f *dto.FileDTO) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Filename))
	return c.Status(status).Send(f.Content)
}
