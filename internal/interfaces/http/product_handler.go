package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	"github.com/dentalperu/inventario-dental/internal/application/dto"
)

// ProductHandler catálogo de productos.
type ProductHandler struct {
	products *catalog.ProductUseCase
	importer *catalog.ImportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(products *catalog.ProductUseCase, importer *catalog.ImportUseCase) *ProductHandler {
	return &ProductHandler{products: products, importer: importer}
}

// List GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.products.ListActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.products.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import recibe un catálogo .csv o .xlsx en el campo multipart "file".
// POST /api/products/import
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "archivo requerido en el campo file")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo abrir el archivo")
	}
	defer f.Close()

	out, err := h.importer.ImportFile(c.Context(), fileHeader.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
