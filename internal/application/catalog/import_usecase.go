// Package catalog da de alta productos a partir de catálogos importados.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dentalperu/inventario-dental/internal/application/dto"
	"github.com/dentalperu/inventario-dental/internal/domain"
	"github.com/dentalperu/inventario-dental/internal/domain/entity"
	"github.com/dentalperu/inventario-dental/internal/domain/repository"
)

const opImport = "importar catálogo"

// RowReader interpreta un archivo de catálogo.
type RowReader func(r io.Reader) ([]dto.ProductImportRow, error)

// ImportUseCase crea los productos de un catálogo. Los códigos ya existentes se omiten
// y las filas inválidas se reportan sin detener la importación.
type ImportUseCase struct {
	productRepo repository.ProductRepository
	readers     map[string]RowReader
}

// NewImportUseCase construye el caso de uso sin lectores de archivo; ver WithReader.
func NewImportUseCase(productRepo repository.ProductRepository) *ImportUseCase {
	return &ImportUseCase{productRepo: productRepo, readers: make(map[string]RowReader)}
}

// WithReader registra el lector para una extensión de archivo (".csv", ".xlsx").
func (uc *ImportUseCase) WithReader(ext string, reader RowReader) *ImportUseCase {
	uc.readers[strings.ToLower(ext)] = reader
	return uc
}

// ImportFile elige el lector por la extensión de filename e importa sus filas.
// Un archivo ilegible es un error de validación.
func (uc *ImportUseCase) ImportFile(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	reader, ok := uc.readers[ext]
	if !ok {
		return nil, domain.Validation(opImport, "formato no soportado: "+nonEmpty(ext, filename))
	}
	rows, err := reader(r)
	if err != nil {
		return nil, &domain.OpError{Op: opImport, Kind: domain.KindValidation, Err: err}
	}
	return uc.Import(ctx, rows)
}

// Import da de alta cada fila con stock 0 y activa. Una falla de almacenamiento corta la importación.
func (uc *ImportUseCase) Import(ctx context.Context, rows []dto.ProductImportRow) (*dto.ImportResult, error) {
	res := &dto.ImportResult{Skipped: []string{}, Errors: []dto.ImportRowError{}}
	for _, row := range rows {
		if msg := validateRow(row); msg != "" {
			res.Errors = append(res.Errors, dto.ImportRowError{Line: row.Line, Code: row.Code, Message: msg})
			continue
		}
		category := row.Category
		if category == "" {
			category = entity.CategoryConsumible
		}
		p := &entity.Product{
			Code:         row.Code,
			Name:         row.Name,
			Category:     category,
			MinStock:     row.MinStock,
			UnitPrice:    row.UnitPrice,
			Supplier:     row.Supplier,
			DeliveryDays: row.DeliveryDays,
			Active:       true,
		}
		if err := uc.productRepo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				res.Skipped = append(res.Skipped, row.Code)
				continue
			}
			return nil, domain.Storage(opImport, fmt.Errorf("fila %d (%s): %w", row.Line, row.Code, err))
		}
		res.Created++
	}
	return res, nil
}

func validateRow(row dto.ProductImportRow) string {
	switch {
	case row.Code == "":
		return "código requerido"
	case row.Name == "":
		return "nombre requerido"
	case row.Category != "" && !entity.ValidCategory(row.Category):
		return fmt.Sprintf("categoría desconocida: %s", row.Category)
	case row.MinStock < 0:
		return "stock mínimo no puede ser negativo"
	case row.UnitPrice.IsNegative():
		return "precio no puede ser negativo"
	case row.DeliveryDays < 0:
		return "días de entrega no pueden ser negativos"
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
